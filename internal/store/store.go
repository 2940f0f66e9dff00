// Package store wraps every read and write on tenant-owned entities with
// the gym filter taken from the authorized request context. There is no
// row-level security below this layer, so a store method is the only place
// a query may be built.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
)

// Store is the repository facade. The gorm handle is injected so tests can
// pass an in-memory database.
type Store struct {
	db *gorm.DB
}

// New creates a Store for the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// scoped returns a query builder with the gym filter bound when the
// context is tenant-scoped. An unscoped context (super admin, no explicit
// gym) gets the raw handle.
func (s *Store) scoped(rctx *authz.RequestContext) *gorm.DB {
	if rctx != nil && rctx.GymID != nil {
		return s.db.Where("gym_id = ?", *rctx.GymID)
	}
	return s.db
}

// requireGym returns the gym id tenant-owned writes must carry. Creating
// rows without a bound gym is rejected up front rather than inserting an
// orphan.
func requireGym(rctx *authz.RequestContext) (string, error) {
	if rctx == nil || rctx.GymID == nil {
		return "", apperr.New(apperr.Validation, "gym scope required")
	}
	return *rctx.GymID, nil
}

// translate maps storage failures to the API error taxonomy. Rows missing
// and rows outside the caller's gym both arrive here as record-not-found,
// which is the point: tenancy must not leak existence.
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.New(apperr.NotFound, notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.New(apperr.Conflict, "duplicate record")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return apperr.Wrap(apperr.Transient, "store unavailable", err)
	default:
		return apperr.Wrap(apperr.Internal, "store failure", err)
	}
}
