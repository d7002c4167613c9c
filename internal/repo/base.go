package repo

import (
	"context"
	"errors"

	"github.com/tankstore/storefront-backend/pkg/db"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Base provides a shared foundation for the catalog repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(conn *gorm.DB) Base {
	return Base{db: conn}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Conn exposes the unbound connection so callers can open transactions.
func (b Base) Conn() *gorm.DB {
	return b.db
}

// MapError turns a GORM error into the API error taxonomy. A missing row
// becomes NOT_FOUND with "<entity> not found", a unique violation becomes
// CONFLICT, a foreign key violation becomes CONFLICT with "<entity> is still
// in use" and everything else is an internal error.
func MapError(err error, entity, op string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" already exists")
	}
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" is still in use")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: "+op+" "+entity)
}
