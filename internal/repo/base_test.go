package repo

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)

	if base.db != conn || base.Conn() != conn {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDBBindsContext(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil || withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	if base.DB(nil) != conn {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestMapError(t *testing.T) {
	if MapError(nil, "brand", "get") != nil {
		t.Fatalf("expected nil passthrough")
	}

	err := MapError(gorm.ErrRecordNotFound, "brand", "get")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if pkgerrors.As(err).Message() != "brand not found" {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}

	err = MapError(errors.New("UNIQUE constraint failed: brands.name"), "brand", "create")
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	err = MapError(errors.New("FOREIGN KEY constraint failed"), "Category", "delete")
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict for foreign key violation, got %v", err)
	}
	if pkgerrors.As(err).Message() != "Category is still in use" {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}

	err = MapError(errors.New("connection reset"), "brand", "create")
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}

	typed := pkgerrors.New(pkgerrors.CodeValidation, "bad")
	if MapError(typed, "brand", "create") != typed {
		t.Fatalf("expected typed errors to pass through")
	}
}
