package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	driverErr := errors.New("disk I/O error")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "gorm duplicate", err: gorm.ErrDuplicatedKey, want: ErrDuplicateKey},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: ErrNotFound},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicateKey},
		{name: "postgres foreign key", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), want: ErrNotFound},
		{name: "already classified", err: fmt.Errorf("round 3: %w", ErrInvalidState), want: ErrInvalidState},
		{name: "driver failure", err: driverErr, want: ErrStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate("op", tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	var storageErr *StorageError
	if !errors.As(translate("op", driverErr), &storageErr) || !errors.Is(storageErr, driverErr) {
		t.Fatalf("expected StorageError wrapping the driver error")
	}
	if translate("op", nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
}

func TestClosedDatabaseReportsStorageError(t *testing.T) {
	st, conn := newTestStore(t)
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = st.CreateUser(context.Background(), "alice", []byte("v"), []byte("s"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
