//go:build unit

package infra

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		override []RepositoryErrorKind
		wantKind RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantKind: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, wantKind: KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, wantKind: KindForeignKeyViolated},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, wantKind: KindConflict},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}, wantKind: KindDBFailure},
		{name: "plain error", err: assert.AnError, wantKind: KindDBFailure},
		{name: "explicit kind wins", err: assert.AnError, override: []RepositoryErrorKind{KindNotFound}, wantKind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("operation failed", tt.err, tt.override...)

			assert.True(t, IsKind(err, tt.wantKind), "got %v", err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "operation failed")
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := WrapRepoErr("insert", &pgconn.PgError{Code: "23505", ConstraintName: "courts_name_key"})

	assert.Equal(t, "courts_name_key", ConstraintName(err))
	assert.Empty(t, ConstraintName(assert.AnError))
}
