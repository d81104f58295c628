package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind apperror.Kind
		msg  string
	}{
		{"no rows", pgx.ErrNoRows, apperror.KindNotFound, "user not found"},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperror.KindNotFound, "user not found"},
		{"email unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, apperror.KindConflict, "email already exists"},
		{"other unique", &pgconn.PgError{Code: "23505", ConstraintName: "x"}, apperror.KindConflict, "duplicate value"},
		{"fk", &pgconn.PgError{Code: "23503"}, apperror.KindNotFound, "user not found"},
		{"too long", &pgconn.PgError{Code: "22001", Message: "value too long"}, apperror.KindValidation, "value too long"},
		{"deadline", context.DeadlineExceeded, apperror.KindInternal, ""},
		{"passthrough", apperror.Validation("kept"), apperror.KindValidation, "kept"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err, "user not found")
			var ae *apperror.Error
			assert.True(t, errors.As(got, &ae))
			assert.Equal(t, tc.kind, ae.Kind)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, ae.Message)
			}
		})
	}
	assert.NoError(t, classify(nil, "x"))
}
