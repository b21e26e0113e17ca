package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationDetection(t *testing.T) {
	unique := errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")
	notNull := &pgconn.PgError{Code: "23502"}
	other := &pgconn.PgError{Code: "42P01"}

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(other))

	assert.True(t, isNotNullConstraintViolation(notNull))
	assert.False(t, isNotNullConstraintViolation(unique))
	assert.False(t, isNotNullConstraintViolation(errors.New("plain")))
}
