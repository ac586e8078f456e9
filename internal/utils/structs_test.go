package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID      int64   `db:"id"`
	Name    *string `db:"name"`
	Ignored string  `db:"-"`
	NoTag   string
	hidden  string `db:"hidden"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "name"}, StructTagValues(row{}))
	assert.Equal(t, []string{"id", "name"}, StructTagValues(&row{}))
	assert.Panics(t, func() { StructTagValues(42) })
}

func TestStructToMap(t *testing.T) {
	name := StringPtr("lease")
	values := StructToMap(&row{ID: 7, Name: name, Ignored: "x", NoTag: "y", hidden: "z"})

	assert.Equal(t, map[string]any{"id": int64(7), "name": name}, values)
}

func TestErrorWrapOrNil(t *testing.T) {
	assert.NoError(t, ErrorWrapOrNil(nil, "failed"))

	cause := errors.New("boom")
	assert.Same(t, cause, ErrorWrapOrNil(cause, ""))

	err := ErrorWrapOrNil(cause, "failed to create lease")
	assert.EqualError(t, err, "failed to create lease: boom")
	assert.ErrorIs(t, err, cause)
}

func TestRequestID(t *testing.T) {
	id := RequestID()
	assert.Len(t, id, RequestIDSize)
	assert.Regexp(t, `^[0-9A-Za-z]+$`, id)
	assert.NotEqual(t, id, RequestID())
}
