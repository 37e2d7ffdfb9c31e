//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"court-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("booking overlaps")

	t.Run("nil error returns the mark itself", func(t *testing.T) {
		assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
	})

	t.Run("marked error matches both cause and mark", func(t *testing.T) {
		cause := errors.New("low level")
		err := errs.Mark(cause, sentinel)
		assert.True(t, errs.Is(err, sentinel))
		assert.True(t, errs.Is(err, cause))
	})

	t.Run("MarkAll carries sentinel and category", func(t *testing.T) {
		err := errs.MarkAll(errs.New("x"), sentinel, errs.ErrConflict)
		assert.True(t, errs.Is(err, sentinel))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, errs.CategoryConflict, errs.CategoryOf(err))
	})
}

func TestIsAcrossWrapping(t *testing.T) {
	sentinel := errs.New("court not found")
	err := errs.Wrap(errs.Mark(errors.New("no rows"), sentinel), "load court")

	assert.True(t, errs.Is(err, sentinel))
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errs.Category
	}{
		{name: "nil", err: nil, want: errs.CategoryUnknown},
		{name: "validation", err: errs.Mark(errs.New("bad"), errs.ErrValidation), want: errs.CategoryValidation},
		{name: "conflict", err: errs.Mark(errs.New("taken"), errs.ErrConflict), want: errs.CategoryConflict},
		{name: "not found", err: errs.Mark(errs.New("gone"), errs.ErrNotFound), want: errs.CategoryNotFound},
		{name: "forbidden", err: errs.Mark(errs.New("no"), errs.ErrForbidden), want: errs.CategoryForbidden},
		{name: "unmarked is infrastructure", err: errors.New("boom"), want: errs.CategoryInfrastructure},
		{name: "wrapped keeps mark", err: errs.Wrap(errs.Mark(errs.New("bad"), errs.ErrValidation), "ctx"), want: errs.CategoryValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.CategoryOf(tc.err))
		})
	}
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	assert.Len(t, lines, 2)
}
