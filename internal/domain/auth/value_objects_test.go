//go:build unit

package auth_test

import (
	"strconv"
	"testing"

	"court-booking/internal/domain/auth"
	"court-booking/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationCode(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
	}{
		{name: "4 digits OK", input: "1234"},
		{name: "surrounding spaces OK", input: " 5678 "},
		{name: "3 digits NG", input: "123", err: auth.ErrInvalidCode},
		{name: "5 digits NG", input: "12345", err: auth.ErrInvalidCode},
		{name: "letters NG", input: "12a4", err: auth.ErrInvalidCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.NewVerificationCode(tc.input)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestVerificationCodeMatches(t *testing.T) {
	code, err := auth.NewVerificationCode("4321")
	require.NoError(t, err)

	assert.NoError(t, code.Matches(ptr.Of("4321")))
	assert.ErrorIs(t, code.Matches(ptr.Of("1111")), auth.ErrCodeMismatch)
	assert.ErrorIs(t, code.Matches(nil), auth.ErrCodeNotIssued)
	assert.ErrorIs(t, code.Matches(ptr.Of("")), auth.ErrCodeNotIssued)
}

func TestRandomCodeGenerator(t *testing.T) {
	gen := auth.NewRandomCodeGenerator()
	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		n, err := strconv.Atoi(code.Value())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}
