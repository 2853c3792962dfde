package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptID(t *testing.T) {
	t.Parallel()

	id := NewLoginAttemptID()
	parsed, err := ParseLoginAttemptID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	assert.NotEqual(t, NewLoginAttemptID(), NewLoginAttemptID())

	for _, raw := range []string{"", "123", "notavalidloginattemptid", "{" + id.String() + "}"} {
		_, err := ParseLoginAttemptID(raw)
		assert.ErrorIs(t, err, ErrInvalidLoginAttemptID, raw)
	}
}

func TestTwoFACode(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := NewTwoFACode()
		require.NoError(t, err)
		require.Len(t, code.String(), TwoFACodeLength)

		parsed, err := ParseTwoFACode(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, parsed)
	}

	for _, raw := range []string{"", "12345", "1234567", "12a456", "notavalid2facode", "١٢٣٤٥٦"} {
		_, err := ParseTwoFACode(raw)
		assert.ErrorIs(t, err, ErrInvalidTwoFACode, raw)
	}
}
