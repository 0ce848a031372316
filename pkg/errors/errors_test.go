package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NewUnknownProviderError("nope"), ErrNotFound)
	assert.ErrorIs(t, NewDuplicateProviderError("lastpass"), ErrAlreadyExists)
	assert.ErrorIs(t, NewMissingColumnError("lastpass", 3, "password"), ErrMissingColumn)

	assert.True(t, IsNotFound(NewUnknownProviderError("x")))
	assert.True(t, IsAlreadyExists(NewDuplicateProviderError("x")))
	assert.True(t, IsMissingColumn(NewMissingColumnError("x", -1, "url")))
	assert.True(t, IsValidationError(NewValidationError("field", 1, "bad")))
}

func TestMissingColumnErrorMessage(t *testing.T) {
	err := NewMissingColumnError("lastpass", -1, "url", "password")
	assert.Contains(t, err.Error(), "lastpass")
	assert.Contains(t, err.Error(), "url")
	assert.Contains(t, err.Error(), "password")

	rowErr := NewMissingColumnError("lastpass", 4, "url")
	assert.Contains(t, rowErr.Error(), "row 4")
}

func TestImportErrorAggregation(t *testing.T) {
	first := NewMissingColumnError("lastpass", 0, "password")
	second := NewMissingColumnError("lastpass", 2, "password")

	err := NewImportError("lastpass", []error{first, second})
	require.Error(t, err)

	// errors.As descends into the aggregated errors.
	var missing *MissingColumnError
	require.True(t, stderrors.As(err, &missing))
	assert.Equal(t, 0, missing.Row)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestImportErrorEmpty(t *testing.T) {
	assert.NoError(t, NewImportError("lastpass", nil))
}

func TestWrappers(t *testing.T) {
	cause := stderrors.New("disk full")

	ioErr := WrapIO("write", "/tmp/out.csv", cause)
	assert.ErrorIs(t, ioErr, cause)
	assert.Contains(t, ioErr.Error(), "/tmp/out.csv")

	parseErr := NewParseError("csv", "in.csv", "bad quoting", cause)
	assert.ErrorIs(t, parseErr, cause)
	assert.Contains(t, parseErr.Error(), "in.csv")
}
