package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pointconfig/domain/core"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("PRIME must be prime")
	wrapped := Wrap(base, "failed to load geometry configuration")

	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "PRIME must be prime")
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", DatabaseError("insert failed"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{core.NewShapeError(1327, 3), CodeValidationError},
		{core.NewValidationError("prime", "4 is not prime"), CodeValidationError},
		{core.NewMissingPointError(7), CodeNotFound},
		{core.NewDuplicatePointError(7), CodeInvalidInput},
		{fmt.Errorf("boom"), CodeInternalError},
		{StorageError("write examples", fmt.Errorf("disk full")), CodeStorageError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, GetCode(Classify(tt.err)), tt.err.Error())
	}
	assert.Nil(t, Classify(nil))
}
