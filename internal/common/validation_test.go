package common

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidatorRules(t *testing.T) {
	v := NewValidator().
		Field("a", "  ", Required).
		Field("b", []string{}, Required).
		Field("c", 0, Positive).
		Field("d", 5*time.Second, Positive).
		Field("e", "x", OneOf("y", "z")).
		Field("f", []string{"y", "z"}, OneOf("y", "z")).
		Field("g", "not-a-uuid", UUID).
		Field("h", uuid.NewString(), UUID)

	assert.True(t, v.HasErrors())
	var fields []string
	for _, e := range v.Errors() {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"a", "b", "c", "e", "g"}, fields)
	assert.ErrorIs(t, v.Error(), ErrValidation)
	assert.ErrorIs(t, ValidateAndReturnError(v), ErrInvalidInput)
}

func TestValidatorEmpty(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Error())
	assert.Empty(t, v.ErrorMessage())
	assert.NoError(t, ValidateAndReturnError(v))
}
