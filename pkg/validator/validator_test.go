package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "Ana"),
			validator.Email("email", "ana@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.Email("email", "nope"),
			validator.MaxLen("email", "nope", 2),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 3)
		assert.True(t, ve.Has("name"))
		assert.False(t, ve.Has("message"))
		assert.Equal(t, map[string][]string{
			"name":  {"campo obrigatório"},
			"email": {"e-mail inválido", "deve ter no máximo 2 caracteres"},
		}, ve.Fields())
		assert.Contains(t, err.Error(), "name: campo obrigatório")
	})

	t.Run("wrapped errors", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("create contact: %w", validator.Apply(validator.Required("name", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
	})

	t.Run("non validation error", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(assert.AnError))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"ana@example.com", true},
		{"ana.souza+site@mail.example.com.br", true},
		{"", false},
		{"ana", false},
		{"ana@localhost", false},
		{"ana@example..com", false},
		{"@example.com", false},
		{"Ana <ana@example.com>", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.Email("email", tt.value))
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestLengthRulesCountRunes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MaxLen("name", "João", 4)))
	assert.NoError(t, validator.Apply(validator.MinLen("name", "Zé", 2)))
	assert.Error(t, validator.Apply(validator.MinLen("name", "Z", 2)))
}

func TestOneOfBetweenWhen(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.OneOf("status", "lido", "novo", "lido")))
	assert.Error(t, validator.Apply(validator.OneOf("status", "x", "novo", "lido")))

	assert.NoError(t, validator.Apply(validator.Between("limit", 100, 1, 100)))
	assert.Error(t, validator.Apply(validator.Between("limit", 0, 1, 100)))

	assert.NoError(t, validator.Apply(validator.When(false, validator.Email("email", "nope"))))
	assert.Error(t, validator.Apply(validator.When(true, validator.Email("email", "nope"))))
}
