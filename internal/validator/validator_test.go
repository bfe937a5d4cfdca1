package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstMessagePerKey(t *testing.T) {
	v := New()
	v.CheckNotBlank("  ", "title", "must be provided")
	v.Check(false, "title", "must be short")

	assert.False(t, v.IsValid())
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jake@jake.jake", true},
		{"a.b+c@example.co", true},
		{"not-an-email", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := New()
			v.CheckEmail(tt.email, "must be a valid email address")
			assert.Equal(t, tt.valid, v.IsValid())
		})
	}
}

func TestPermittedValue(t *testing.T) {
	assert.True(t, PermittedValue("ASC", "ASC", "DESC"))
	assert.False(t, PermittedValue("UP", "ASC", "DESC"))
}
