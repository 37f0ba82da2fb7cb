package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already canonical", input: "123-123-1234", want: "123-123-1234"},
		{name: "parentheses and space", input: "(123) 456-7890", want: "123-456-7890"},
		{name: "parentheses no space", input: "(123)456-7890", want: "123-456-7890"},
		{name: "spaces between groups", input: "123 456 7890", want: "123-456-7890"},
		{name: "bare digits", input: "1234567890", want: "123-456-7890"},
		{name: "space then hyphen", input: "123 456-7890", want: "123-456-7890"},
		{name: "hyphen then space", input: "123-456 7890", want: "123-456-7890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhonePanicsOnUnvalidatedInput(t *testing.T) {
	assert.Panics(t, func() { NormalizePhone("12345") })
	assert.Panics(t, func() { NormalizePhone("call 123-456-7890") })
}
