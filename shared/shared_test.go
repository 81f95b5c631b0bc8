package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/shared"
)

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "spaced sixteen digits",
			input:    "4111 1111 1111 1111",
			expected: "************1111",
		},
		{
			name:     "unspaced sixteen digits",
			input:    "5500000000000004",
			expected: "************0004",
		},
		{
			name:     "short value stays as is",
			input:    "1234",
			expected: "1234",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, shared.MaskCardNumber(test.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "remainder rounds up", total: 21, limit: 10, expected: 3},
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 20, limit: 0, expected: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, shared.CalculateTotalPage(test.total, test.limit))
		})
	}
}

func TestConvertStringToBool(t *testing.T) {
	truthy := shared.ConvertStringToBool("true")
	if assert.NotNil(t, truthy) {
		assert.True(t, *truthy)
	}

	falsy := shared.ConvertStringToBool("false")
	if assert.NotNil(t, falsy) {
		assert.False(t, *falsy)
	}

	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("not-a-bool"))
}
