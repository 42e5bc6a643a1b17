package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"1000", 1000},
		{"  1002 ", 1000},
		{"3", 5},
		{"+8", 10},
		{"17", 15},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw, 5)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestParseAmount_Rejections(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"", ErrInputEmpty},
		{"   ", ErrInputEmpty},
		{"abc", ErrInputNotInteger},
		{"12.5", ErrInputNotInteger},
		{"1 000", ErrInputNotInteger},
		{"99999999999999999999", ErrInputNotInteger},
		{"0", ErrInputNonPositive},
		{"2", ErrInputNonPositive},
		{"-10", ErrInputNonPositive},
	}
	for _, tt := range tests {
		_, err := ParseAmount(tt.raw, 5)
		require.Error(t, err, "raw %q", tt.raw)
		assert.ErrorIs(t, err, tt.want, "raw %q", tt.raw)
		assert.True(t, IsInputError(err))
	}
}

func TestParseAmount_Step(t *testing.T) {
	got, err := ParseAmount("1234", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got)

	got, err = ParseAmount("1234", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got)
}
