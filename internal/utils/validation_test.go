package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidHexColor(t *testing.T) {
	for _, valid := range []string{"#fff", "#FFF", "#2563eb", "#2563EBff"} {
		require.True(t, IsValidHexColor(valid), valid)
	}
	for _, invalid := range []string{"", "fff", "#ff", "#fffff", "red", "url(javascript:alert(1))", "#2563eb;"} {
		require.False(t, IsValidHexColor(invalid), invalid)
	}
}

func TestWidgetColorValidationAllowsEmpty(t *testing.T) {
	type styled struct {
		Color string `validate:"widget_color"`
	}

	require.NoError(t, ValidateStruct(&styled{}))
	require.NoError(t, ValidateStruct(&styled{Color: "#abcdef"}))
	require.Error(t, ValidateStruct(&styled{Color: "blue"}))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "a****f@example.com", MaskEmail("abcdef@example.com"))
	require.Equal(t, "ab@example.com", MaskEmail("ab@example.com"))
	require.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("user@example.com"))
	require.True(t, IsValidEmail("user.name+tag@sub.example.co"))
	require.False(t, IsValidEmail("user@"))
	require.False(t, IsValidEmail("@example.com"))
	require.False(t, IsValidEmail("user example.com"))
}
