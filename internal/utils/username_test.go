package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"  Alice ", "alice"},
		{"@bob.smith", "bob.smith"},
		{"carol/", "carol"},
		{"https://www.instagram.com/dave_99/", "dave_99"},
		{"https://instagram.com/Eve/?hl=en", "eve"},
		{"instagram.com/frank", "frank"},
		{"", ""},
		{"   ", ""},
		{"@", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, NormalizeUsername(tc.in), "input %q", tc.in)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("alice"))
	assert.True(t, IsValidUsername("a.b_c9"))
	assert.False(t, IsValidUsername(""))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername("abcdefghijabcdefghijabcdefghijk"))
}

func TestSplitUsernames(t *testing.T) {
	got := SplitUsernames("alice  @Bob\n\thttps://www.instagram.com/carol/ alice")
	assert.Equal(t, []string{"alice", "bob", "carol", "alice"}, got)

	assert.Empty(t, SplitUsernames(""))
	assert.Empty(t, SplitUsernames(" \n\t "))
}
