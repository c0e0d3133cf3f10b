package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-analyze-go/internal/model"
)

func TestParseCount(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"7", 7},
		{"1,234", 1234},
		{"12.345", 12345},
		{"12K", 12000},
		{"1.5k", 1500},
		{"1.2M", 1200000},
		{"3 M", 3000000},
		{"2B", 2000000000},
	}

	for _, tc := range testCases {
		got, err := ParseCount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "abc", "-5", "K", "99999999999B", "3B", "99999999999", "NaNK"} {
		_, err := ParseCount(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseProfilePage(t *testing.T) {
	p := NewProfilePageParser()

	attrs, err := p.Parse(`<meta property="og:description" content="1.2M Followers, 1,500 Following, 4 Posts - x">`)
	require.NoError(t, err)
	assert.Equal(t, model.NewProfileAttributes(false, 4, 1200000, 1500), attrs)

	attrs, err = p.Parse(`<meta property="og:image" content="a.jpg"><meta property="og:description" content="1 Follower, 0 Following, 1 Post">`)
	require.NoError(t, err)
	assert.Equal(t, model.NewProfileAttributes(true, 1, 1, 0), attrs)
}

func TestParseProfilePageMissingMeta(t *testing.T) {
	p := NewProfilePageParser()

	_, err := p.Parse(`<html><head><title>Login</title></head></html>`)
	assert.ErrorIs(t, err, model.ErrInvalidAttributes)

	_, err = p.Parse(`<meta property="og:description" content="See Instagram photos">`)
	assert.ErrorIs(t, err, model.ErrInvalidAttributes)
}
