package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  How to   train your Dragon!  ", "how-to-train-your-dragon"},
		{"Don't panic", "dont-panic"},
		{"Go 1.24 released", "go-1-24-released"},
		{"Ünïcode Títle", "ünïcode-títle"},
		{"!!!", "article"},
		{"", "article"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestRandomSlugSuffix(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		suffix, err := randomSlugSuffix()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{6}$`), suffix)
		seen[suffix] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestBuildSlugUsesSuffixSource(t *testing.T) {
	c := &Core{slugSuffix: func() (string, error) { return "abc123", nil }}
	slug, err := c.buildSlug("My Article")
	require.NoError(t, err)
	assert.Equal(t, "my-article-abc123", slug)
}
