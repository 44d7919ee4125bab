package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseList(t *testing.T) {
	data := []byte(`[
		"https://www.facebook.com/Formula1/reels",
		{"url": "https://www.facebook.com/nasa/reels", "maxReels": 3},
		{"url": "https://www.facebook.com/bbc/reels", "maxReels": null},
		{"maxReels": 4},
		"",
	]`)

	targets, err := Parse(data, intPtr(10))
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, "https://www.facebook.com/Formula1/reels", targets[0].URL)
	assert.Equal(t, intPtr(10), targets[0].MaxReels)
	assert.Equal(t, intPtr(3), targets[1].MaxReels)
	assert.Nil(t, targets[2].MaxReels)
}

func TestParsePagesObject(t *testing.T) {
	data := []byte(`{
		// relaxed syntax is accepted
		pages: [{url: 'https://www.facebook.com/page/reels'}],
	}`)

	targets, err := Parse(data, nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "https://www.facebook.com/page/reels", targets[0].URL)
	assert.Nil(t, targets[0].MaxReels)
}

func TestParseDefaultIsCopied(t *testing.T) {
	def := intPtr(5)
	targets, err := Parse([]byte(`["https://a.example/reels", "https://b.example/reels"]`), def)
	require.NoError(t, err)
	*targets[0].MaxReels = 1
	assert.Equal(t, 5, *targets[1].MaxReels)
	assert.Equal(t, 5, *def)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"not json":       `{{`,
		"scalar":         `42`,
		"pages not list": `{"pages": "x"}`,
		"bad limit":      `[{"url": "https://a.example", "maxReels": "many"}]`,
		"object limit":   `[{"url": "https://a.example", "maxReels": {}}]`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), nil)
			assert.Error(t, err)
		})
	}
}

func TestParseClampsAndTruncatesLimits(t *testing.T) {
	data := `[
		{"url": "https://www.facebook.com/a/reels", "maxReels": -1},
		"https://www.facebook.com/b/reels",
		{"url": "https://www.facebook.com/c/reels", "maxReels": 2.7},
	]`

	targets, err := Parse([]byte(data), nil)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	require.NotNil(t, targets[0].MaxReels)
	assert.Equal(t, 0, *targets[0].MaxReels)
	assert.Nil(t, targets[1].MaxReels)
	require.NotNil(t, targets[2].MaxReels)
	assert.Equal(t, 2, *targets[2].MaxReels)
}

func TestParseObjectWithoutPages(t *testing.T) {
	targets, err := Parse([]byte(`{"other": []}`), nil)
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`["https://www.facebook.com/x/reels"]`), 0644))

	targets, err := Load(path, nil)
	require.NoError(t, err)
	assert.Len(t, targets, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
