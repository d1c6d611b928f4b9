package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxSize = 5 * 1024 * 1024

func TestValidateUpload(t *testing.T) {
	valid := func() (string, string, string, string, int64) {
		return "A forest", "Naturaleza", "forest.jpg", "image/jpeg", 1024
	}

	t.Run("accepts a valid payload", func(t *testing.T) {
		desc, cat, name, ct, size := valid()
		assert.NoError(t, ValidateUpload(desc, cat, name, ct, size, maxSize))
	})

	t.Run("accepts every allowed format", func(t *testing.T) {
		for name, ct := range map[string]string{
			"a.jpg":  "image/jpeg",
			"a.jpeg": "image/jpg",
			"a.png":  "image/png",
			"a.JPG":  "IMAGE/JPEG", // extension and content-type checks are case-insensitive
		} {
			assert.NoError(t, ValidateUpload("d", "c", name, ct, 1, maxSize), name)
		}
	})

	cases := []struct {
		name        string
		description string
		category    string
		filename    string
		contentType string
		size        int64
	}{
		{"blank description", "   ", "c", "a.jpg", "image/jpeg", 1},
		{"blank category", "d", "", "a.jpg", "image/jpeg", 1},
		{"no file", "d", "c", "", "", 0},
		{"zero size", "d", "c", "a.jpg", "image/jpeg", 0},
		{"over ceiling", "d", "c", "a.jpg", "image/jpeg", maxSize + 1},
		{"gif extension", "d", "c", "a.gif", "image/jpeg", 1},
		{"no extension", "d", "c", "image", "image/jpeg", 1},
		{"gif content type", "d", "c", "a.jpg", "image/gif", 1},
		{"svg smuggled as png name", "d", "c", "a.png", "image/svg+xml", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(tc.description, tc.category, tc.filename, tc.contentType, tc.size, maxSize)
			assert.Error(t, err)
		})
	}

	t.Run("exactly at ceiling is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateUpload("d", "c", "a.jpg", "image/jpeg", maxSize, maxSize))
	})
}

func TestFilterSongs(t *testing.T) {
	t.Run("keeps order and drops malformed entries", func(t *testing.T) {
		kept := FilterSongs([]SongInput{
			{Title: "One", Link: "http://1"},
			{Title: "", Link: "http://gone"},
			{Title: "Two", Link: "http://2"},
			{Title: "gone", Link: " "},
			{Title: "Three", Link: "http://3"},
		})
		require.Len(t, kept, 3)
		assert.Equal(t, "One", kept[0].Title)
		assert.Equal(t, "Two", kept[1].Title)
		assert.Equal(t, "Three", kept[2].Title)
	})

	t.Run("nil and all-malformed input", func(t *testing.T) {
		assert.Empty(t, FilterSongs(nil))
		assert.Empty(t, FilterSongs([]SongInput{{Title: "", Link: ""}}))
	})
}
