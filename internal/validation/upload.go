// Package validation contains pure input checks that run before any
// database interaction begins.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"galeto/internal/models"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// SongInput is one {title, link} pair from an upload payload.
type SongInput struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ValidateUpload checks a candidate publication payload: non-empty
// description, an image present with an allow-listed raster format (both by
// extension and declared content-type) and within the size ceiling. It never
// touches storage; the category name is re-resolved inside the publication
// transaction instead of here.
func ValidateUpload(description, categoryName, filename, contentType string, size, maxSize int64) error {
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("Description is required")
	}
	if strings.TrimSpace(categoryName) == "" {
		return models.NewValidationError("Category is required")
	}
	if filename == "" || size == 0 {
		return models.NewValidationError("Image file is required")
	}
	if size > maxSize {
		return models.NewValidationError(fmt.Sprintf("Image too large (max %dMB)", maxSize/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return models.NewValidationError("Only .jpg, .jpeg or .png images are allowed")
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return models.NewValidationError("Only .jpg, .jpeg or .png images are allowed")
	}
	return nil
}

// FilterSongs keeps the entries that have both a non-empty title and link,
// preserving submission order. Malformed entries are silently skipped rather
// than failing the whole request, so link positions assigned afterwards are
// dense with no gaps.
func FilterSongs(songs []SongInput) []SongInput {
	var kept []SongInput
	for _, s := range songs {
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Link) == "" {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
