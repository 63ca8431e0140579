package middleware

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Input validation and sanitization utilities

// allowedExtensions mirrors the upload filter: only PDF and common raster
// image formats are accepted.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateUpload checks the file name extension and the declared MIME type
// before anything is written to disk.
func ValidateUpload(fileName, mimeType string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return fmt.Errorf("extension %q not allowed (allowed: pdf, jpg, jpeg, png)", ext)
	}
	if mimeType != "application/pdf" && !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("mime type %q not allowed (allowed: application/pdf, image/*)", mimeType)
	}
	return nil
}

// SanitizeFileName strips directory components and control characters from a
// client-supplied file name.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var result strings.Builder
	for _, r := range name {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(result.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}

// ValidateLimit clamps the recent-list limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 10 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
