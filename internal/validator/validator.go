// Package validator holds the pure checks applied to article payloads and image uploads.
package validator

import (
	"strings"
	"unicode/utf8"

	"blogapi/internal/model"
)

// MinFieldLength is the minimum number of characters for titulo and contenido.
const MinFieldLength = 5

// AllowedImageExtensions lists the accepted upload extensions. Matching is case-sensitive.
var AllowedImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

const (
	msgInvalidFields = "Titulo y contenido son obligatorios y deben tener al menos 5 caracteres"
	msgMissingImage  = "No se ha subido la imagen"
)

// FieldError reports an article payload that cannot be stored.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }

// ImageError reports a rejected image upload.
type ImageError struct {
	Filename string
	Reason   string
}

func (e *ImageError) Error() string { return e.Reason }

// ValidateArticleFields checks that titulo and contenido are present and long enough.
func ValidateArticleFields(fields model.ArticleFields) error {
	if !longEnough(fields.Title) {
		return &FieldError{Field: "titulo", Reason: msgInvalidFields}
	}
	if !longEnough(fields.Body) {
		return &FieldError{Field: "contenido", Reason: msgInvalidFields}
	}
	return nil
}

// ValidateImageUpload checks that a file was supplied and that its extension is allowed.
func ValidateImageUpload(filename string, supplied bool) error {
	if !supplied {
		return &ImageError{Reason: msgMissingImage}
	}
	ext := Extension(filename)
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &ImageError{
		Filename: filename,
		Reason:   "Formato de imagen no válido, formatos permitidos: " + strings.Join(AllowedImageExtensions, ", "),
	}
}

// Extension returns the text after the last dot, or the whole name when there is none.
func Extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func longEnough(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return utf8.RuneCountInString(s) >= MinFieldLength
}
