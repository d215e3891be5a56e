package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/model"
)

func TestValidateArticleFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    model.ArticleFields
		wantField string
	}{
		{name: "valid", fields: model.ArticleFields{Title: "Hello World", Body: "Some body text"}},
		{name: "exactly five characters", fields: model.ArticleFields{Title: "Hello", Body: "World"}},
		{name: "multibyte counts runes", fields: model.ArticleFields{Title: "Canción", Body: "ñandú"}},
		{name: "short title", fields: model.ArticleFields{Title: "Hi", Body: "Some body text"}, wantField: "titulo"},
		{name: "empty title", fields: model.ArticleFields{Body: "Some body text"}, wantField: "titulo"},
		{name: "blank title", fields: model.ArticleFields{Title: "       ", Body: "Some body text"}, wantField: "titulo"},
		{name: "short body", fields: model.ArticleFields{Title: "Hello World", Body: "ok"}, wantField: "contenido"},
		{name: "empty body", fields: model.ArticleFields{Title: "Hello World"}, wantField: "contenido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleFields(tt.fields)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, msgInvalidFields, fe.Error())
		})
	}
}

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		supplied bool
		wantErr  bool
	}{
		{name: "png", filename: "foto.png", supplied: true},
		{name: "jpg", filename: "foto.jpg", supplied: true},
		{name: "jpeg", filename: "archive.tar.jpeg", supplied: true},
		{name: "gif", filename: "anim.gif", supplied: true},
		{name: "missing file", supplied: false, wantErr: true},
		{name: "executable", filename: "virus.exe", supplied: true, wantErr: true},
		{name: "uppercase extension", filename: "FOTO.PNG", supplied: true, wantErr: true},
		{name: "no extension", filename: "png", supplied: true},
		{name: "no extension other name", filename: "imagen", supplied: true, wantErr: true},
		{name: "trailing dot", filename: "foto.", supplied: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUpload(tt.filename, tt.supplied)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ie *ImageError
			require.True(t, errors.As(err, &ie))
			assert.NotEmpty(t, ie.Reason)
		})
	}
}

func TestValidateImageUploadMessages(t *testing.T) {
	assert.EqualError(t, ValidateImageUpload("", false), "No se ha subido la imagen")
	assert.EqualError(t, ValidateImageUpload("a.exe", true),
		"Formato de imagen no válido, formatos permitidos: png, jpg, jpeg, gif")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "png", Extension("a.b.png"))
	assert.Equal(t, "", Extension("foto."))
	assert.Equal(t, "imagen", Extension("imagen"))
}
