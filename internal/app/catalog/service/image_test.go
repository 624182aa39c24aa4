package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"ksscientifique/internal/app/catalog/entity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImage_FileBytes(t *testing.T) {
	in := entity.ImageInput{Data: pngBytes, MIMEType: "image/png"}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestNormalizeImage_SniffsMissingContentType(t *testing.T) {
	in := entity.ImageInput{Data: pngBytes}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestNormalizeImage_SniffsGenericContentType(t *testing.T) {
	in := entity.ImageInput{Data: pngBytes, MIMEType: "application/octet-stream"}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestNormalizeImage_Base64Field(t *testing.T) {
	in := entity.ImageInput{Base64: base64.StdEncoding.EncodeToString(pngBytes)}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestNormalizeImage_DataURLPrefix(t *testing.T) {
	in := entity.ImageInput{
		Base64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
	}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestNormalizeImage_Base64WithoutPadding(t *testing.T) {
	encoded := strings.TrimRight(base64.StdEncoding.EncodeToString(pngBytes), "=")
	in := entity.ImageInput{Base64: encoded}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
}

func TestNormalizeImage_FileBytesWinOverBase64(t *testing.T) {
	in := entity.ImageInput{
		Data:     pngBytes,
		MIMEType: "image/png",
		Base64:   base64.StdEncoding.EncodeToString([]byte("something else")),
	}

	img, err := normalizeImage(in)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
}

func TestNormalizeImage_InvalidBase64(t *testing.T) {
	in := entity.ImageInput{Base64: "definitely!!!not@@@base64"}

	_, err := normalizeImage(in)

	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestNormalizeImage_Empty(t *testing.T) {
	img, err := normalizeImage(entity.ImageInput{})

	assert.NoError(t, err)
	assert.True(t, img.IsZero())
}

func TestDecodeBase64Field_TrimsWhitespace(t *testing.T) {
	encoded := "  " + base64.StdEncoding.EncodeToString(pngBytes) + "\n"

	data, err := decodeBase64Field(encoded)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}
