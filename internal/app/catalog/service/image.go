package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/pkg/metrics"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrValidation       = errors.New("validation failed")
	ErrInvalidImage     = errors.New("invalid image data")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// normalizeImage приводит входное изображение к единому виду хранения,
// независимо от того, каким путём оно пришло в запрос.
//
// Байты multipart-загрузки уже бинарные и имеют приоритет над текстовым
// base64-полем; повторно base64 к ним не применяется. Content-Type берётся
// из заявленного MIME загрузки, а при его отсутствии или generic-значении
// определяется по содержимому.
func normalizeImage(in entity.ImageInput) (entity.Image, error) {
	if len(in.Data) > 0 {
		ct := in.MIMEType
		if ct == "" || ct == "application/octet-stream" {
			ct = mimetype.Detect(in.Data).String()
		}
		metrics.ImageBytesStored.Observe(float64(len(in.Data)))
		return entity.Image{Data: in.Data, ContentType: ct}, nil
	}

	if in.Base64 == "" {
		return entity.Image{}, nil
	}

	data, err := decodeBase64Field(in.Base64)
	if err != nil {
		return entity.Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	metrics.ImageBytesStored.Observe(float64(len(data)))
	return entity.Image{Data: data, ContentType: mimetype.Detect(data).String()}, nil
}

// decodeBase64Field декодирует base64-поле формы.
// Админский фронтенд присылает как голый base64, так и data-URL
// ("data:image/png;base64,...") - префикс отбрасывается.
func decodeBase64Field(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, ","); idx >= 0 {
			s = s[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// fallback для значений без выравнивающего padding
	return base64.RawStdEncoding.DecodeString(s)
}
