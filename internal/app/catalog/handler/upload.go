package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"ksscientifique/pkg/logger"
)

// readUploadedFile читает байты multipart-файла целиком.
// Возвращает содержимое и заявленный клиентом Content-Type
// (может быть пустым или generic, нормализация дальше по конвейеру).
func readUploadedFile(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, fh.Header.Get("Content-Type"), nil
}

// mirrorUpload дублирует загруженный файл на диск, если настроен каталог
// загрузок. Имя в стиле multer: <поле>_<unix nano><расширение>.
// Каноническое хранилище изображений - документ в MongoDB, зеркало
// вспомогательное, его ошибки не прерывают запрос.
func mirrorUpload(uploadDir, field, filename string, data []byte) {
	if uploadDir == "" {
		return
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Warn().Err(err).Str("dir", uploadDir).Msg("failed to create upload dir")
		return
	}

	name := fmt.Sprintf("%s_%d%s", field, time.Now().UnixNano(), filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(uploadDir, name), data, 0o644); err != nil {
		logger.Warn().Err(err).Str("file", name).Msg("failed to mirror upload to disk")
	}
}
