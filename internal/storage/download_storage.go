package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DownloadStorage отвечает за сохранение скачанных вложений на диск.
type DownloadStorage struct {
	rootPath     string
	maxFileBytes int64
}

// NewDownloadStorage создаёт каталог загрузок.
func NewDownloadStorage(rootPath string, maxFileMB int64) (*DownloadStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &DownloadStorage{
		rootPath:     rootPath,
		maxFileBytes: maxFileMB * 1024 * 1024,
	}, nil
}

// Save сохраняет содержимое r под безопасным именем и возвращает итоговый путь.
// Запись идёт во временный файл с последующим переименованием.
func (s *DownloadStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	safeName := sanitizeFilename(originalName)
	targetPath := filepath.Join(s.rootPath, safeName)

	// Не затираем существующий файл с тем же именем.
	if _, err := os.Stat(targetPath); err == nil {
		ext := filepath.Ext(safeName)
		base := strings.TrimSuffix(safeName, ext)
		targetPath = filepath.Join(s.rootPath, fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext))
	}

	tempPath := targetPath + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxFileBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxFileBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxFileBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return targetPath, written, nil
}

// sanitizeFilename убирает из имени файла путь и небезопасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r > 127:
			// Кириллицу и прочий юникод оставляем как есть.
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
