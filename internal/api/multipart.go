package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/h2non/filetype"

	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/pkg/apperror"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildMultipart собирает multipart/form-data тело: текстовые поля плюс
// файлы под общим именем fileField. Тип содержимого каждого файла
// определяется по магическим байтам, а не по расширению.
func buildMultipart(fields map[string]string, fileField string, files []models.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось сформировать форму")
		}
	}

	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(fileField), quoteEscaper.Replace(file.FileName)))
		header.Set("Content-Type", sniffContentType(file.Data))

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось добавить файл в форму")
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось записать файл в форму")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось завершить форму")
	}

	return &buf, writer.FormDataContentType(), nil
}

// sniffContentType определяет MIME-тип по содержимому файла.
func sniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}
