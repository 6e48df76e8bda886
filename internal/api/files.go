package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/models"
)

// UploadOfferFile прикрепляет файл к предложению.
func UploadOfferFile(ctx context.Context, c *httpclient.Client, offerID int64, file models.Upload) (*models.File, error) {
	body, contentType, err := buildMultipart(nil, "file", []models.Upload{file})
	if err != nil {
		return nil, err
	}

	var uploaded models.File
	path := fmt.Sprintf("%s/offers/%d/files", basePath, offerID)
	opts := &httpclient.RequestOptions{ContentType: contentType}
	if err := c.FetchJSON(ctx, http.MethodPost, path, body, opts, &uploaded, "не удалось загрузить файл"); err != nil {
		return nil, err
	}
	return &uploaded, nil
}

// DeleteOfferFile открепляет файл от предложения.
func DeleteOfferFile(ctx context.Context, c *httpclient.Client, offerID, fileID int64) error {
	path := fmt.Sprintf("%s/offers/%d/files/%d", basePath, offerID, fileID)
	return c.FetchEmpty(ctx, http.MethodDelete, path, nil, nil, "не удалось удалить файл")
}

// DownloadFile запрашивает содержимое файла. Возвращает поток и имя файла
// из Content-Disposition; закрыть поток должен вызывающий.
func DownloadFile(ctx context.Context, c *httpclient.Client, fileID int64) (io.ReadCloser, string, error) {
	path := fmt.Sprintf("%s/files/%d/download", basePath, fileID)
	resp, err := c.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, "", c.DecodeError(resp, "не удалось скачать файл")
	}

	name := fmt.Sprintf("file_%d", fileID)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if filename := params["filename"]; filename != "" {
			name = filename
		}
	}

	return resp.Body, name, nil
}
