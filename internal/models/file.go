package models

// File описывает файл, прикреплённый к заявке, предложению или сообщению.
type File struct {
	ID          int64  `json:"id"`
	Path        string `json:"path,omitempty"`
	Name        string `json:"name"`
	DownloadURL string `json:"download_url,omitempty"`
}

// Upload — содержимое файла, отправляемого на сервер.
type Upload struct {
	FileName string
	Data     []byte
}
