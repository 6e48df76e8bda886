package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/storage"
)

func newFilesCmd(appRef func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Работа с файлами",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return appRef().requireSession()
		},
	}

	cmd.AddCommand(
		newFilesDownloadCmd(appRef),
		newFilesUploadCmd(appRef),
		newFilesDeleteCmd(appRef),
	)
	return cmd
}

func newFilesDownloadCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <file-id>",
		Short: "Скачать файл",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			fileID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id файла: %s", args[0])
			}

			body, name, err := api.DownloadFile(cmd.Context(), a.client, fileID)
			if err != nil {
				return err
			}
			defer body.Close()

			downloads, err := storage.NewDownloadStorage(a.cfg.DownloadDir, a.cfg.MaxUploadSizeMB)
			if err != nil {
				return err
			}

			path, size, err := downloads.Save(cmd.Context(), name, body)
			if err != nil {
				return err
			}
			fmt.Printf("Сохранено: %s (%d байт)\n", path, size)
			return nil
		},
	}
}

func newFilesUploadCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <offer-id> <путь>",
		Short: "Прикрепить файл к предложению",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			offerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id предложения: %s", args[0])
			}

			uploads, err := readUploads(args[1:])
			if err != nil {
				return err
			}

			file, err := api.UploadOfferFile(cmd.Context(), a.client, offerID, uploads[0])
			if err != nil {
				return err
			}
			fmt.Printf("Файл загружен: %s (id %d)\n", file.Name, file.ID)
			return nil
		},
	}
}

func newFilesDeleteCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <offer-id> <file-id>",
		Short: "Открепить файл от предложения",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			offerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id предложения: %s", args[0])
			}
			fileID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id файла: %s", args[1])
			}

			if err := api.DeleteOfferFile(cmd.Context(), a.client, offerID, fileID); err != nil {
				return err
			}
			fmt.Println("Файл удалён")
			return nil
		},
	}
}
