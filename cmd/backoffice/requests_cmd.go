package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/validation"
)

func newRequestsCmd(appRef func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Работа с заявками",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return appRef().requireSession()
		},
	}

	cmd.AddCommand(
		newRequestsListCmd(appRef, "list", "Мои заявки", api.ListRequests),
		newRequestsListCmd(appRef, "open", "Открытые заявки", api.ListOpenRequests),
		newRequestsListCmd(appRef, "offered", "Заявки с моими предложениями", api.ListOfferedRequests),
		newRequestsShowCmd(appRef),
		newRequestsCreateCmd(appRef),
		newRequestsUpdateCmd(appRef),
	)
	return cmd
}

type requestLister func(ctx context.Context, c *httpclient.Client) ([]models.Request, error)

func newRequestsListCmd(appRef func() *app, use, short string, list requestLister) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			requests, err := list(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			printRequests(requests)
			return nil
		},
	}
}

func newRequestsShowCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Заявка подробно",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id заявки: %s", args[0])
			}

			r, err := api.GetRequest(cmd.Context(), a.client, id)
			if err != nil {
				return err
			}

			fmt.Printf("Заявка #%d [%s]\n%s\n", r.ID, r.StatusLabel, r.Description)
			if r.Deadline != nil {
				fmt.Printf("Срок: %s\n", r.Deadline.Format("2006-01-02"))
			}
			fmt.Printf("Предложения: подано %d, принято %d, отклонено %d\n",
				r.Stats.Submitted, r.Stats.Accepted, r.Stats.Rejected)
			for _, f := range r.Files {
				fmt.Printf("  файл #%d %s\n", f.ID, f.Name)
			}
			return nil
		},
	}
}

func newRequestsCreateCmd(appRef func() *app) *cobra.Command {
	var description, deadline string
	var filePaths []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать заявку",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			files, err := readUploads(filePaths)
			if err != nil {
				return err
			}

			request, err := api.CreateRequest(cmd.Context(), a.client, api.NewRequest{
				Description: description,
				Deadline:    deadline,
				Files:       files,
			})
			if err != nil {
				var fieldErr *validation.FieldError
				if errors.As(err, &fieldErr) {
					fmt.Printf("Ошибка в поле %s: %s\n", fieldErr.Field, fieldErr.Message)
				}
				return err
			}

			fmt.Printf("Заявка #%d создана\n", request.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "описание заявки")
	cmd.Flags().StringVar(&deadline, "deadline", "", "срок в формате YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&filePaths, "file", nil, "прикрепляемый файл (можно несколько раз)")
	return cmd
}

func newRequestsUpdateCmd(appRef func() *app) *cobra.Command {
	var status, deadline, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить заявку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id заявки: %s", args[0])
			}

			patch := api.RequestPatch{}
			if status != "" {
				if _, ok := models.ValidRequestStatuses[status]; !ok {
					return fmt.Errorf("недопустимый статус заявки: %s", status)
				}
				patch.Status = &status
			}
			if deadline != "" {
				patch.Deadline = &deadline
			}
			if description != "" {
				patch.Description = &description
			}

			request, err := api.UpdateRequest(cmd.Context(), a.client, id, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Заявка #%d: %s\n", request.ID, request.StatusLabel)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "новый статус")
	cmd.Flags().StringVar(&deadline, "deadline", "", "новый срок YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "новое описание")
	return cmd
}

// readUploads читает файлы с диска для отправки на сервер.
func readUploads(paths []string) ([]models.Upload, error) {
	var uploads []models.Upload
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать файл %s: %w", path, err)
		}
		uploads = append(uploads, models.Upload{
			FileName: filepath.Base(path),
			Data:     data,
		})
	}
	return uploads, nil
}

func printRequests(requests []models.Request) {
	if len(requests) == 0 {
		fmt.Println("Заявок нет")
		return
	}
	for _, r := range requests {
		deadline := "—"
		if r.Deadline != nil {
			deadline = r.Deadline.Format("2006-01-02")
		}
		fmt.Printf("#%-6d %-16s срок %-10s предложений: %d  %s\n",
			r.ID, r.StatusLabel, deadline, r.Stats.Submitted, r.Description)
	}
}
