package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/goroutine"
	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/workspace"
	"github.com/procwise/backoffice-client/internal/ws"
)

// stdinConfirmer запрашивает подтверждение y/n через общий stdin.
type stdinConfirmer struct {
	a *app
}

func (c stdinConfirmer) Confirm(prompt string) bool {
	answer := c.a.prompt(prompt + " [y/n]: ")
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func newWorkspaceCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workspace <offer-id>",
		Short: "Рабочая область предложения: чат, статусы, конкурирующие предложения",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return appRef().requireSession()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			offerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id предложения: %s", args[0])
			}

			sess := a.store.Current()
			ctrl := workspace.NewController(
				workspace.NewGateway(a.client),
				stdinConfirmer{a: a},
				workspace.Identity{Login: sess.Login, RoleID: sess.RoleID},
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := ctrl.LoadWorkspace(ctx, offerID); err != nil {
				return err
			}

			goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
				ctrl.Run(ctx, a.cfg.PollInterval)
			})
			if a.cfg.WSEnabled {
				notifier := ws.NewNotifier(a.cfg.APIBaseURL, a.client.Token(), ctrl.Nudge)
				goroutine.SafeGoWithContext(ctx, notifier.Run)
			}

			renderView(ctrl.View())
			return runWorkspaceLoop(ctx, a, ctrl)
		},
	}
}

// runWorkspaceLoop — командный цикл рабочей области. Ввод текста играет
// роль фокуса на поле сообщения: перед отправкой видимые сообщения
// собеседника помечаются прочитанными.
func runWorkspaceLoop(ctx context.Context, a *app, ctrl *workspace.Controller) error {
	fmt.Println("Команды: show, say <текст>, attach <файл> <текст>, read, accept, reject, delete, new, select <id>, quit")

	for {
		line := a.prompt("> ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		command, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

		switch command {
		case "quit", "exit":
			return nil

		case "show":
			renderView(ctrl.View())

		case "say":
			ctrl.MarkRead(ctx)
			if err := ctrl.SendMessage(ctx, rest, nil); err != nil {
				printWorkspaceError(ctrl)
				continue
			}
			renderView(ctrl.View())

		case "attach":
			parts := strings.Fields(rest)
			if len(parts) < 2 {
				fmt.Println("Использование: attach <файл> <текст>")
				continue
			}
			files, err := readUploads(parts[:1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			text := strings.TrimSpace(strings.TrimPrefix(rest, parts[0]))
			ctrl.MarkRead(ctx)
			if err := ctrl.SendMessage(ctx, text, files); err != nil {
				printWorkspaceError(ctrl)
				continue
			}
			renderView(ctrl.View())

		case "read":
			ctrl.MarkRead(ctx)
			renderView(ctrl.View())

		case "accept", "reject", "delete":
			status := map[string]string{
				"accept": models.OfferStatusAccepted,
				"reject": models.OfferStatusRejected,
				"delete": models.OfferStatusDeleted,
			}[command]
			if err := ctrl.ChangeOfferStatus(ctx, status); err != nil {
				printWorkspaceError(ctrl)
				continue
			}
			renderView(ctrl.View())

		case "new":
			path, err := ctrl.CreateAdditionalOffer(ctx)
			if err != nil {
				printWorkspaceError(ctrl)
				continue
			}
			fmt.Printf("Создано предложение, рабочая область: %s\n", path)
			renderView(ctrl.View())

		case "select":
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				fmt.Println("Использование: select <id>")
				continue
			}
			if err := ctrl.SelectOffer(ctx, id); err != nil {
				printWorkspaceError(ctrl)
				continue
			}
			renderView(ctrl.View())

		default:
			fmt.Printf("Неизвестная команда: %s\n", command)
		}
	}
}

func printWorkspaceError(ctrl *workspace.Controller) {
	if msg := ctrl.LastError(); msg != "" {
		fmt.Printf("Ошибка: %s\n", msg)
	}
}

func renderView(v workspace.View) {
	fmt.Printf("\nЗаявка #%d [%s] %s\n", v.Request.ID, v.Request.StatusLabel, v.Request.Description)

	for _, offer := range v.Offers {
		marker := "  "
		if offer.ID == v.SelectedID {
			marker = "->"
		}
		fmt.Printf("%s предложение #%d [%s] от %s\n", marker, offer.ID, offer.StatusLabel, offer.CreatedAt.Format("02.01.2006 15:04"))
	}

	if v.Contact != nil {
		fmt.Printf("Поставщик: %s", v.Contact.Login)
		if v.Contact.Phone != "" {
			fmt.Printf(", тел. %s", v.Contact.Phone)
		}
		if v.Contact.Email != "" {
			fmt.Printf(", %s", v.Contact.Email)
		}
		fmt.Println()
	}

	fmt.Println("--- чат ---")
	for _, m := range v.Messages {
		fmt.Printf("[%s] %s: %s\n", messageStatusMark(m.Status), m.AuthorLogin, m.Text)
		for _, att := range m.Attachments {
			fmt.Printf("      📎 %s (файл %d)\n", att.Name, att.FileID)
		}
	}

	var abilities []string
	if v.CanSendMessage {
		abilities = append(abilities, "сообщения")
	}
	if v.CanSendAttachments {
		abilities = append(abilities, "вложения")
	}
	if v.CanChangeStatus {
		abilities = append(abilities, "смена статуса")
	}
	if v.CanCreateOffer {
		abilities = append(abilities, "новое предложение")
	}
	fmt.Printf("Доступно: %s\n", strings.Join(abilities, ", "))

	if v.LastError != "" {
		fmt.Printf("Ошибка: %s\n", v.LastError)
	}
}

func messageStatusMark(status string) string {
	switch status {
	case models.MessageStatusSend:
		return "✓"
	case models.MessageStatusReceived:
		return "✓✓"
	case models.MessageStatusRead:
		return "✓✓*"
	default:
		return "?"
	}
}
