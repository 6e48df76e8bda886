package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/config"
	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/logger"
	"github.com/procwise/backoffice-client/internal/pkg/apperror"
	"github.com/procwise/backoffice-client/internal/session"
)

// app собирает зависимости команд: конфигурацию, HTTP-клиент и сессию.
type app struct {
	cfg    *config.Config
	client *httpclient.Client
	store  *session.Store
	stdin  *bufio.Scanner
}

// newApp создаёт приложение. Хранилище сессии подключается к клиенту как
// обработчик 401: любой неавторизованный ответ завершает сессию.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	var store *session.Store
	client := httpclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, func() {
		if store != nil {
			store.HandleUnauthorized()
		}
	})
	store = session.NewStore(cfg.SessionFile, client)

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		stdin:  bufio.NewScanner(os.Stdin),
	}, nil
}

// requireSession возвращает ошибку, если пользователь не вошёл.
func (a *app) requireSession() error {
	if !a.store.IsAuthenticated() {
		return apperror.ErrNoSession
	}
	return nil
}

// prompt читает одну строку из stdin после подсказки.
func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.stdin.Scan() {
		return ""
	}
	return a.stdin.Text()
}

func newRootCmd() *cobra.Command {
	var application *app

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Терминальный клиент закупочного бэк-офиса",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			application, err = newApp()
			return err
		},
	}

	appRef := func() *app { return application }

	root.AddCommand(
		newLoginCmd(appRef),
		newLogoutCmd(appRef),
		newWhoamiCmd(appRef),
		newRegisterCmd(appRef),
		newRequestsCmd(appRef),
		newWorkspaceCmd(appRef),
		newUsersCmd(appRef),
		newFilesCmd(appRef),
	)

	return root
}
