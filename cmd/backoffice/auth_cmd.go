package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/validation"
)

func newLoginCmd(appRef func() *app) *cobra.Command {
	var login, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход в систему",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			if login == "" {
				login = a.prompt("Логин: ")
			}
			if err := validation.ValidateLogin(login); err != nil {
				return err
			}
			if password == "" {
				password = a.prompt("Пароль: ")
			}
			if err := validation.ValidatePassword(password); err != nil {
				return err
			}

			sess, err := a.store.Login(cmd.Context(), login, password)
			if err != nil {
				return err
			}

			// Стартовый раздел зависит только от роли, остальные права
			// приходят от сервера вместе с данными.
			fmt.Printf("Вход выполнен: %s\n", sess.Login)
			fmt.Printf("Раздел: %s\n", a.store.HomeRoute())
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "логин")
	cmd.Flags().StringVar(&password, "password", "", "пароль")
	return cmd
}

func newLogoutCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выход и удаление сохранённой сессии",
		RunE: func(cmd *cobra.Command, args []string) error {
			appRef().store.Logout()
			fmt.Println("Сессия завершена")
			return nil
		},
	}
}

func newWhoamiCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Текущая сессия",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			sess := a.store.Current()
			if sess == nil {
				fmt.Println("Вход не выполнен")
				return nil
			}
			fmt.Printf("Логин: %s\nРоль: %d\nРаздел: %s\n", sess.Login, sess.RoleID, a.store.HomeRoute())
			return nil
		},
	}
}

func newRegisterCmd(appRef func() *app) *cobra.Command {
	var form api.RegisterForm
	var asAdmin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация пользователя",
		Long:  "Самостоятельная регистрация поставщика либо создание пользователя администратором (--admin).",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			if err := validation.ValidateLogin(form.Login); err != nil {
				return err
			}
			if err := validation.ValidatePassword(form.Password); err != nil {
				return err
			}

			if asAdmin {
				if err := a.requireSession(); err != nil {
					return err
				}
				if err := api.RegisterUser(cmd.Context(), a.client, form); err != nil {
					return err
				}
			} else {
				if err := api.RegisterWeb(cmd.Context(), a.client, form); err != nil {
					return err
				}
			}

			fmt.Println("Пользователь зарегистрирован")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Login, "login", "", "логин")
	cmd.Flags().StringVar(&form.Password, "password", "", "пароль")
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().IntVar(&form.RoleID, "role", 0, "роль (только с --admin)")
	cmd.Flags().StringVar(&form.Company, "company", "", "компания")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "телефон")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "создать пользователя от имени администратора")
	return cmd
}
