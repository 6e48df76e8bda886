package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/models"
)

func newUsersCmd(appRef func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Управление пользователями и собственным профилем",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return appRef().requireSession()
		},
	}

	cmd.AddCommand(
		newUsersListCmd(appRef),
		newUsersStatusCmd(appRef),
		newUsersProfileCmd(appRef),
		newUsersPasswordCmd(appRef),
	)
	return cmd
}

func newUsersListCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список пользователей",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			users, err := api.ListUsers(cmd.Context(), a.client)
			if err != nil {
				return err
			}

			for _, u := range users {
				state := "активен"
				if !u.IsActive {
					state = "заблокирован"
				}
				fmt.Printf("#%-6d %-20s %-14s %s\n", u.ID, u.Login, models.RoleName(u.RoleID), state)
			}
			return nil
		},
	}
}

func newUsersStatusCmd(appRef func() *app) *cobra.Command {
	var activate, block bool

	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Активировать или заблокировать пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id пользователя: %s", args[0])
			}
			if activate == block {
				return fmt.Errorf("укажите ровно один флаг: --activate или --block")
			}

			if err := api.UpdateUserStatus(cmd.Context(), a.client, id, activate); err != nil {
				return err
			}
			fmt.Println("Статус пользователя обновлён")
			return nil
		},
	}

	cmd.Flags().BoolVar(&activate, "activate", false, "активировать")
	cmd.Flags().BoolVar(&block, "block", false, "заблокировать")
	return cmd
}

func newUsersProfileCmd(appRef func() *app) *cobra.Command {
	var email, phone, company string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Обновить собственный профиль",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			patch := api.ProfilePatch{}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("phone") {
				patch.Phone = &phone
			}
			if cmd.Flags().Changed("company") {
				patch.Company = &company
			}

			if err := api.UpdateMyProfile(cmd.Context(), a.client, patch); err != nil {
				return err
			}
			fmt.Println("Профиль обновлён")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&phone, "phone", "", "телефон")
	cmd.Flags().StringVar(&company, "company", "", "компания")
	return cmd
}

func newUsersPasswordCmd(appRef func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Сменить пароль",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()

			oldPassword := a.prompt("Текущий пароль: ")
			newPassword := a.prompt("Новый пароль: ")

			if err := api.UpdateMyPassword(cmd.Context(), a.client, oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Println("Пароль изменён")
			return nil
		},
	}
}
