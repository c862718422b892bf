package main

import (
	"errors"
	"fmt"

	"etude/internal/config"
	"etude/internal/models"
	"etude/internal/repositories"
	"etude/internal/services/auth"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// InitDB migrates on connect.
			if err := repositories.InitDB(); err != nil {
				return err
			}
			defer repositories.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the back-office account from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email := config.GetEnv("ADMIN_EMAIL", "")
			password := config.GetEnv("ADMIN_PASSWORD", "")
			name := config.GetEnv("ADMIN_NAME", "Administrateur")
			if email == "" || password == "" {
				return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
			}

			if err := repositories.InitDB(); err != nil {
				return err
			}
			defer repositories.Close()

			users := repositories.NewUserRepository(repositories.DB, nil)
			if _, err := users.GetByEmail(email); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists\n", email)
				return nil
			} else if !errors.Is(err, repositories.ErrUserNotFound) {
				return err
			}

			user, err := auth.NewService(users).CreateUser(email, name, password, role)
			if err != nil {
				return fmt.Errorf("create account: %w", err)
			}
			log.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("account created")
			fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s\n", user.Role, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "account role (admin or editor)")
	return cmd
}
