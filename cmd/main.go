package main

import (
	"fmt"
	"os"

	"medassist/cmd/bootstrap"
	"medassist/internal/delivery/dto"
	"medassist/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medassist",
		Short:         "Clinical assistant API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New(cfg)
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}

			// Run the application
			if err := app.Run(); err != nil {
				logrus.Errorf("Server stopped: %v", err)
				return err
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(m *database.Migrator) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withMigrator(func(m *database.Migrator) error {
				return m.Down()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version=%d dirty=%t\n", version, dirty)
				return nil
			}),
		},
	)

	return migrateCmd
}

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var req dto.CreateAdminRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				logrus.Errorf("Failed to load config: %v", err)
				return err
			}

			user, err := bootstrap.CreateAdmin(cmd.Context(), cfg, &req)
			if err != nil {
				logrus.Errorf("Failed to create admin: %v", err)
				return err
			}

			logrus.WithField("user_id", user.ID).Info("Admin account created")
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.Email, "email", "", "login email")
	createCmd.Flags().StringVar(&req.Password, "password", "", "login password, at least 12 characters")
	createCmd.Flags().StringVar(&req.FullName, "full-name", "", "display name")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	_ = createCmd.MarkFlagRequired("full-name")

	adminCmd.AddCommand(createCmd)
	return adminCmd
}

func withMigrator(run func(m *database.Migrator) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			logrus.Errorf("Failed to load config: %v", err)
			return err
		}

		m, err := database.NewMigrator(cfg.DB, logrus.StandardLogger())
		if err != nil {
			logrus.Errorf("Failed to open migrator: %v", err)
			return err
		}
		defer m.Close()

		if err := run(m); err != nil {
			logrus.Errorf("Migration failed: %v", err)
			return err
		}
		return nil
	}
}
