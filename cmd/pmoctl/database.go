package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/services"

	"github.com/spf13/cobra"
)

func (a *app) pool() *config.DBPool {
	var sqlLog io.Writer = io.Discard
	if a.opts.verbose {
		sqlLog = os.Stderr
	}
	return config.NewDBPool(a.cfg.Database(), sqlLog, true, a.opts.verbose)
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.opts.timeout)
			defer cancel()

			pool := a.pool()
			defer pool.Close()
			if err := services.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

type createAdminOptions struct {
	email    string
	password string
	name     string
	migrate  bool
}

func newCreateAdminCmd(a *app) *cobra.Command {
	opts := &createAdminOptions{}
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the initial admin user",
		Long:  "Create an admin account. Nothing is changed when the email is already registered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.password == "" {
				opts.password = os.Getenv("PMO_ADMIN_PASSWORD")
			}
			if opts.password == "" {
				return errors.New("--password or PMO_ADMIN_PASSWORD is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.opts.timeout)
			defer cancel()

			pool := a.pool()
			defer pool.Close()
			if opts.migrate {
				if err := services.Migrate(ctx, pool); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
			}

			user, err := services.NewUserService(pool).Create(ctx, opts.email, opts.password, opts.name, models.RoleAdmin)
			if errors.Is(err, services.ErrEmailTaken) {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user %s already exists\n", opts.email)
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Admin user created")
			fmt.Fprintf(out, "  Email: %s\n  Name:  %s\n  Role:  %s\n", user.Email, user.Name, user.Role)
			fmt.Fprintln(out, "Change the password after the first login.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.email, "email", "admin@example.com", "admin email")
	f.StringVar(&opts.password, "password", "", "admin password (min 8 characters)")
	f.StringVar(&opts.name, "name", "Admin User", "display name")
	f.BoolVar(&opts.migrate, "migrate", true, "run migrations first")
	return cmd
}
