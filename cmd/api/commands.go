package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/yamdb/yamdb-server/internal/api"
	"github.com/yamdb/yamdb-server/internal/di"
	"github.com/yamdb/yamdb-server/internal/di/providers"
	"github.com/yamdb/yamdb-server/internal/logger"
	"github.com/yamdb/yamdb-server/internal/service"
)

var (
	configFile string

	// create-admin flags
	adminUsername  string
	adminEmail     string
	adminSuperuser bool
)

var rootCmd = &cobra.Command{
	Use:           "yamdb",
	Short:         "yamdb review server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator and print their confirmation code",
	Long: `Create an administrator account directly in the database.

The printed confirmation code is exchanged for a token at
POST /api/v1/auth/token like any emailed code.

Examples:
  yamdb create-admin --username root --email root@example.com
  yamdb create-admin --username root --email root@example.com --superuser`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context(), cmd.OutOrStdout())
	},
}

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := api.NewServer(nil, &api.Services{}, api.Options{Version: providers.Version},
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		out, err := srv.API().OpenAPI().YAML()
		if err != nil {
			return fmt.Errorf("render openapi: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file (default $YAMDB_CONFIG_FILE)")

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Administrator username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Administrator email")
	createAdminCmd.Flags().BoolVar(&adminSuperuser, "superuser", false, "Mark the account as superuser")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(serveCmd, createAdminCmd, openapiCmd)
}

func runServe() error {
	injector := di.NewContainer(configFile)

	server, err := di.Bootstrap(injector)
	if err != nil {
		_ = injector.Shutdown()
		return fmt.Errorf("failed to bootstrap server: %w", err)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
		log.Info("Shutting down server gracefully...")
	case serveErr = <-server.Err():
		log.Error("Server stopped unexpectedly", "error", serveErr)
	}

	// The container shuts down the HTTP server, the rate limiter and the
	// database in reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Server stopped")
	return serveErr
}

func runCreateAdmin(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	injector := di.NewContainer(configFile)
	defer func() { _ = injector.Shutdown() }()

	authSvc, err := do.Invoke[*service.AuthService](injector)
	if err != nil {
		return err
	}

	u, code, err := authSvc.CreateAdmin(ctx, service.CreateAdminRequest{
		Username:  adminUsername,
		Email:     adminEmail,
		Superuser: adminSuperuser,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(out, "created %s <%s>\nconfirmation code: %s\n", u.Username, u.Email, code)
	return nil
}
