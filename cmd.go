package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	intconfig "homeservices/internal/config"
	api "homeservices/internal/http"
	"homeservices/internal/services"
	"homeservices/internal/store/sqlstore"
	"homeservices/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homeservices",
		Short: "Home services booking and worker intake backend",
		Long: `homeservices serves the public booking and worker application endpoints
and the session-gated admin panel. Running it without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newHashPasswordCmd(),
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the bookings and workers tables on the SQL backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := intconfig.LoadEnv()
			if env.DataBackend != intconfig.BackendMySQL && env.DataBackend != intconfig.BackendPostgres {
				return fmt.Errorf("migrate needs DATA_BACKEND mysql or postgres, got %q", env.DataBackend)
			}

			db, err := intconfig.ConnectSQL(cmd.Context(), env.DataBackend, env.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			st, err := sqlstore.New(db, env.DataBackend)
			if err != nil {
				return err
			}
			created, err := st.EnsureSchema(cmd.Context())
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			}
			for _, t := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "created table %s\n", t)
			}
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASS_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := services.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func runServe(ctx context.Context) error {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	log, err := utils.NewLogger(env.LogLevel, env.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	a, err := buildApp(ctx, env, log)
	if err != nil {
		return err
	}
	defer a.close()

	r, err := api.NewRouter(env, a.handlers, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", env.AppAddr),
			zap.String("data_backend", env.DataBackend),
			zap.String("storage_backend", env.StorageBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
