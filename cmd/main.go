package main

import (
	"MediCore/cache"
	"MediCore/config"
	"MediCore/database"
	"MediCore/routes"
	"MediCore/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const redisPoolReportInterval = 5 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "medicore",
		Short:        "MediCore hospital administration server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			log.Info().Msg("Database schema is up to date")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			email, _ := cmd.Flags().GetString("email")

			cfg, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if email == "" {
				email = cfg.AdminEmail
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			created, err := database.SeedAdmin(cmd.Context(), db, email, password)
			if err != nil {
				return err
			}
			if !created {
				log.Info().Str("username", database.AdminUsername).Msg("Administrator account already exists")
			}
			return nil
		},
	}
	cmd.Flags().String("password", "", "Password for the admin account (defaults to ADMIN_PASSWORD)")
	cmd.Flags().String("email", "", "Email for the admin account (defaults to ADMIN_EMAIL)")
	return cmd
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDev() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// bootstrap loads the configuration, sets up logging and connects to the database.
func bootstrap(ctx context.Context) (*config.AppConfig, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg)

	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.InitDB(ctx, cfg.DBURL, cfg.IsDev())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, db, nil
}

func runServer() error {
	ctx := context.Background()
	cfg, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.RunMigrations(db); err != nil {
		return err
	}
	if cfg.AdminPassword != "" {
		if _, err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD is not set, skipping admin seeding")
	}

	if err := database.InitializeRedis(cfg.RedisURL); err != nil {
		return fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	defer database.RedisClient.Close()

	appCache, err := cache.NewCache(database.RedisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	mailer := &utils.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}

	handler, err := routes.SetupRoutes(appCache, cfg, db, mailer)
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	stopMonitor := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	serveErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(redisPoolReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				database.MonitorRedisPool()
			case <-stopMonitor:
				return
			}
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("Server stopped unexpectedly")
	}
	close(stopMonitor)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	wg.Wait()
	log.Info().Msg("Server exited gracefully")
	return runErr
}
