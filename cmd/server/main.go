package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/naulin/internal/config"
	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
	"github.com/Nixie-Tech-LLC/naulin/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Shree Naulin Secondary School website",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewHashPasswordCommand())

	return rootCmd
}

// loadConfig reads the environment and configures the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Development() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return cfg, nil
}

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := connectDatabase(cmd.Context(), cfg); err != nil {
				return err
			}
			defer db.DB.Close()
			return db.RunMigrations(cfg.MigrationsPath)
		},
	}
}

func NewSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the page content with a seed document",
		Long: `Replace the principal message, news and facilities with the contents of a YAML
seed document. Without --file the built-in default content is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := seed.Default()
			if file != "" {
				data, err = seed.LoadFile(file)
			}
			if err != nil {
				return fmt.Errorf("load seed: %w", err)
			}

			if err := connectDatabase(ctx, cfg); err != nil {
				return err
			}
			defer db.DB.Close()
			if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
				return err
			}

			store := db.NewStore(db.DB)
			if err := store.ReplaceContent(ctx, data.PrincipalMessage, data.News, data.Facilities); err != nil {
				return fmt.Errorf("seed content: %w", err)
			}
			log.Info().
				Int("news", len(data.News)).
				Int("facilities", len(data.Facilities)).
				Msg("[seed] content replaced")

			// running servers drop their cached payloads
			cache := initCache(ctx, cfg)
			defer closeCache(cache)
			if err := provider.NewStoreProvider(store, cache, cfg.CacheTTL).Invalidate(ctx, provider.Kinds...); err != nil {
				log.Warn().Err(err).Msg("[seed] failed to invalidate content cache")
			}
			notifier := initNotifier(cfg, "seed")
			defer notifier.Close()
			for _, kind := range provider.Kinds {
				if err := notifier.ContentUpdated(kind); err != nil {
					log.Warn().Err(err).Str("kind", string(kind)).Msg("[seed] failed to publish content update")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML document (default: built-in content)")
	return cmd
}

func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  `Print a bcrypt hash for ADMIN_PASSWORD_HASH. Reads the password from stdin when no argument is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := middleware.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for this command")
	}
	if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("db init: %w", err)
	}
	return nil
}
