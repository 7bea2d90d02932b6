package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NEARFoundation/events-platform/internal/auth"
	clientcmd "github.com/NEARFoundation/events-platform/internal/cmd/client"
	serverrun "github.com/NEARFoundation/events-platform/internal/cmd/server"
	cfgpkg "github.com/NEARFoundation/events-platform/internal/config"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

func main() {
	level := os.Getenv("EVP_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "evp",
		Short: "Events platform CLI",
		Long:  "evp manages the events-platform server and talks to its HTTP API.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the events-platform server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")
			pricePerByte, _ := cmd.Flags().GetUint64("price-per-byte")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			if httpAddr != "" {
				cfg.HTTPAddr = httpAddr
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			if cmd.Flags().Changed("price-per-byte") {
				cfg.PricePerByte = pricePerByte
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      cfg.HTTPAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "path to JSON config file")
	serverStartCmd.Flags().String("data-dir", "", "data directory (default: per-user data dir)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address")
	serverStartCmd.Flags().String("fsync", "always", "fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "fsync interval for interval mode")
	serverStartCmd.Flags().String("log-level", "", "log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", "", "log format: text|json")
	serverStartCmd.Flags().Uint64("price-per-byte", 0, "storage price per marginal byte")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// token issue (development helper; shares the server's JWT secret)
	tokenCmd := &cobra.Command{Use: "token", Short: "Token commands"}
	tokenIssueCmd := &cobra.Command{
		Use:   "issue <account>",
		Short: "Issue a bearer token for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			tok, err := auth.NewHMAC(cfg.JWTSecret).Issue(args[0], ttl)
			if err != nil {
				return err
			}
			cmd.Println(tok)
			return nil
		},
	}
	tokenIssueCmd.Flags().String("config", "", "path to JSON config file")
	tokenIssueCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)

	// client commands
	clientcmd.NewRootFlags(rootCmd)
	rootCmd.AddCommand(clientcmd.NewEventCmd())
	rootCmd.AddCommand(clientcmd.NewEventListCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", logpkg.Err(err))
		os.Exit(1)
	}
}
