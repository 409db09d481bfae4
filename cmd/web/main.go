package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/server"
	"github.com/forge-cloud/archplan/pkg/services/config"
	"github.com/forge-cloud/archplan/pkg/services/gateway"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the archplan dashboard server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the archplan config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gw := gateway.NewClient(gateway.Options{
		BaseURL:        cfg.BackendURL,
		DeploymentTool: cfg.DeploymentTool,
	})

	ctrl := workflow.NewController(gw, workflow.PollerConfig{
		Interval:               cfg.PollInterval,
		FailureInterval:        cfg.PollFailureInterval,
		MaxConsecutiveFailures: cfg.PollMaxFailures,
	})

	logger.Info().Str("backend", cfg.BackendURL).Msg("generator backend configured")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "8080"
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Workflow: ctrl,
			Logger:   logger,
		},
	})

	return api.Start()
}
