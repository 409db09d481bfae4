package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/runtime/terminal/view"
	"github.com/forge-cloud/archplan/pkg/services/config"
	"github.com/forge-cloud/archplan/pkg/services/gateway"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

// Deps are the streams every command shares.
type Deps struct {
	In  io.Reader
	Out io.Writer
}

// commonFlags are registered on every command that talks to the generator.
type commonFlags struct {
	configPath string
	backendURL string
	region     string
	profile    string
	credsFile  string
}

func (f *commonFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.backendURL != "" {
		cfg.BackendURL = f.backendURL
	}
	if f.region != "" {
		cfg.Region = f.region
	}
	return cfg, nil
}

func newGateway(cfg *config.Config) *gateway.Client {
	return gateway.NewClient(gateway.Options{
		BaseURL:        cfg.BackendURL,
		DeploymentTool: cfg.DeploymentTool,
	})
}

func pollerConfig(cfg *config.Config) workflow.PollerConfig {
	return workflow.PollerConfig{
		Interval:               cfg.PollInterval,
		FailureInterval:        cfg.PollFailureInterval,
		MaxConsecutiveFailures: cfg.PollMaxFailures,
	}
}

// resolveCredentials picks the credential source: an explicit shared-file
// profile, then the SDK default chain, then an interactive prompt.
func resolveCredentials(
	ctx context.Context,
	flags *commonFlags,
	cfg *config.Config,
	prompter *view.Prompter,
) (domain.Credentials, error) {
	logger := zerolog.Ctx(ctx)

	if flags.profile != "" {
		registry, err := config.NewCredentialRegistry(flags.credsFile)
		if err != nil {
			return domain.Credentials{}, err
		}
		return registry.GetCredentials(ctx, flags.profile, cfg.Region)
	}

	creds, err := config.ResolveDefaultCredentials(ctx, cfg.Region)
	if err == nil && !creds.Empty() {
		return creds, nil
	}
	logger.Debug().Err(err).Msg("default credential chain empty, prompting")

	accessKey, err := prompter.Ask("AWS access key id")
	if err != nil {
		return domain.Credentials{}, err
	}
	secretKey, err := prompter.Ask("AWS secret access key")
	if err != nil {
		return domain.Credentials{}, err
	}
	sessionToken, err := prompter.Ask("AWS session token (optional)")
	if err != nil {
		return domain.Credentials{}, err
	}

	return config.StaticCredentials(ctx, accessKey, secretKey, sessionToken, cfg.Region)
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to the archplan config file")
	cmd.Flags().StringVar(&f.backendURL, "backend", "", "Generator base URL (overrides config)")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region (overrides config)")
	cmd.Flags().StringVar(&f.profile, "aws-profile", "", "Shared credentials file profile")
	cmd.Flags().StringVar(&f.credsFile, "aws-credentials-file", "", "Shared credentials file path")
}
