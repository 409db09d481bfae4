package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"gopkg.in/ini.v1"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

// CredentialRegistry resolves AWS credentials from the shared credentials
// file (~/.aws/credentials).
type CredentialRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetCredentials(ctx context.Context, profile, region string) (domain.Credentials, error)
}

type credRegistry struct {
	cfg *ini.File
}

// NewCredentialRegistry loads the shared credentials file at path; an empty
// path means the default ~/.aws/credentials location.
func NewCredentialRegistry(path string) (CredentialRegistry, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".aws", "credentials")
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &credRegistry{cfg: cfg}, nil
}

func (cr *credRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *credRegistry) GetCredentials(_ context.Context, profile, region string) (domain.Credentials, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return domain.Credentials{}, fmt.Errorf("profile %s not found", profile)
	}

	creds := domain.Credentials{
		AccessKeyID:     section.Key("aws_access_key_id").String(),
		SecretAccessKey: section.Key("aws_secret_access_key").String(),
		SessionToken:    section.Key("aws_session_token").String(),
		Region:          region,
	}
	if creds.Empty() {
		return domain.Credentials{}, fmt.Errorf("profile %s has no key material", profile)
	}
	return creds, nil
}

// ResolveDefaultCredentials walks the SDK default chain (environment,
// shared config, IMDS) and returns whatever it yields.
func ResolveDefaultCredentials(ctx context.Context, region string) (domain.Credentials, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	resolved, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("no AWS credentials available: %w", err)
	}

	return fromSDK(resolved, cfg.Region), nil
}

// StaticCredentials normalizes explicitly supplied key material through the
// SDK's static provider.
func StaticCredentials(ctx context.Context, accessKey, secretKey, sessionToken, region string) (domain.Credentials, error) {
	provider := credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)
	resolved, err := provider.Retrieve(ctx)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("invalid static credentials: %w", err)
	}
	return fromSDK(resolved, region), nil
}

func fromSDK(c awssdk.Credentials, region string) domain.Credentials {
	return domain.Credentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Region:          region,
	}
}
