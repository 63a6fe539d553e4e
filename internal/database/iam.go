package database

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
)

// buildIAMAuthToken generates a short-lived credential for the managed
// database. Tokens expire after 15 minutes; reconnects generate a fresh one.
func buildIAMAuthToken(ctx context.Context, cfg *Config) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	endpoint := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	token, err := auth.BuildAuthToken(ctx, endpoint, cfg.AWSRegion, cfg.User, awsCfg.Credentials)
	if err != nil {
		return "", fmt.Errorf("build auth token: %w", err)
	}
	return token, nil
}
