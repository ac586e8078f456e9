package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"rentreceipt/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// loadConfig reads an optional .env file and then the environment. Values
// already present in the environment win over the file.
func loadConfig(prefix string) (*types.Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	c := new(types.Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	return c, nil
}

func requireDatabase(c *types.Config) error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("set DATABASE_URL")
	}
	return nil
}

func requireStorage(c *types.Config) error {
	if c.BucketName == "" {
		return fmt.Errorf("set BUCKET_NAME")
	}

	switch c.URLPolicy {
	case types.URLPolicyPublic:
		if c.PublicBaseURL == "" {
			return fmt.Errorf("set PUBLIC_BASE_URL when URL_POLICY is public")
		}
	case types.URLPolicySigned:
		if c.SignedURLTTL <= 0 {
			return fmt.Errorf("SIGNED_URL_TTL must be positive")
		}
	default:
		return fmt.Errorf("URL_POLICY must be %q or %q, got %q", types.URLPolicyPublic, types.URLPolicySigned, c.URLPolicy)
	}

	return nil
}

func requireAuth(c *types.Config) error {
	switch c.AuthMode {
	case types.AuthModeRemote:
		if c.AuthServiceURL == "" {
			return fmt.Errorf("set AUTH_SERVICE_URL when AUTH_MODE is remote")
		}
	case types.AuthModeJWKS:
		if c.JWKSURL == "" {
			return fmt.Errorf("set JWKS_URL when AUTH_MODE is jwks")
		}
	case types.AuthModeHMAC:
		if c.JWTSecret == "" {
			return fmt.Errorf("set JWT_SECRET when AUTH_MODE is hmac")
		}
	case types.AuthModeCognito:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	return nil
}

// validateServeConfig checks everything the HTTP service needs at startup.
func validateServeConfig(c *types.Config) error {
	for _, check := range []func(*types.Config) error{requireDatabase, requireStorage, requireAuth} {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.SetLevel(lvl)

	return logger, nil
}

func loadAWSConfig(ctx context.Context, c *types.Config) (aws.Config, error) {
	opts := make([]func(*config.LoadOptions) error, 0, 1)
	if c.S3Region != "" {
		opts = append(opts, config.WithRegion(c.S3Region))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return awsConfig, nil
}
