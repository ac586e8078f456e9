package main

import (
	"context"
	"fmt"
	"os"

	"rentreceipt/internal/auth"
	"rentreceipt/internal/pdf"
	"rentreceipt/internal/storage"
	"rentreceipt/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

func newVerifier(ctx context.Context, c *types.Config, awsConfig aws.Config) (auth.Verifier, error) {
	switch c.AuthMode {
	case types.AuthModeRemote:
		return auth.NewRemoteVerifier(c.AuthServiceURL, c.AuthRightName, c.AuthTimeout), nil
	case types.AuthModeJWKS:
		jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize jwk cache: %w", err)
		}

		err = jwkCache.Register(ctx, c.JWKSURL)
		if err != nil {
			return nil, fmt.Errorf("failed to register jwks url with cache: %w", err)
		}

		return auth.NewJWKSVerifier(jwkCache, c.JWKSURL), nil
	case types.AuthModeHMAC:
		return auth.NewHMACVerifier(c.JWTSecret), nil
	case types.AuthModeCognito:
		return auth.NewCognitoVerifier(cognitoidentityprovider.NewFromConfig(awsConfig)), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}
}

func newRenderer(c *types.Config) (*pdf.Renderer, error) {
	var logo []byte
	if c.LogoPath != "" {
		b, err := os.ReadFile(c.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read logo: %w", err)
		}
		logo = b
	}

	return pdf.NewRenderer(pdf.Options{Logo: logo, Currency: c.CurrencyName})
}

func newDocuments(c *types.Config, awsConfig aws.Config) (*storage.Documents, error) {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if c.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(c.S3Endpoint)
		}
		o.UsePathStyle = c.S3UsePathStyle
	})

	objects := storage.NewObjectStore(client, s3.NewPresignClient(client), c.BucketName)

	return storage.NewDocuments(objects, storage.Options{
		Folder:        c.DocumentFolder,
		Policy:        c.URLPolicy,
		PublicBaseURL: c.PublicBaseURL,
		SignedURLTTL:  c.SignedURLTTL,
	})
}
