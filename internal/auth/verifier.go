// Package auth turns bearer tokens into caller identities.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rentreceipt/pkg/types"
)

// Verifier establishes who presented token. Failures wrap
// types.ErrUnauthorized or types.ErrForbidden.
type Verifier interface {
	Verify(ctx context.Context, token string) (*types.Identity, error)
}

const bearerPrefix = "Bearer "

// BearerToken returns the token carried by an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", fmt.Errorf("missing bearer token: %w", types.ErrUnauthorized)
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", fmt.Errorf("empty bearer token: %w", types.ErrUnauthorized)
	}

	return token, nil
}

func unauthorized(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, types.ErrUnauthorized)...)
}

// parseUserID accepts a positive decimal user id.
func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, unauthorized("user id %q is not a positive integer", s)
	}
	return id, nil
}
