package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rentreceipt/pkg/types"
)

// RemoteVerifier asks an external access service whether the token holder
// has a named right.
type RemoteVerifier struct {
	endpoint   string
	rightName  string
	httpClient *http.Client
}

type accessCheckRequest struct {
	Token     string `json:"token"`
	RightName string `json:"rightName"`
}

type accessCheckResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

func NewRemoteVerifier(serviceURL, rightName string, timeout time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		endpoint:   strings.TrimRight(serviceURL, "/") + "/access/check",
		rightName:  rightName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify maps a 200 to the returned identity and a 403 to types.ErrForbidden.
// Any other outcome, transport errors included, is types.ErrUnauthorized.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	payload, err := json.Marshal(accessCheckRequest{Token: token, RightName: v.rightName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode access check: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create access check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, unauthorized("access check failed: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, fmt.Errorf("right %s denied: %w", v.rightName, types.ErrForbidden)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, unauthorized("access check returned status %d: %s", resp.StatusCode, string(body))
	}

	var out accessCheckResponse
	err = json.NewDecoder(resp.Body).Decode(&out)
	if err != nil {
		return nil, unauthorized("failed to decode access check response: %v", err)
	}

	if out.UserID <= 0 {
		return nil, unauthorized("access check returned no user id")
	}

	return &types.Identity{
		UserID: out.UserID,
		Email:  out.Email,
		Status: out.Status,
	}, nil
}
