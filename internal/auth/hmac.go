package auth

import (
	"context"
	"time"

	"rentreceipt/pkg/types"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims carried by tokens signed with the shared secret.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier validates HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, unauthorized("invalid token: %v", err)
	}

	if !parsed.Valid {
		return nil, unauthorized("invalid token signature")
	}

	userID := claims.UserID
	if userID == 0 {
		userID, err = parseUserID(claims.Subject)
		if err != nil {
			return nil, err
		}
	}

	if userID < 0 {
		return nil, unauthorized("user id %d is not positive", userID)
	}

	return &types.Identity{UserID: userID, Email: claims.Email}, nil
}

// IssueToken signs an HS256 token for identity valid for ttl.
func IssueToken(secret string, identity *types.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
