package auth

import (
	"context"

	"rentreceipt/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// KeySetSource is satisfied by *jwk.Cache.
type KeySetSource interface {
	Lookup(ctx context.Context, u string) (jwk.Set, error)
}

// JWKSVerifier validates tokens signed by an identity provider that
// publishes its keys as a JWK set.
type JWKSVerifier struct {
	keys    KeySetSource
	jwksURL string
}

func NewJWKSVerifier(keys KeySetSource, jwksURL string) *JWKSVerifier {
	return &JWKSVerifier{keys: keys, jwksURL: jwksURL}
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	set, err := v.keys.Lookup(ctx, v.jwksURL)
	if err != nil {
		return nil, unauthorized("failed to fetch jwks: %v", err)
	}

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, unauthorized("failed to parse jwt: %v", err)
	}

	return identityFromToken(parsed)
}

// identityFromToken reads the numeric user id from the user_id claim, falling
// back to a numeric subject.
func identityFromToken(token jwt.Token) (*types.Identity, error) {
	identity := new(types.Identity)

	var numeric float64
	var text string
	switch {
	case token.Get("user_id", &numeric) == nil:
		if numeric <= 0 || numeric != float64(int64(numeric)) {
			return nil, unauthorized("user_id claim %v is not a positive integer", numeric)
		}
		identity.UserID = int64(numeric)
	case token.Get("user_id", &text) == nil:
		id, err := parseUserID(text)
		if err != nil {
			return nil, err
		}
		identity.UserID = id
	default:
		subject, ok := token.Subject()
		if !ok {
			return nil, unauthorized("token has neither a user_id nor a subject claim")
		}

		id, err := parseUserID(subject)
		if err != nil {
			return nil, err
		}
		identity.UserID = id
	}

	var email string
	if err := token.Get("email", &email); err == nil {
		identity.Email = email
	}

	return identity, nil
}
