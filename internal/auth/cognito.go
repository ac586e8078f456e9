package auth

import (
	"context"

	"rentreceipt/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

const (
	cognitoUserIDAttribute = "custom:user_id"
	cognitoEmailAttribute  = "email"
)

type CognitoAPI interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
}

// CognitoVerifier resolves a Cognito access token to the user it was issued
// for. The numeric user id is read from the custom:user_id attribute.
type CognitoVerifier struct {
	client CognitoAPI
}

func NewCognitoVerifier(client CognitoAPI) *CognitoVerifier {
	return &CognitoVerifier{client: client}
}

func (v *CognitoVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	out, err := v.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(token),
	})
	if err != nil {
		return nil, unauthorized("cognito rejected token: %v", err)
	}

	identity := new(types.Identity)
	var rawUserID string
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case cognitoUserIDAttribute:
			rawUserID = aws.ToString(attr.Value)
		case cognitoEmailAttribute:
			identity.Email = aws.ToString(attr.Value)
		}
	}

	identity.UserID, err = parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}

	return identity, nil
}
