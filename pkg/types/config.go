package types

import "time"

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"30"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigin      string `envconfig:"CORS_ORIGIN" default:"*"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	DatabaseSchema string `envconfig:"DATABASE_SCHEMA" default:"rentreceipt"`

	// Object storage
	BucketName     string        `envconfig:"BUCKET_NAME"`
	DocumentFolder string        `envconfig:"DOCUMENT_FOLDER" default:"document"`
	URLPolicy      URLPolicy     `envconfig:"URL_POLICY" default:"signed"`
	SignedURLTTL   time.Duration `envconfig:"SIGNED_URL_TTL" default:"15m"`
	PublicBaseURL  string        `envconfig:"PUBLIC_BASE_URL"`
	S3Region       string        `envconfig:"S3_REGION"`
	S3Endpoint     string        `envconfig:"S3_ENDPOINT"`
	S3UsePathStyle bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`

	// Credential verification
	AuthMode       AuthMode      `envconfig:"AUTH_MODE" default:"remote"`
	AuthServiceURL string        `envconfig:"AUTH_SERVICE_URL"`
	AuthRightName  string        `envconfig:"AUTH_RIGHT_NAME" default:"VIEW_DOCUMENTS"`
	AuthTimeout    time.Duration `envconfig:"AUTH_TIMEOUT" default:"5s"`
	JWKSURL        string        `envconfig:"JWKS_URL"`
	JWTSecret      string        `envconfig:"JWT_SECRET"`

	// Receipt rendering
	LogoPath     string `envconfig:"LOGO_PATH"`
	CurrencyName string `envconfig:"CURRENCY_NAME" default:"euros"`
}

// URLPolicy decides how a stored receipt is exposed to its owner. One policy
// is used for the whole deployment.
type URLPolicy string

const (
	URLPolicyPublic URLPolicy = "public"
	URLPolicySigned URLPolicy = "signed"
)

type AuthMode string

const (
	AuthModeRemote  AuthMode = "remote"
	AuthModeJWKS    AuthMode = "jwks"
	AuthModeHMAC    AuthMode = "hmac"
	AuthModeCognito AuthMode = "cognito"
)
