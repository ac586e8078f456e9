package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// RequestIDSize is the length of ids returned by RequestID. Incoming
// X-Request-ID values longer than MaxRequestIDSize are replaced.
const (
	RequestIDSize    = 21
	MaxRequestIDSize = 64
)

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RequestID returns a fresh id for tagging a request and its log lines.
func RequestID() string {
	return gonanoid.MustGenerate(requestIDAlphabet, RequestIDSize)
}
