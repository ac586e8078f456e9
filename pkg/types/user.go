package types

// Identity is the caller as established by a credential verifier.
type Identity struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Status string `json:"status"`
}
