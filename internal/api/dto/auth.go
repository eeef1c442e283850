package dto

// SignupRequest is the request body for signup.
type SignupRequest struct {
	Username string `json:"username,omitempty" doc:"Desired username"`
	Email    string `json:"email,omitempty" doc:"Address that receives the confirmation code"`
}

// SignupResponse echoes the account the code was sent for.
type SignupResponse struct {
	Username string `json:"username" doc:"Username"`
	Email    string `json:"email" doc:"Email address"`
}

// TokenRequest is the request body for exchanging a confirmation code.
type TokenRequest struct {
	Username         string `json:"username,omitempty" doc:"Username"`
	ConfirmationCode string `json:"confirmation_code,omitempty" doc:"Code from the confirmation email"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token" doc:"PASETO v4.public bearer token"`
}

// PublicKeyResponse describes the token verification key.
type PublicKeyResponse struct {
	Version string `json:"version" doc:"PASETO version"`
	Purpose string `json:"purpose" doc:"PASETO purpose"`
	Key     string `json:"key" doc:"Hex-encoded Ed25519 public key"`
}
