package domain

// TokenPair is what a successful register, login or refresh hands back to
// the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is the outcome of register and login.
type AuthResult struct {
	User   PublicUser
	Tokens TokenPair
}
