package service

import "context"

// AuthUser is the identity provider's view of an account.
type AuthUser struct {
	UID           string
	Email         string
	EmailVerified bool
}

// SignInResult carries the tokens issued by a password sign-in.
type SignInResult struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
}

// IdentityProvider is the external authentication service.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	GetUser(ctx context.Context, uid string) (*AuthUser, error)
	SendVerificationEmail(ctx context.Context, idToken string) error
	VerifyToken(ctx context.Context, idToken string) (*AuthUser, error)
	TestConnection(ctx context.Context) error
}
