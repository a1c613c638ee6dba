package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"moverconnect/internal/domain/service"
)

// FirebaseAuthClient combines the Admin SDK (user management, token
// verification) with the Identity Toolkit REST API (password sign-in,
// verification mail), which the Admin SDK does not expose.
type FirebaseAuthClient struct {
	client  *auth.Client
	toolkit *identitytoolkit.Service
}

// NewFirebaseAuthClient builds the client. emulatorHost, when set, points
// the REST calls at the Auth emulator; the Admin SDK picks the emulator up
// from FIREBASE_AUTH_EMULATOR_HOST on its own.
func NewFirebaseAuthClient(ctx context.Context, client *auth.Client, apiKey, emulatorHost string) (*FirebaseAuthClient, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if emulatorHost != "" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("http://%s/www.googleapis.com/identitytoolkit/v3/relyingparty/", emulatorHost)))
	}

	toolkit, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}

	return &FirebaseAuthClient{
		client:  client,
		toolkit: toolkit,
	}, nil
}

func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	resp, err := f.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &service.SignInResult{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

func (f *FirebaseAuthClient) GetUser(ctx context.Context, uid string) (*service.AuthUser, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &service.AuthUser{
		UID:           user.UID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	}, nil
}

func (f *FirebaseAuthClient) SendVerificationEmail(ctx context.Context, idToken string) error {
	_, err := f.toolkit.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "VERIFY_EMAIL",
		IdToken:     idToken,
	}).Context(ctx).Do()
	return err
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, idToken string) (*service.AuthUser, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user := &service.AuthUser{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}
	return user, nil
}

// TestConnection makes a cheap authenticated Admin SDK call.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "health-check-nonexistent-uid")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}
