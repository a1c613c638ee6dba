package firebase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"moverconnect/internal/domain/service"
)

const devTokenPrefix = "dev-token:"

// DevIdentityProvider is an in-process identity provider for DEV_MODE and
// tests. Tokens are "dev-token:<uid>" and never expire.
type DevIdentityProvider struct {
	mu       sync.RWMutex
	accounts map[string]*devAccount // by uid
	byEmail  map[string]string

	// AutoVerify marks new accounts as email-verified.
	AutoVerify bool
	// VerificationsSent counts verification mails per uid.
	VerificationsSent map[string]int
	// FailDelete makes DeleteUser fail, to exercise rollback errors.
	FailDelete bool
}

type devAccount struct {
	uid      string
	email    string
	password string
	verified bool
}

func NewDevIdentityProvider() *DevIdentityProvider {
	return &DevIdentityProvider{
		accounts:          make(map[string]*devAccount),
		byEmail:           make(map[string]string),
		VerificationsSent: make(map[string]int),
	}
}

func DevToken(uid string) string {
	return devTokenPrefix + uid
}

func (d *DevIdentityProvider) SignIn(_ context.Context, email, password string) (*service.SignInResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	uid, ok := d.byEmail[email]
	if !ok || d.accounts[uid].password != password {
		return nil, fmt.Errorf("INVALID_LOGIN_CREDENTIALS")
	}

	return &service.SignInResult{
		UID:          uid,
		Email:        email,
		IDToken:      DevToken(uid),
		RefreshToken: "dev-refresh:" + uid,
	}, nil
}

func (d *DevIdentityProvider) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return "", fmt.Errorf("EMAIL_EXISTS")
	}
	if len(password) < 6 {
		return "", fmt.Errorf("WEAK_PASSWORD")
	}

	uid := uuid.New().String()
	d.accounts[uid] = &devAccount{uid: uid, email: email, password: password, verified: d.AutoVerify}
	d.byEmail[email] = uid
	return uid, nil
}

func (d *DevIdentityProvider) DeleteUser(_ context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.FailDelete {
		return fmt.Errorf("delete failed")
	}
	acct, ok := d.accounts[uid]
	if !ok {
		return fmt.Errorf("USER_NOT_FOUND")
	}
	delete(d.byEmail, acct.email)
	delete(d.accounts, uid)
	return nil
}

func (d *DevIdentityProvider) GetUser(_ context.Context, uid string) (*service.AuthUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	acct, ok := d.accounts[uid]
	if !ok {
		return nil, fmt.Errorf("USER_NOT_FOUND")
	}
	return &service.AuthUser{UID: acct.uid, Email: acct.email, EmailVerified: acct.verified}, nil
}

func (d *DevIdentityProvider) SendVerificationEmail(_ context.Context, idToken string) error {
	uid := strings.TrimPrefix(idToken, devTokenPrefix)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[uid]; !ok {
		return fmt.Errorf("INVALID_ID_TOKEN")
	}
	d.VerificationsSent[uid]++
	return nil
}

func (d *DevIdentityProvider) VerifyToken(ctx context.Context, idToken string) (*service.AuthUser, error) {
	if !strings.HasPrefix(idToken, devTokenPrefix) {
		return nil, fmt.Errorf("invalid token")
	}
	return d.GetUser(ctx, strings.TrimPrefix(idToken, devTokenPrefix))
}

func (d *DevIdentityProvider) TestConnection(context.Context) error {
	return nil
}

// VerifyEmail marks the account's address as verified, as clicking the
// emailed link would.
func (d *DevIdentityProvider) VerifyEmail(email string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if uid, ok := d.byEmail[email]; ok {
		d.accounts[uid].verified = true
	}
}

// UIDFor returns the uid registered for email.
func (d *DevIdentityProvider) UIDFor(email string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	uid, ok := d.byEmail[email]
	return uid, ok
}

func (d *DevIdentityProvider) Exists(uid string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.accounts[uid]
	return ok
}
