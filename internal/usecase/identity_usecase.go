package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/policy"
	"moverconnect/internal/domain/repository"
	"moverconnect/internal/domain/service"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type IdentityUseCase struct {
	identity   service.IdentityProvider
	clientRepo repository.ClientRepository
	moverRepo  repository.MoverRepository
	policy     *policy.AccessPolicy
}

func NewIdentityUseCase(
	identity service.IdentityProvider,
	clientRepo repository.ClientRepository,
	moverRepo repository.MoverRepository,
	accessPolicy *policy.AccessPolicy,
) *IdentityUseCase {
	return &IdentityUseCase{
		identity:   identity,
		clientRepo: clientRepo,
		moverRepo:  moverRepo,
		policy:     accessPolicy,
	}
}

// Session is the outcome of a successful login.
type Session struct {
	UID          string      `json:"uid"`
	Email        string      `json:"email"`
	Role         entity.Role `json:"role"`
	Redirect     string      `json:"redirect"`
	IDToken      string      `json:"id_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
}

type RegisterClientInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type RegisterMoverInput struct {
	Email         string
	Password      string
	CompanyName   string
	ServiceArea   string
	ContactNumber string
}

type RegistrationResult struct {
	UID              string      `json:"uid"`
	Email            string      `json:"email"`
	Role             entity.Role `json:"role"`
	VerificationSent bool        `json:"verification_sent"`
	Profile          interface{} `json:"profile"`
}

func (uc *IdentityUseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		logger.Debug("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	role, err := uc.ResolveRole(ctx, res.UID, res.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		UID:          res.UID,
		Email:        res.Email,
		Role:         role,
		Redirect:     role.Redirect(),
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// AdminLogin rejects addresses outside the allow-list before contacting
// the identity provider, then signs in.
func (uc *IdentityUseCase) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	if !uc.policy.IsAdmin(email) {
		return nil, errors.AdminOnly()
	}

	res, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}
	if !uc.policy.IsAdmin(res.Email) {
		return nil, errors.AdminOnly()
	}

	return &Session{
		UID:          res.UID,
		Email:        res.Email,
		Role:         entity.RoleAdmin,
		Redirect:     entity.RoleAdmin.Redirect(),
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// ResolveRole maps an authenticated account to exactly one role. Admins
// skip the verified-email check.
func (uc *IdentityUseCase) ResolveRole(ctx context.Context, uid, email string) (entity.Role, error) {
	if uc.policy.IsAdmin(email) {
		return entity.RoleAdmin, nil
	}

	user, err := uc.identity.GetUser(ctx, uid)
	if err != nil {
		return "", errors.Unauthorized("Account not found", err)
	}
	if !user.EmailVerified {
		return "", errors.UnverifiedEmail()
	}

	role, err := uc.probeRole(ctx, uid, email)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", errors.RoleNotFound()
	}
	return role, nil
}

// Me resolves the role of an already-authenticated caller.
func (uc *IdentityUseCase) Me(ctx context.Context, uid, email string) (*Session, error) {
	role, err := uc.ResolveRole(ctx, uid, email)
	if err != nil {
		return nil, err
	}
	return &Session{UID: uid, Email: email, Role: role, Redirect: role.Redirect()}, nil
}

// probeRole looks for a mover and a client profile concurrently. It
// returns "" when neither exists.
func (uc *IdentityUseCase) probeRole(ctx context.Context, uid, email string) (entity.Role, error) {
	var (
		mover  *entity.MoverProfile
		client *entity.ClientProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mover, err = uc.moverRepo.FindByEmail(gctx, uid, email)
		return err
	})
	g.Go(func() error {
		var err error
		client, err = uc.clientRepo.FindByEmail(gctx, uid, email)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Role lookup failed for %s: %v", uid, err)
		return "", errors.Internal("Failed to resolve account role", err)
	}

	switch {
	case mover != nil:
		return entity.RoleMover, nil
	case client != nil:
		return entity.RoleClient, nil
	}
	return "", nil
}

func (uc *IdentityUseCase) RegisterClient(ctx context.Context, input RegisterClientInput) (*RegistrationResult, error) {
	uid, err := uc.openAccount(ctx, input.Email, input.Password, input.Name, entity.RoleClient)
	if err != nil {
		return nil, err
	}

	profile := &entity.ClientProfile{
		ID:    uid,
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}
	if err := uc.clientRepo.Create(ctx, profile); err != nil {
		logger.Error("Failed to create client profile for %s: %v", uid, err)
		return nil, errors.Internal("Failed to create client profile", err)
	}

	return &RegistrationResult{
		UID:              uid,
		Email:            input.Email,
		Role:             entity.RoleClient,
		VerificationSent: uc.sendVerification(ctx, input.Email, input.Password),
		Profile:          profile,
	}, nil
}

// RegisterMover creates a pending mover. Allow-listed admin addresses are
// approved on the spot.
func (uc *IdentityUseCase) RegisterMover(ctx context.Context, input RegisterMoverInput) (*RegistrationResult, error) {
	uid, err := uc.openAccount(ctx, input.Email, input.Password, input.CompanyName, entity.RoleMover)
	if err != nil {
		return nil, err
	}

	profile := &entity.MoverProfile{
		ID:                 uid,
		CompanyName:        input.CompanyName,
		Name:               input.CompanyName,
		ServiceArea:        input.ServiceArea,
		ContactNumber:      input.ContactNumber,
		Email:              input.Email,
		Credentials:        []string{},
		VerificationStatus: entity.VerificationPending,
	}
	profile.SetAvailable(true)
	if uc.policy.IsAdmin(input.Email) {
		profile.VerificationStatus = entity.VerificationApproved
	}

	if err := uc.moverRepo.Create(ctx, profile); err != nil {
		logger.Error("Failed to create mover profile for %s: %v", uid, err)
		return nil, errors.Internal("Failed to create mover profile", err)
	}

	return &RegistrationResult{
		UID:              uid,
		Email:            input.Email,
		Role:             entity.RoleMover,
		VerificationSent: uc.sendVerification(ctx, input.Email, input.Password),
		Profile:          profile,
	}, nil
}

// openAccount returns the uid a new profile of role may be written under.
//
// A fresh account that already carries the other role is deleted again
// before the conflict is reported. An existing account is reused only when
// the password matches and it holds no profile yet.
func (uc *IdentityUseCase) openAccount(ctx context.Context, email, password, displayName string, role entity.Role) (string, error) {
	uid, createErr := uc.identity.CreateUser(ctx, email, password, displayName)
	if createErr != nil {
		res, err := uc.identity.SignIn(ctx, email, password)
		if err != nil {
			logger.Debug("Registration for %s rejected: %v", email, createErr)
			return "", errors.BadRequest("Email already in use or password too weak", createErr)
		}
		existing, err := uc.probeRole(ctx, res.UID, email)
		if err != nil {
			return "", err
		}
		if existing == role {
			return "", errors.Conflict("This account is already registered. Please log in instead.")
		}
		if existing != "" {
			return "", errors.RoleConflict(string(existing))
		}
		return res.UID, nil
	}

	existing, err := uc.probeRole(ctx, uid, email)
	if err == nil && existing == "" {
		return uid, nil
	}

	if delErr := uc.identity.DeleteUser(ctx, uid); delErr != nil {
		logger.Error("Failed to roll back account %s after registration conflict: %v", uid, delErr)
	}
	if err != nil {
		return "", err
	}
	return "", errors.RoleConflict(string(existing))
}

// sendVerification signs the new account in to obtain the token the
// provider needs. Failures are logged; the account stays usable.
func (uc *IdentityUseCase) sendVerification(ctx context.Context, email, password string) bool {
	res, err := uc.identity.SignIn(ctx, email, password)
	if err == nil {
		err = uc.identity.SendVerificationEmail(ctx, res.IDToken)
	}
	if err != nil {
		logger.Warn("Failed to send verification email to %s: %v", email, err)
		return false
	}
	return true
}
