package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/policy"
	"moverconnect/internal/domain/service"
	"moverconnect/internal/infrastructure/firebase"
	"moverconnect/pkg/errors"
)

func TestLoginRoutesEachRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerClient(t, "client@movers.test")
	env.registerMover(t, "mover@movers.test", "Swift Movers")
	_, err := env.identity.CreateUser(ctx, testAdminEmail, "secret123", "")
	require.NoError(t, err)

	cases := []struct {
		email    string
		role     entity.Role
		redirect string
	}{
		{"client@movers.test", entity.RoleClient, "/dashboardclient"},
		{"mover@movers.test", entity.RoleMover, "/mover"},
		{testAdminEmail, entity.RoleAdmin, "/admin"},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			session, err := env.identityUC.Login(ctx, tc.email, "secret123")
			require.NoError(t, err)
			assert.Equal(t, tc.role, session.Role)
			assert.Equal(t, tc.redirect, session.Redirect)
			assert.NotEmpty(t, session.IDToken)
		})
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerClient(t, "client@movers.test")

	_, err := env.identityUC.Login(context.Background(), "client@movers.test", "wrong-password")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestUnverifiedEmailIsBlockedButAdminIsNot(t *testing.T) {
	env := newTestEnv(t)
	env.identity.AutoVerify = false
	ctx := context.Background()

	env.registerClient(t, "client@movers.test")
	_, err := env.identityUC.Login(ctx, "client@movers.test", "secret123")
	assert.True(t, errors.Is(err, "UNVERIFIED_EMAIL"))

	env.identity.VerifyEmail("client@movers.test")
	session, err := env.identityUC.Login(ctx, "client@movers.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, session.Role)

	_, err = env.identity.CreateUser(ctx, testAdminEmail, "secret123", "")
	require.NoError(t, err)
	session, err = env.identityUC.Login(ctx, testAdminEmail, "secret123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, session.Role)
}

func TestResolveRoleWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	uid, err := env.identity.CreateUser(ctx, "orphan@movers.test", "secret123", "")
	require.NoError(t, err)

	_, err = env.identityUC.ResolveRole(ctx, uid, "orphan@movers.test")
	assert.True(t, errors.Is(err, "ROLE_NOT_FOUND"))
}

func TestAdminEmailCompareIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.identity.CreateUser(ctx, "Admin@Movers.test", "secret123", "")
	require.NoError(t, err)

	_, err = env.identityUC.AdminLogin(ctx, "Admin@Movers.test", "secret123")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAdminLoginRejectsNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.registerClient(t, "client@movers.test")

	_, err := env.identityUC.AdminLogin(ctx, "client@movers.test", "secret123")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.identity.CreateUser(ctx, testAdminEmail, "secret123", "")
	require.NoError(t, err)
	session, err := env.identityUC.AdminLogin(ctx, testAdminEmail, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "/admin", session.Redirect)
}

// countingProvider records sign-in attempts that reach the provider.
type countingProvider struct {
	*firebase.DevIdentityProvider
	signIns int
}

func (p *countingProvider) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	p.signIns++
	return p.DevIdentityProvider.SignIn(ctx, email, password)
}

func TestAdminLoginChecksAllowListBeforeSignIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.registerClient(t, "client@movers.test")

	provider := &countingProvider{DevIdentityProvider: env.identity}
	uc := NewIdentityUseCase(provider, env.clients, env.movers, policy.New([]string{testAdminEmail}))

	_, err := uc.AdminLogin(ctx, "client@movers.test", "wrong-password")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = uc.AdminLogin(ctx, "stranger@movers.test", "x")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, 0, provider.signIns)

	_, err = env.identity.CreateUser(ctx, testAdminEmail, "secret123", "")
	require.NoError(t, err)
	_, err = uc.AdminLogin(ctx, testAdminEmail, "wrong-password")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.Equal(t, 1, provider.signIns)
}

func TestRegistrationWritesProfilesAndSendsVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	clientID := env.registerClient(t, "client@movers.test")
	client, err := env.clients.GetByID(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", client.Phone)
	assert.Equal(t, 1, env.identity.VerificationsSent[clientID])

	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	mover, err := env.movers.GetByID(ctx, moverID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, mover.VerificationStatus)
	assert.Equal(t, "Swift Movers", mover.Name)
	assert.True(t, mover.IsAvailable)
	assert.Equal(t, entity.AvailabilityAvailable, mover.Status)
}

func TestAdminAddressRegisteringAsMoverIsApproved(t *testing.T) {
	env := newTestEnv(t)

	moverID := env.registerMover(t, testAdminEmail, "House Movers")
	mover, err := env.movers.GetByID(context.Background(), moverID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, mover.VerificationStatus)
}

func TestSecondRoleRegistrationIsRejected(t *testing.T) {
	t.Run("client then mover", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		uid := env.registerClient(t, "dual@movers.test")

		_, err := env.identityUC.RegisterMover(ctx, RegisterMoverInput{
			Email: "dual@movers.test", Password: "secret123", CompanyName: "Dual Co",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "ROLE_CONFLICT"))

		_, err = env.movers.GetByID(ctx, uid)
		assert.True(t, errors.Is(err, "NOT_FOUND"))
	})

	t.Run("mover then client", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		uid := env.registerMover(t, "dual@movers.test", "Dual Co")

		_, err := env.identityUC.RegisterClient(ctx, RegisterClientInput{
			Email: "dual@movers.test", Password: "secret123", Name: "Dual",
		})
		assert.True(t, errors.Is(err, "ROLE_CONFLICT"))

		_, err = env.clients.GetByID(ctx, uid)
		assert.True(t, errors.Is(err, "NOT_FOUND"))
	})

	t.Run("same role twice", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerClient(t, "dup@movers.test")

		_, err := env.identityUC.RegisterClient(context.Background(), RegisterClientInput{
			Email: "dup@movers.test", Password: "secret123",
		})
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("wrong password on taken email", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerClient(t, "taken@movers.test")

		_, err := env.identityUC.RegisterMover(context.Background(), RegisterMoverInput{
			Email: "taken@movers.test", Password: "other-password",
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})
}

// reusedUIDProvider hands out a uid that already owns a profile, so the
// post-create conflict probe fires.
type reusedUIDProvider struct {
	*firebase.DevIdentityProvider
	uid     string
	deleted []string
}

func (p *reusedUIDProvider) CreateUser(context.Context, string, string, string) (string, error) {
	return p.uid, nil
}

func (p *reusedUIDProvider) DeleteUser(_ context.Context, uid string) error {
	p.deleted = append(p.deleted, uid)
	return nil
}

func TestFreshAccountIsDeletedOnRoleConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.clients.Create(ctx, &entity.ClientProfile{ID: "u-1", Email: "reuse@movers.test"}))

	provider := &reusedUIDProvider{DevIdentityProvider: env.identity, uid: "u-1"}
	uc := NewIdentityUseCase(provider, env.clients, env.movers, policy.New(nil))

	_, err := uc.RegisterMover(ctx, RegisterMoverInput{Email: "reuse@movers.test", Password: "secret123", CompanyName: "Reuse"})
	assert.True(t, errors.Is(err, "ROLE_CONFLICT"))
	assert.Equal(t, []string{"u-1"}, provider.deleted)

	_, err = env.movers.GetByID(ctx, "u-1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestFreshAccountOwningMoverProfileCannotBecomeClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.movers.Create(ctx, &entity.MoverProfile{ID: "u-2", Email: "reuse@movers.test"}))
	provider := &reusedUIDProvider{DevIdentityProvider: env.identity, uid: "u-2"}
	uc := NewIdentityUseCase(provider, env.clients, env.movers, policy.New(nil))

	_, err := uc.RegisterClient(ctx, RegisterClientInput{Email: "reuse@movers.test", Password: "secret123"})
	assert.True(t, errors.Is(err, "ROLE_CONFLICT"))

	_, err = env.clients.GetByID(ctx, "u-2")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
