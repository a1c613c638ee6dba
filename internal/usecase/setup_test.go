package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"moverconnect/internal/adapter/repository/memory"
	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/policy"
	"moverconnect/internal/domain/repository"
	"moverconnect/internal/infrastructure/firebase"
	"moverconnect/internal/infrastructure/storage"
)

const testAdminEmail = "admin@movers.test"

type testEnv struct {
	store    *memory.Store
	identity *firebase.DevIdentityProvider
	files    *storage.MemoryStorage
	limiter  *stubLimiter

	clients  repository.ClientRepository
	movers   repository.MoverRepository
	requests repository.RequestRepository
	bookings repository.BookingRepository
	quotesR  repository.QuoteRepository
	messages repository.MessageRepository
	reviews  repository.ReviewRepository

	identityUC *IdentityUseCase
	moverUC    *MoverUseCase
	requestUC  *RequestUseCase
	quoteUC    *QuoteUseCase
	bookingUC  *BookingUseCase
	messageUC  *MessageUseCase
	reviewUC   *ReviewUseCase
	adminUC    *AdminUseCase
	profileUC  *ProfileUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    memory.NewStore(),
		identity: firebase.NewDevIdentityProvider(),
		files:    storage.NewMemoryStorage(),
		limiter:  &stubLimiter{allow: true},
	}
	env.identity.AutoVerify = true

	env.clients = memory.NewClientRepository(env.store)
	env.movers = memory.NewMoverRepository(env.store)
	env.requests = memory.NewRequestRepository(env.store)
	env.bookings = memory.NewBookingRepository(env.store)
	env.quotesR = memory.NewQuoteRepository(env.store)
	env.messages = memory.NewMessageRepository(env.store)
	env.reviews = memory.NewReviewRepository(env.store)

	accessPolicy := policy.New([]string{testAdminEmail})
	env.identityUC = NewIdentityUseCase(env.identity, env.clients, env.movers, accessPolicy)
	env.moverUC = NewMoverUseCase(env.movers, env.files)
	env.requestUC = NewRequestUseCase(env.requests)
	env.quoteUC = NewQuoteUseCase(env.quotesR, env.requests, env.movers)
	env.bookingUC = NewBookingUseCase(env.bookings, env.movers)
	env.messageUC = NewMessageUseCase(env.messages, env.bookingUC, env.limiter)
	env.reviewUC = NewReviewUseCase(env.reviews, env.bookings)
	env.adminUC = NewAdminUseCase(env.movers, env.clients)
	env.profileUC = NewProfileUseCase(env.clients, env.movers, env.files)
	return env
}

func (e *testEnv) registerClient(t *testing.T, email string) string {
	t.Helper()
	res, err := e.identityUC.RegisterClient(context.Background(), RegisterClientInput{
		Email: email, Password: "secret123", Name: "Client " + email, Phone: "555-0100",
	})
	require.NoError(t, err)
	return res.UID
}

func (e *testEnv) registerMover(t *testing.T, email, company string) string {
	t.Helper()
	res, err := e.identityUC.RegisterMover(context.Background(), RegisterMoverInput{
		Email: email, Password: "secret123", CompanyName: company, ServiceArea: "Downtown", ContactNumber: "555-0199",
	})
	require.NoError(t, err)
	return res.UID
}

func (e *testEnv) approve(t *testing.T, moverID string) {
	t.Helper()
	_, err := e.adminUC.SetVerification(context.Background(), testAdminEmail, moverID, entity.VerificationApproved)
	require.NoError(t, err)
}

// stepClock hands out the given instants in order, then keeps the last.
func stepClock(instants ...time.Time) func() time.Time {
	var mu sync.Mutex
	i := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := instants[i]
		if i < len(instants)-1 {
			i++
		}
		return t
	}
}

type stubLimiter struct {
	mu    sync.Mutex
	allow bool
	calls int
}

func (l *stubLimiter) Allow(string, string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.allow {
		return true, 0
	}
	return false, 1500 * time.Millisecond
}
