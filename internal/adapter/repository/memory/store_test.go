package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

func TestMoverWatchPushesEveryWriteAndUnsubscribes(t *testing.T) {
	s := NewStore()
	movers := NewMoverRepository(s)
	ctx, cancel := context.WithCancel(context.Background())

	snapshots := make(chan []*entity.MoverProfile, 10)
	done := make(chan error, 1)
	go func() {
		done <- movers.Watch(ctx, repository.MoverFilter{}, func(list []*entity.MoverProfile) {
			snapshots <- list
		})
	}()

	first := <-snapshots
	assert.Empty(t, first)

	require.NoError(t, movers.Create(context.Background(), &entity.MoverProfile{ID: "m1", CompanyName: "Swift"}))

	var latest []*entity.MoverProfile
	require.Eventually(t, func() bool {
		select {
		case latest = <-snapshots:
		default:
		}
		return len(latest) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "m1", latest[0].ID)
	assert.Equal(t, 1, s.Subscribers(TopicMovers))

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, s.Subscribers(TopicMovers))
}

func TestBookingUpdateStatusChecksCurrentStatus(t *testing.T) {
	s := NewStore()
	bookings := NewBookingRepository(s)
	ctx := context.Background()

	b := &entity.Booking{ClientID: "c", MoverID: "m", Status: entity.BookingStatusPending}
	require.NoError(t, bookings.Create(ctx, b))
	require.NotEmpty(t, b.ID)

	require.NoError(t, bookings.UpdateStatus(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusAccepted))

	err := bookings.UpdateStatus(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusDeclined)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAccepted, got.Status)

	_, err = bookings.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestMessagesKeepInsertionOrderOnTies(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	messages := NewMessageRepository(s)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, messages.Create(ctx, &entity.Message{BookingID: "b1", Text: text}))
	}
	require.NoError(t, messages.Create(ctx, &entity.Message{BookingID: "b2", Text: "other"}))

	list, err := messages.ListByBooking(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Text)
	assert.Equal(t, "two", list[1].Text)
	assert.Equal(t, "three", list[2].Text)
}

func TestBackfillDefaults(t *testing.T) {
	s := NewStore()
	movers := NewMoverRepository(s)
	ctx := context.Background()

	require.NoError(t, movers.Create(ctx, &entity.MoverProfile{ID: "old", CompanyName: "Old Co"}))
	require.NoError(t, movers.Create(ctx, &entity.MoverProfile{ID: "new", CompanyName: "New Co", Name: "New", Status: "available"}))

	touched, err := movers.BackfillDefaults(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, touched)

	m, _ := movers.GetByID(ctx, "old")
	assert.Empty(t, m.Status)

	touched, err = movers.BackfillDefaults(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, touched)

	m, _ = movers.GetByID(ctx, "old")
	assert.Equal(t, "available", m.Status)
	assert.Equal(t, "Old Co", m.Name)

	touched, err = movers.BackfillDefaults(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, touched)
}

func TestRequestsAreScopedByOwner(t *testing.T) {
	s := NewStore()
	requests := NewRequestRepository(s)
	ctx := context.Background()

	r1 := &entity.ClientRequest{ClientID: "c1", Name: "first"}
	r2 := &entity.ClientRequest{ClientID: "c2", Name: "second"}
	require.NoError(t, requests.Create(ctx, r1))
	require.NoError(t, requests.Create(ctx, r2))

	all, err := requests.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Name)

	mine, err := requests.ListByClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = requests.Get(ctx, "c2", r1.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	got, err := requests.Get(ctx, "c1", r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ClientID)
}
