package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidBookingTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusAccepted, true},
		{BookingStatusPending, BookingStatusDeclined, true},
		{BookingStatusAccepted, BookingStatusDeclined, false},
		{BookingStatusDeclined, BookingStatusAccepted, false},
		{BookingStatusAccepted, BookingStatusPending, false},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusPending, BookingStatus("completed"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, ValidBookingTransition(tt.from, tt.to))
		})
	}
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.0, AverageRating([]int{5, 4, 3, 2, 1}))
	assert.Equal(t, 4.7, AverageRating([]int{5, 5, 4}))
	assert.Equal(t, 5.0, AverageRating([]int{5}))
	// 4.25 rounds up
	assert.Equal(t, 4.3, AverageRating([]int{5, 4, 4, 4}))
	// 87/20 = 4.35 rounds up
	ratings := make([]int, 0, 20)
	for i := 0; i < 7; i++ {
		ratings = append(ratings, 5)
	}
	for i := 0; i < 13; i++ {
		ratings = append(ratings, 4)
	}
	assert.Equal(t, 4.4, AverageRating(ratings))
}

func TestSortMessages(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	msgs := []*Message{
		{ID: "c", Timestamp: base.Add(2 * time.Minute)},
		{ID: "a", Timestamp: base},
		{ID: "b1", Timestamp: base.Add(time.Minute)},
		{ID: "b2", Timestamp: base.Add(time.Minute)},
	}
	SortMessages(msgs)

	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
}

func TestMoverProfile(t *testing.T) {
	m := &MoverProfile{CompanyName: "Swift Movers"}
	assert.Equal(t, "Swift Movers", m.DisplayName())
	m.Name = "Swift"
	assert.Equal(t, "Swift", m.DisplayName())

	m.SetAvailable(false)
	assert.False(t, m.IsAvailable)
	assert.Equal(t, AvailabilityUnavailable, m.Status)

	assert.False(t, m.CanQuote())
	assert.Equal(t, VerificationPending, m.Verification())
	m.VerificationStatus = VerificationApproved
	assert.True(t, m.CanQuote())
	assert.Equal(t, VerificationApproved, m.Verification())
}

func TestRoleRedirect(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.Redirect())
	assert.Equal(t, "/mover", RoleMover.Redirect())
	assert.Equal(t, "/dashboardclient", RoleClient.Redirect())
	assert.False(t, Role("guest").Valid())
}
