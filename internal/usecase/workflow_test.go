package usecase

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

func TestBookingStatusIsMonotonic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	for _, target := range []entity.BookingStatus{entity.BookingStatusAccepted, entity.BookingStatusDeclined} {
		t.Run(string(target), func(t *testing.T) {
			booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{
				MoverID: moverID, Date: "2024-06-01", Time: "09:00",
			})
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusPending, booking.Status)
			assert.Equal(t, "Swift Movers", booking.MoverName)

			updated, err := env.bookingUC.UpdateStatus(ctx, moverID, booking.ID, target)
			require.NoError(t, err)
			assert.Equal(t, target, updated.Status)

			for _, next := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusAccepted, entity.BookingStatusDeclined} {
				_, err := env.bookingUC.UpdateStatus(ctx, moverID, booking.ID, next)
				assert.True(t, errors.Is(err, "INVALID_TRANSITION"), "%s -> %s", target, next)
			}
		})
	}
}

func TestOnlyBookedMoverChangesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	otherID := env.registerMover(t, "other@movers.test", "Other Movers")

	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID, Date: "2024-06-01", Time: "09:00"})
	require.NoError(t, err)

	_, err = env.bookingUC.UpdateStatus(ctx, otherID, booking.ID, entity.BookingStatusAccepted)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = env.bookingUC.UpdateStatus(ctx, clientID, booking.ID, entity.BookingStatusAccepted)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDuplicateBookingsAreAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	input := CreateBookingInput{MoverID: moverID, Date: "2024-06-01", Time: "09:00"}
	_, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", input)
	require.NoError(t, err)
	_, err = env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", input)
	require.NoError(t, err)

	mine, err := env.bookingUC.ListBookings(ctx, entity.RoleClient, clientID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := env.bookingUC.ListBookings(ctx, entity.RoleMover, moverID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)
}

func TestQuoteRequiresApprovedMover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	req, err := env.requestUC.CreateRequest(ctx, clientID, CreateRequestInput{
		Name: "Jo", Address: "1 Main St", Contact: "555", Description: "2BR", Date: "2024-07-01",
	})
	require.NoError(t, err)

	input := SubmitQuoteInput{ClientID: clientID, RequestID: req.ID, Amount: 450, Notes: "two trucks"}
	for _, status := range []entity.VerificationStatus{entity.VerificationPending, entity.VerificationRejected} {
		_, err := env.adminUC.SetVerification(ctx, testAdminEmail, moverID, status)
		require.NoError(t, err)

		_, err = env.quoteUC.SubmitQuote(ctx, moverID, "mover@movers.test", input)
		assert.True(t, errors.Is(err, "MOVER_NOT_VERIFIED"), string(status))
	}

	quotes, err := env.quotesR.List(ctx, repository.QuoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, quotes)

	env.approve(t, moverID)
	quote, err := env.quoteUC.SubmitQuote(ctx, moverID, "mover@movers.test", input)
	require.NoError(t, err)
	assert.Equal(t, req.ID, quote.RequestID)
	assert.Equal(t, clientID, quote.ClientID)
	assert.Equal(t, moverID, quote.MoverID)
	assert.Equal(t, "Swift Movers", quote.MoverName)
	assert.Equal(t, entity.QuoteStatusPending, quote.Status)
}

func TestQuoteOnUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	env.approve(t, moverID)

	_, err := env.quoteUC.SubmitQuote(ctx, moverID, "", SubmitQuoteInput{ClientID: clientID, RequestID: "missing", Amount: 10})
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = env.quoteUC.SubmitQuote(ctx, moverID, "", SubmitQuoteInput{ClientID: clientID, RequestID: "missing", Amount: 0})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestReviewEligibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID, Date: "d", Time: "t"})
	require.NoError(t, err)

	ok, err := env.reviewUC.CheckReviewable(ctx, clientID, booking.ID)
	require.NoError(t, err)
	assert.False(t, ok, "pending booking is never reviewable")

	_, err = env.reviewUC.CreateReview(ctx, clientID, booking.ID, CreateReviewInput{Rating: 5, Comment: "great"})
	assert.True(t, errors.Is(err, "NOT_REVIEWABLE"))

	_, err = env.bookingUC.UpdateStatus(ctx, moverID, booking.ID, entity.BookingStatusAccepted)
	require.NoError(t, err)

	ok, err = env.reviewUC.CheckReviewable(ctx, clientID, booking.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.reviewUC.CreateReview(ctx, clientID, booking.ID, CreateReviewInput{Rating: 4, Comment: "on time"})
	require.NoError(t, err)

	ok, err = env.reviewUC.CheckReviewable(ctx, clientID, booking.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.reviewUC.CreateReview(ctx, clientID, booking.ID, CreateReviewInput{Rating: 1, Comment: "again"})
	assert.True(t, errors.Is(err, "ALREADY_REVIEWED"))
}

func TestReviewInputValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, input := range []CreateReviewInput{
		{Rating: 0, Comment: "x"},
		{Rating: 6, Comment: "x"},
		{Rating: 3, Comment: "   "},
	} {
		_, err := env.reviewUC.CreateReview(ctx, "c", "b", input)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "%+v", input)
	}
}

func TestDeclinedBookingCannotBeReviewedByOthers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	otherClient := env.registerClient(t, "other@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID})
	require.NoError(t, err)
	_, err = env.bookingUC.UpdateStatus(ctx, moverID, booking.ID, entity.BookingStatusDeclined)
	require.NoError(t, err)

	ok, err := env.reviewUC.CheckReviewable(ctx, clientID, booking.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.reviewUC.CheckReviewable(ctx, otherClient, booking.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMoverRatingAggregation(t *testing.T) {
	cases := []struct {
		ratings []int
		want    float64
	}{
		{[]int{5, 4, 3, 2, 1}, 3.0},
		{[]int{5, 5, 4}, 4.7},
		{nil, 0},
	}
	for _, tc := range cases {
		env := newTestEnv(t)
		ctx := context.Background()
		for i, r := range tc.ratings {
			require.NoError(t, env.reviews.Create(ctx, &entity.Review{
				BookingID: string(rune('a' + i)), MoverID: "m1", ClientID: "c1", Rating: r, Comment: "ok",
			}))
		}
		// a review for another mover must not leak in
		require.NoError(t, env.reviews.Create(ctx, &entity.Review{BookingID: "z", MoverID: "m2", ClientID: "c1", Rating: 1}))

		rating, err := env.reviewUC.GetMoverRating(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, tc.want, rating.Average, "%v", tc.ratings)
		assert.Equal(t, len(tc.ratings), rating.Count)
	}
}

func TestMessagesAreOrderedByTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID})
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1, t2, t3 := base, base.Add(time.Second), base.Add(2*time.Second)
	// stored out of order: t2, t1, t3
	env.store.SetClock(stepClock(t2, t1, t3))

	_, err = env.messageUC.SendMessage(ctx, Sender{UID: moverID, Email: "mover@movers.test"}, booking.ID, "second")
	require.NoError(t, err)
	_, err = env.messageUC.SendMessage(ctx, Sender{UID: clientID, Email: "client@movers.test"}, booking.ID, "first")
	require.NoError(t, err)
	_, err = env.messageUC.SendMessage(ctx, Sender{UID: moverID, Email: "mover@movers.test"}, booking.ID, "third")
	require.NoError(t, err)

	thread, err := env.messageUC.ListMessages(ctx, clientID, booking.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, []time.Time{t1, t2, t3}, []time.Time{thread[0].Timestamp, thread[1].Timestamp, thread[2].Timestamp})
	assert.Equal(t, "first", thread[0].Text)
	assert.Equal(t, entity.SenderClient, thread[0].Sender)
	assert.Equal(t, "client", thread[0].SenderName)
	assert.Equal(t, entity.SenderMover, thread[1].Sender)
}

func TestSendMessageGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	outsider := env.registerClient(t, "outsider@movers.test")
	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID})
	require.NoError(t, err)

	_, err = env.messageUC.SendMessage(ctx, Sender{UID: clientID}, booking.ID, "   ")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = env.messageUC.SendMessage(ctx, Sender{UID: outsider}, booking.ID, "hello")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.messageUC.ListMessages(ctx, outsider, booking.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	env.limiter.allow = false
	_, err = env.messageUC.SendMessage(ctx, Sender{UID: clientID}, booking.ID, "hello")
	require.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
	assert.Contains(t, err.Error(), "2 seconds")
}

func TestDirectoryFiltering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	swift := env.registerMover(t, "swift@movers.test", "Swift Movers")
	env.registerMover(t, "haul@movers.test", "Big Haul")
	env.approve(t, swift)

	_, err := env.moverUC.SetAvailability(ctx, swift, false)
	require.NoError(t, err)

	all, err := env.moverUC.ListMovers(ctx, MoverQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := env.moverUC.ListMovers(ctx, MoverQuery{Search: "sWiFt"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, swift, byName[0].ID)

	available, err := env.moverUC.ListMovers(ctx, MoverQuery{Availability: entity.AvailabilityAvailable})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Big Haul", available[0].CompanyName)

	approved, err := env.moverUC.ListMovers(ctx, MoverQuery{Verification: entity.VerificationApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, entity.AvailabilityUnavailable, approved[0].Status)
}

func TestLegacyMoverFiltersAsPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.movers.Create(ctx, &entity.MoverProfile{ID: "legacy", CompanyName: "Old Co"}))
	env.registerMover(t, "swift@movers.test", "Swift Movers")

	pending, err := env.moverUC.ListMovers(ctx, MoverQuery{Verification: entity.VerificationPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	adminView, err := env.adminUC.ListMovers(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, adminView.Movers, len(pending))
	assert.Equal(t, 2, adminView.Counts.Pending)

	approved, err := env.moverUC.ListMovers(ctx, MoverQuery{Verification: entity.VerificationApproved})
	require.NoError(t, err)
	assert.Empty(t, approved)
	assert.True(t, MoverQuery{Verification: entity.VerificationPending}.Match(&entity.MoverProfile{}))
}

func TestWatchMoversAppliesFilterToEverySnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []*entity.MoverProfile, 10)
	go func() {
		_ = env.moverUC.WatchMovers(ctx, MoverQuery{Search: "swift"}, func(list []*entity.MoverProfile) {
			snapshots <- list
		})
	}()
	assert.Empty(t, <-snapshots)

	env.registerMover(t, "haul@movers.test", "Big Haul")
	env.registerMover(t, "swift@movers.test", "Swift Movers")

	require.Eventually(t, func() bool {
		select {
		case list := <-snapshots:
			return len(list) == 1 && list[0].CompanyName == "Swift Movers"
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestCredentialUploadKeepsSuccessfulFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	env.files.FailOn = "broken"

	file := func(name, body string) CredentialFile {
		return CredentialFile{
			Name:        name,
			ContentType: "application/pdf",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(body)), nil
			},
		}
	}

	res, err := env.moverUC.UploadCredentials(ctx, moverID, []CredentialFile{
		file("license.pdf", "a"), file("broken.pdf", "b"), file("insurance.pdf", "c"),
	})
	require.NoError(t, err)
	assert.Len(t, res.Uploaded, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "broken.pdf", res.Failed[0].Name)

	// a second batch appends
	res, err = env.moverUC.UploadCredentials(ctx, moverID, []CredentialFile{file("permit.pdf", "d")})
	require.NoError(t, err)
	assert.Len(t, res.Credentials, 3)

	data, ok := env.files.Object("movers/" + moverID + "/credentials/permit.pdf")
	require.True(t, ok)
	assert.Equal(t, "d", string(data))

	_, err = env.moverUC.UploadCredentials(ctx, moverID, nil)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

type unlinkableMovers struct {
	repository.MoverRepository
}

func (unlinkableMovers) AppendCredentials(context.Context, string, []string) error {
	return stderrors.New("write rejected")
}

func TestCredentialUploadRemovesBlobsItCannotLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	pdf := func(name string) CredentialFile {
		return CredentialFile{Name: name, ContentType: "application/pdf", Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(name)), nil
		}}
	}

	_, err := env.moverUC.UploadCredentials(ctx, moverID, []CredentialFile{pdf("license.pdf")})
	require.NoError(t, err)

	uc := NewMoverUseCase(unlinkableMovers{env.movers}, env.files)
	_, err = uc.UploadCredentials(ctx, moverID, []CredentialFile{pdf("license.pdf"), pdf("permit.pdf")})
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))

	_, ok := env.files.Object("movers/" + moverID + "/credentials/permit.pdf")
	assert.False(t, ok)
	_, ok = env.files.Object("movers/" + moverID + "/credentials/license.pdf")
	assert.True(t, ok, "previously linked credential stays")
}

func TestAdminListsMoversWithCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.registerMover(t, "a@movers.test", "A")
	b := env.registerMover(t, "b@movers.test", "B")
	env.registerMover(t, "c@movers.test", "C")

	env.approve(t, a)
	_, err := env.adminUC.SetVerification(ctx, testAdminEmail, b, entity.VerificationRejected)
	require.NoError(t, err)

	list, err := env.adminUC.ListMovers(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, list.Movers, 1)
	assert.Equal(t, VerificationCounts{All: 3, Pending: 1, Approved: 1, Rejected: 1}, list.Counts)

	list, err = env.adminUC.ListMovers(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, list.Movers, 3)

	_, err = env.adminUC.ListMovers(ctx, "bogus")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = env.adminUC.SetVerification(ctx, testAdminEmail, a, "maybe")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestAdminAuditFieldsAndDeletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	env.adminUC.now = func() time.Time { return at }

	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")
	booking, err := env.bookingUC.CreateBooking(ctx, clientID, "client@movers.test", CreateBookingInput{MoverID: moverID})
	require.NoError(t, err)

	mover, err := env.adminUC.SetVerification(ctx, testAdminEmail, moverID, entity.VerificationApproved)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, mover.VerifiedBy)
	require.NotNil(t, mover.VerifiedAt)
	assert.True(t, at.Equal(*mover.VerifiedAt))

	mover, err = env.adminUC.SaveNotes(ctx, testAdminEmail, moverID, "license checked")
	require.NoError(t, err)
	assert.Equal(t, "license checked", mover.AdminNotes)
	assert.Equal(t, testAdminEmail, mover.NotesUpdatedBy)

	require.NoError(t, env.adminUC.DeleteMover(ctx, testAdminEmail, moverID))
	require.NoError(t, env.adminUC.DeleteClient(ctx, testAdminEmail, clientID))

	_, err = env.movers.GetByID(ctx, moverID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	clients, err := env.adminUC.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)

	// no cascade
	_, err = env.bookings.GetByID(ctx, booking.ID)
	assert.NoError(t, err)
}

func TestBackfillMovers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.movers.Create(ctx, &entity.MoverProfile{ID: "legacy", CompanyName: "Old Co"}))
	env.registerMover(t, "new@movers.test", "New Co")

	touched, err := env.adminUC.BackfillMovers(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy"}, touched)

	legacy, err := env.movers.GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Empty(t, legacy.Name)

	_, err = env.adminUC.BackfillMovers(ctx, false)
	require.NoError(t, err)
	legacy, err = env.movers.GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Old Co", legacy.Name)
	assert.Equal(t, entity.AvailabilityAvailable, legacy.Status)
}

func TestProfileWithoutDocumentIsAStub(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.profileUC.GetProfile(ctx, ProfileOwner{UID: "u-new", Email: "new@movers.test", Role: entity.RoleClient})
	require.NoError(t, err)
	client := got.(*entity.ClientProfile)
	assert.Equal(t, "u-new", client.ID)
	assert.Equal(t, "new@movers.test", client.Email)
	assert.Empty(t, client.Name)

	got, err = env.profileUC.GetProfile(ctx, ProfileOwner{UID: "u-new", Email: "new@movers.test", Role: entity.RoleMover})
	require.NoError(t, err)
	mover := got.(*entity.MoverProfile)
	assert.Equal(t, "new@movers.test", mover.Email)
	assert.Empty(t, mover.Credentials)

	_, err = env.profileUC.GetProfile(ctx, ProfileOwner{UID: "u-new", Role: entity.RoleAdmin})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProfileEditor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.registerClient(t, "client@movers.test")
	moverID := env.registerMover(t, "mover@movers.test", "Swift Movers")

	clientOwner := ProfileOwner{UID: clientID, Email: "client@movers.test", Role: entity.RoleClient}
	updated, err := env.profileUC.UpdateProfile(ctx, clientOwner, UpdateProfileInput{Name: "Jo Client", Phone: "555-7777"})
	require.NoError(t, err)
	client := updated.(*entity.ClientProfile)
	assert.Equal(t, "Jo Client", client.Name)
	assert.Equal(t, "555-7777", client.Phone)

	url, err := env.profileUC.UploadPhoto(ctx, clientOwner, strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	_, ok := env.files.Object("clients/" + clientID + "/profile.jpg")
	assert.True(t, ok)

	got, err := env.profileUC.GetProfile(ctx, clientOwner)
	require.NoError(t, err)
	assert.Equal(t, url, got.(*entity.ClientProfile).PhotoURL)

	moverOwner := ProfileOwner{UID: moverID, Email: "mover@movers.test", Role: entity.RoleMover}
	updated, err = env.profileUC.UpdateProfile(ctx, moverOwner, UpdateProfileInput{CompanyName: "Swifter Movers", ServiceArea: "Uptown"})
	require.NoError(t, err)
	mover := updated.(*entity.MoverProfile)
	assert.Equal(t, "Swifter Movers", mover.CompanyName)
	assert.Equal(t, "Swifter Movers", mover.Name)
	assert.Equal(t, "Uptown", mover.ServiceArea)
	assert.Equal(t, "555-0199", mover.ContactNumber)

	_, err = env.profileUC.UploadPhoto(ctx, moverOwner, strings.NewReader("x"), "text/plain")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	stub, err := env.profileUC.GetProfile(ctx, ProfileOwner{UID: "nobody", Email: "n@movers.test", Role: entity.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "n@movers.test", stub.(*entity.ClientProfile).Email)
}

func TestRequestFeedSpansClients(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.registerClient(t, "a@movers.test")
	b := env.registerClient(t, "b@movers.test")

	_, err := env.requestUC.CreateRequest(ctx, a, CreateRequestInput{Address: "1 A St", Date: "2024-07-01"})
	require.NoError(t, err)
	_, err = env.requestUC.CreateRequest(ctx, b, CreateRequestInput{Address: "2 B St", Date: "2024-07-02"})
	require.NoError(t, err)
	_, err = env.requestUC.CreateRequest(ctx, b, CreateRequestInput{Address: " ", Date: "2024-07-02"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	all, err := env.requestUC.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.requestUC.ListClientRequests(ctx, b)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b, mine[0].ClientID)
}
