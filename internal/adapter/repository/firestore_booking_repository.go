package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type firestoreBookingRepository struct {
	client *firestore.Client
}

func NewFirestoreBookingRepository(client *firestore.Client) repository.BookingRepository {
	return &firestoreBookingRepository{
		client: client,
	}
}

func decodeBooking(doc *firestore.DocumentSnapshot) (*entity.Booking, error) {
	var b entity.Booking
	if err := doc.DataTo(&b); err != nil {
		return nil, errors.Internal("Failed to parse booking data", err)
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

func sortBookings(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func (r *firestoreBookingRepository) query(filter repository.BookingFilter) firestore.Query {
	q := r.client.Collection("bookings").Query
	if filter.ClientID != "" {
		q = q.Where("clientId", "==", filter.ClientID)
	}
	if filter.MoverID != "" {
		q = q.Where("moverId", "==", filter.MoverID)
	}
	return q
}

func (r *firestoreBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()

	_, err := r.client.Collection("bookings").Doc(booking.ID).Set(ctx, booking)
	if err != nil {
		return errors.Internal("Failed to create booking", err)
	}
	return nil
}

func (r *firestoreBookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	doc, err := r.client.Collection("bookings").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Booking", err)
		}
		return nil, errors.Internal("Failed to get booking", err)
	}
	return decodeBooking(doc)
}

func (r *firestoreBookingRepository) UpdateStatus(ctx context.Context, id string, from, to entity.BookingStatus) error {
	ref := r.client.Collection("bookings").Doc(id)
	doc, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Booking", err)
		}
		return errors.Internal("Failed to get booking", err)
	}

	current, err := decodeBooking(doc)
	if err != nil {
		return err
	}
	if current.Status != from {
		return errors.InvalidTransition(string(current.Status), string(to))
	}

	// The precondition rejects the write if anyone touched the booking
	// since it was read.
	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "status", Value: string(to)},
		{Path: "updatedAt", Value: time.Now()},
	}, firestore.LastUpdateTime(doc.UpdateTime))
	if err != nil {
		if status.Code(err) == codes.FailedPrecondition {
			return errors.InvalidTransition(string(from), string(to))
		}
		return errors.Internal("Failed to update booking status", err)
	}
	return nil
}

func (r *firestoreBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	bookings, err := collect(r.query(filter).Documents(ctx), decodeBooking)
	if err != nil {
		return nil, err
	}
	sortBookings(bookings)
	return bookings, nil
}

func (r *firestoreBookingRepository) Watch(ctx context.Context, filter repository.BookingFilter, fn func([]*entity.Booking)) error {
	return watchQuery(ctx, r.query(filter), decodeBooking, sortBookings, fn)
}

type firestoreRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreRequestRepository(client *firestore.Client) repository.RequestRepository {
	return &firestoreRequestRepository{
		client: client,
	}
}

func (r *firestoreRequestRepository) requests(clientID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(clientID).Collection("requests")
}

// decodeRequest takes the owner from the document path.
func decodeRequest(doc *firestore.DocumentSnapshot) (*entity.ClientRequest, error) {
	var req entity.ClientRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, errors.Internal("Failed to parse request data", err)
	}
	req.ID = doc.Ref.ID
	if owner := doc.Ref.Parent.Parent; owner != nil {
		req.ClientID = owner.ID
	}
	return &req, nil
}

func sortRequests(requests []*entity.ClientRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

func (r *firestoreRequestRepository) Create(ctx context.Context, req *entity.ClientRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.CreatedAt = time.Now()

	_, err := r.requests(req.ClientID).Doc(req.ID).Set(ctx, req)
	if err != nil {
		return errors.Internal("Failed to create request", err)
	}
	return nil
}

func (r *firestoreRequestRepository) Get(ctx context.Context, clientID, requestID string) (*entity.ClientRequest, error) {
	doc, err := r.requests(clientID).Doc(requestID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Request", err)
		}
		return nil, errors.Internal("Failed to get request", err)
	}
	return decodeRequest(doc)
}

func (r *firestoreRequestRepository) ListAll(ctx context.Context) ([]*entity.ClientRequest, error) {
	requests, err := collect(r.client.CollectionGroup("requests").Documents(ctx), decodeRequest)
	if err != nil {
		return nil, err
	}
	sortRequests(requests)
	return requests, nil
}

func (r *firestoreRequestRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.ClientRequest, error) {
	requests, err := collect(r.requests(clientID).Documents(ctx), decodeRequest)
	if err != nil {
		return nil, err
	}
	sortRequests(requests)
	return requests, nil
}

func (r *firestoreRequestRepository) WatchAll(ctx context.Context, fn func([]*entity.ClientRequest)) error {
	return watchQuery(ctx, r.client.CollectionGroup("requests").Query, decodeRequest, sortRequests, fn)
}
