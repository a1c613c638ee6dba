package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func decodeReview(doc *firestore.DocumentSnapshot) (*entity.Review, error) {
	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	review.ID = doc.Ref.ID
	return &review, nil
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) ExistsForBooking(ctx context.Context, bookingID, clientID string) (bool, error) {
	iter := r.client.Collection("reviews").
		Where("bookingId", "==", bookingID).
		Where("clientId", "==", clientID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to query review", err)
	}
	return true, nil
}

func (r *firestoreReviewRepository) list(ctx context.Context, field, value string) ([]*entity.Review, error) {
	reviews, err := collect(r.client.Collection("reviews").Where(field, "==", value).Documents(ctx), decodeReview)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *firestoreReviewRepository) ListByMover(ctx context.Context, moverID string) ([]*entity.Review, error) {
	return r.list(ctx, "moverId", moverID)
}

func (r *firestoreReviewRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Review, error) {
	return r.list(ctx, "clientId", clientID)
}
