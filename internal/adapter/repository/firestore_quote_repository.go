package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type firestoreQuoteRepository struct {
	client *firestore.Client
}

func NewFirestoreQuoteRepository(client *firestore.Client) repository.QuoteRepository {
	return &firestoreQuoteRepository{
		client: client,
	}
}

func decodeQuote(doc *firestore.DocumentSnapshot) (*entity.Quote, error) {
	var q entity.Quote
	if err := doc.DataTo(&q); err != nil {
		return nil, errors.Internal("Failed to parse quote data", err)
	}
	q.ID = doc.Ref.ID
	return &q, nil
}

func sortQuotes(quotes []*entity.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
}

func (r *firestoreQuoteRepository) query(filter repository.QuoteFilter) firestore.Query {
	q := r.client.Collection("quotes").Query
	if filter.ClientID != "" {
		q = q.Where("clientId", "==", filter.ClientID)
	}
	if filter.MoverID != "" {
		q = q.Where("moverId", "==", filter.MoverID)
	}
	return q
}

func (r *firestoreQuoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	quote.CreatedAt = time.Now()

	_, err := r.client.Collection("quotes").Doc(quote.ID).Set(ctx, quote)
	if err != nil {
		return errors.Internal("Failed to create quote", err)
	}
	return nil
}

func (r *firestoreQuoteRepository) List(ctx context.Context, filter repository.QuoteFilter) ([]*entity.Quote, error) {
	quotes, err := collect(r.query(filter).Documents(ctx), decodeQuote)
	if err != nil {
		return nil, err
	}
	sortQuotes(quotes)
	return quotes, nil
}

func (r *firestoreQuoteRepository) Watch(ctx context.Context, filter repository.QuoteFilter, fn func([]*entity.Quote)) error {
	return watchQuery(ctx, r.query(filter), decodeQuote, sortQuotes, fn)
}
