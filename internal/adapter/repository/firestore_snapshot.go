package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moverconnect/pkg/errors"
)

type decodeFunc[T any] func(doc *firestore.DocumentSnapshot) (T, error)

// collect drains a document iterator and decodes every document.
func collect[T any](iter *firestore.DocumentIterator, decode decodeFunc[T]) ([]T, error) {
	defer iter.Stop()

	items := make([]T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query documents", err)
		}

		item, err := decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// watchQuery pushes the full result set of q to fn on every snapshot
// until ctx is done. The listener is always stopped before returning.
func watchQuery[T any](ctx context.Context, q firestore.Query, decode decodeFunc[T], sortFn func([]T), fn func([]T)) error {
	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled || err == iterator.Done {
				return nil
			}
			return errors.Internal("Live query failed", err)
		}

		items, err := collect(snap.Documents, decode)
		if err != nil {
			return err
		}
		if sortFn != nil {
			sortFn(items)
		}
		fn(items)
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
