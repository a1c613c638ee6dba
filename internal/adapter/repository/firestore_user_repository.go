package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

// Profiles live under the owning account: users/{uid}/clients/{uid} and
// users/{uid}/movers/{uid}. Cross-account listings use collection groups.

type firestoreClientRepository struct {
	client *firestore.Client
}

func NewFirestoreClientRepository(client *firestore.Client) repository.ClientRepository {
	return &firestoreClientRepository{
		client: client,
	}
}

func (r *firestoreClientRepository) clients(uid string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(uid).Collection("clients")
}

func decodeClient(doc *firestore.DocumentSnapshot) (*entity.ClientProfile, error) {
	var c entity.ClientProfile
	if err := doc.DataTo(&c); err != nil {
		return nil, errors.Internal("Failed to parse client data", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

func (r *firestoreClientRepository) Create(ctx context.Context, c *entity.ClientProfile) error {
	c.CreatedAt = time.Now()

	_, err := r.clients(c.ID).Doc(c.ID).Set(ctx, c)
	if err != nil {
		return errors.Internal("Failed to create client profile", err)
	}
	return nil
}

func (r *firestoreClientRepository) GetByID(ctx context.Context, uid string) (*entity.ClientProfile, error) {
	doc, err := r.clients(uid).Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Client", err)
		}
		return nil, errors.Internal("Failed to get client", err)
	}
	return decodeClient(doc)
}

func (r *firestoreClientRepository) FindByEmail(ctx context.Context, uid, email string) (*entity.ClientProfile, error) {
	iter := r.clients(uid).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query client", err)
	}
	return decodeClient(doc)
}

func (r *firestoreClientRepository) Update(ctx context.Context, c *entity.ClientProfile) error {
	updateData := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if c.Name != "" {
		updateData["name"] = c.Name
	}
	if c.Phone != "" {
		updateData["number"] = c.Phone
	}
	if c.PhotoURL != "" {
		updateData["photoURL"] = c.PhotoURL
	}
	if c.Email != "" {
		updateData["email"] = c.Email
	}

	_, err := r.clients(c.ID).Doc(c.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update client profile", err)
	}
	return nil
}

func (r *firestoreClientRepository) List(ctx context.Context) ([]*entity.ClientProfile, error) {
	clients, err := collect(r.client.CollectionGroup("clients").Documents(ctx), decodeClient)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

func (r *firestoreClientRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.clients(uid).Doc(uid).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete client", err)
	}
	return nil
}

type firestoreMoverRepository struct {
	client *firestore.Client
}

func NewFirestoreMoverRepository(client *firestore.Client) repository.MoverRepository {
	return &firestoreMoverRepository{
		client: client,
	}
}

func (r *firestoreMoverRepository) movers(uid string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(uid).Collection("movers")
}

func decodeMover(doc *firestore.DocumentSnapshot) (*entity.MoverProfile, error) {
	var m entity.MoverProfile
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Internal("Failed to parse mover data", err)
	}
	m.ID = doc.Ref.ID

	// Older records only carry the status string.
	if _, ok := doc.Data()["isAvailable"]; !ok {
		m.IsAvailable = m.Status != entity.AvailabilityUnavailable
	}
	if m.Credentials == nil {
		m.Credentials = []string{}
	}
	return &m, nil
}

func sortMovers(movers []*entity.MoverProfile) {
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].CreatedAt.After(movers[j].CreatedAt)
	})
}

// moverQuery narrows on the server except for pending, since legacy movers
// without a verificationStatus field count as pending too. matchVerification
// finishes the filter after decoding.
func (r *firestoreMoverRepository) moverQuery(filter repository.MoverFilter) firestore.Query {
	q := r.client.CollectionGroup("movers").Query
	if filter.Verification != "" && filter.Verification != entity.VerificationPending {
		q = q.Where("verificationStatus", "==", string(filter.Verification))
	}
	return q
}

func matchVerification(movers []*entity.MoverProfile, filter repository.MoverFilter) []*entity.MoverProfile {
	if filter.Verification == "" {
		return movers
	}
	out := make([]*entity.MoverProfile, 0, len(movers))
	for _, m := range movers {
		if m.Verification() == filter.Verification {
			out = append(out, m)
		}
	}
	return out
}

func (r *firestoreMoverRepository) Create(ctx context.Context, m *entity.MoverProfile) error {
	m.CreatedAt = time.Now()

	_, err := r.movers(m.ID).Doc(m.ID).Set(ctx, m)
	if err != nil {
		return errors.Internal("Failed to create mover profile", err)
	}
	return nil
}

func (r *firestoreMoverRepository) GetByID(ctx context.Context, uid string) (*entity.MoverProfile, error) {
	doc, err := r.movers(uid).Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Mover", err)
		}
		return nil, errors.Internal("Failed to get mover", err)
	}
	return decodeMover(doc)
}

func (r *firestoreMoverRepository) FindByEmail(ctx context.Context, uid, email string) (*entity.MoverProfile, error) {
	iter := r.movers(uid).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query mover", err)
	}
	return decodeMover(doc)
}

func (r *firestoreMoverRepository) List(ctx context.Context, filter repository.MoverFilter) ([]*entity.MoverProfile, error) {
	movers, err := collect(r.moverQuery(filter).Documents(ctx), decodeMover)
	if err != nil {
		return nil, err
	}
	sortMovers(movers)
	return matchVerification(movers, filter), nil
}

func (r *firestoreMoverRepository) Watch(ctx context.Context, filter repository.MoverFilter, fn func([]*entity.MoverProfile)) error {
	return watchQuery(ctx, r.moverQuery(filter), decodeMover, sortMovers, func(movers []*entity.MoverProfile) {
		fn(matchVerification(movers, filter))
	})
}

func (r *firestoreMoverRepository) UpdateProfile(ctx context.Context, m *entity.MoverProfile) error {
	updateData := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if m.CompanyName != "" {
		updateData["companyName"] = m.CompanyName
	}
	if m.Name != "" {
		updateData["name"] = m.Name
	}
	if m.ServiceArea != "" {
		updateData["serviceArea"] = m.ServiceArea
	}
	if m.ContactNumber != "" {
		updateData["contactNumber"] = m.ContactNumber
	}
	if m.PhotoURL != "" {
		updateData["photoURL"] = m.PhotoURL
	}

	_, err := r.movers(m.ID).Doc(m.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update mover profile", err)
	}
	return nil
}

func (r *firestoreMoverRepository) update(ctx context.Context, uid string, updates []firestore.Update) error {
	_, err := r.movers(uid).Doc(uid).Update(ctx, updates)
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Mover", err)
		}
		return errors.Internal("Failed to update mover", err)
	}
	return nil
}

func (r *firestoreMoverRepository) SetAvailability(ctx context.Context, uid string, available bool) error {
	statusValue := entity.AvailabilityAvailable
	if !available {
		statusValue = entity.AvailabilityUnavailable
	}
	return r.update(ctx, uid, []firestore.Update{
		{Path: "isAvailable", Value: available},
		{Path: "status", Value: statusValue},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (r *firestoreMoverRepository) AppendCredentials(ctx context.Context, uid string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	values := make([]interface{}, len(urls))
	for i, u := range urls {
		values[i] = u
	}
	return r.update(ctx, uid, []firestore.Update{
		{Path: "credentials", Value: firestore.ArrayUnion(values...)},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (r *firestoreMoverRepository) SetVerification(ctx context.Context, uid string, status entity.VerificationStatus, by string, at time.Time) error {
	return r.update(ctx, uid, []firestore.Update{
		{Path: "verificationStatus", Value: string(status)},
		{Path: "verifiedAt", Value: at},
		{Path: "verifiedBy", Value: by},
	})
}

func (r *firestoreMoverRepository) SetNotes(ctx context.Context, uid, notes, by string, at time.Time) error {
	return r.update(ctx, uid, []firestore.Update{
		{Path: "adminNotes", Value: notes},
		{Path: "notesUpdatedAt", Value: at},
		{Path: "notesUpdatedBy", Value: by},
	})
}

func (r *firestoreMoverRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.movers(uid).Doc(uid).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete mover", err)
	}
	return nil
}

func (r *firestoreMoverRepository) BackfillDefaults(ctx context.Context, dryRun bool) ([]string, error) {
	iter := r.client.CollectionGroup("movers").Documents(ctx)
	defer iter.Stop()

	var touched []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return touched, errors.Internal("Failed to scan movers", err)
		}

		data := doc.Data()
		updates := map[string]interface{}{}
		if s, _ := data["status"].(string); s == "" {
			updates["status"] = entity.AvailabilityAvailable
		}
		if n, _ := data["name"].(string); n == "" {
			if company, _ := data["companyName"].(string); company != "" {
				updates["name"] = company
			}
		}
		if len(updates) == 0 {
			continue
		}

		touched = append(touched, doc.Ref.ID)
		if dryRun {
			continue
		}
		if _, err := doc.Ref.Set(ctx, updates, firestore.MergeAll); err != nil {
			logger.Error("Backfill failed for mover %s: %v", doc.Ref.Path, err)
			return touched, errors.Internal("Failed to backfill mover", err)
		}
	}

	return touched, nil
}
