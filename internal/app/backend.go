package app

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"moverconnect/internal/adapter/repository"
	"moverconnect/internal/adapter/repository/memory"
	domainrepo "moverconnect/internal/domain/repository"
	"moverconnect/internal/domain/policy"
	"moverconnect/internal/domain/service"
	"moverconnect/internal/infrastructure/firebase"
	"moverconnect/internal/infrastructure/storage"
	"moverconnect/pkg/config"
	"moverconnect/pkg/logger"
)

// Backend holds the store, identity provider and blob storage picked by
// the configuration.
type Backend struct {
	Clients  domainrepo.ClientRepository
	Movers   domainrepo.MoverRepository
	Requests domainrepo.RequestRepository
	Bookings domainrepo.BookingRepository
	Quotes   domainrepo.QuoteRepository
	Messages domainrepo.MessageRepository
	Reviews  domainrepo.ReviewRepository

	Identity service.IdentityProvider
	Files    service.FileStorage
	Policy   *policy.AccessPolicy

	closers []func() error
}

// Open connects to Firestore, Firebase Auth and the blob store, or to
// in-process fakes when DEV_MODE is set.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	accessPolicy, err := loadPolicy(cfg.Access)
	if err != nil {
		return nil, err
	}

	if cfg.Server.DevMode {
		logger.Warn("DEV_MODE enabled: using in-memory store and dev identity provider")
		return openDev(accessPolicy), nil
	}

	opts := credentialOptions(cfg.Firebase)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
	}

	identity, err := firebase.NewFirebaseAuthClient(ctx, authClient, cfg.Firebase.APIKey, cfg.Firebase.AuthEmulatorHost)
	if err != nil {
		return nil, err
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	b := &Backend{
		Clients:  repository.NewFirestoreClientRepository(firestoreClient),
		Movers:   repository.NewFirestoreMoverRepository(firestoreClient),
		Requests: repository.NewFirestoreRequestRepository(firestoreClient),
		Bookings: repository.NewFirestoreBookingRepository(firestoreClient),
		Quotes:   repository.NewFirestoreQuoteRepository(firestoreClient),
		Messages: repository.NewFirestoreMessageRepository(firestoreClient),
		Reviews:  repository.NewFirestoreReviewRepository(firestoreClient),
		Identity: identity,
		Policy:   accessPolicy,
		closers:  []func() error{firestoreClient.Close},
	}

	files, err := openStorage(ctx, cfg.Storage, opts)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.Files = files
	b.closers = append(b.closers, files.Close)

	return b, nil
}

func openDev(accessPolicy *policy.AccessPolicy) *Backend {
	store := memory.NewStore()
	identity := firebase.NewDevIdentityProvider()
	identity.AutoVerify = true

	return &Backend{
		Clients:  memory.NewClientRepository(store),
		Movers:   memory.NewMoverRepository(store),
		Requests: memory.NewRequestRepository(store),
		Bookings: memory.NewBookingRepository(store),
		Quotes:   memory.NewQuoteRepository(store),
		Messages: memory.NewMessageRepository(store),
		Reviews:  memory.NewReviewRepository(store),
		Identity: identity,
		Files:    storage.NewMemoryStorage(),
		Policy:   accessPolicy,
	}
}

func credentialOptions(cfg config.FirebaseConfig) []option.ClientOption {
	switch {
	case cfg.UseEmulator():
		logger.Info("Using Firebase emulators (firestore=%s auth=%s)", cfg.FirestoreEmulatorHost, cfg.AuthEmulatorHost)
		return []option.ClientOption{option.WithoutAuthentication()}
	case cfg.CredentialsJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))}
	case cfg.CredentialsPath != "":
		logger.Info("Using Firebase service account from file: %s", cfg.CredentialsPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}
	}
	logger.Info("Using application default credentials")
	return nil
}

func openStorage(ctx context.Context, cfg config.StorageConfig, opts []option.ClientOption) (service.FileStorage, error) {
	switch cfg.Backend {
	case "s3":
		client, err := storage.NewS3Client(ctx, cfg.Bucket, cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return client, nil
	default:
		client, err := storage.NewCloudStorageClient(ctx, cfg.Bucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cloud Storage: %w", err)
		}
		return client, nil
	}
}

func loadPolicy(cfg config.AccessConfig) (*policy.AccessPolicy, error) {
	if cfg.PolicyFile != "" {
		p, err := policy.LoadFromPath(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded access policy from %s (%d admins)", cfg.PolicyFile, len(p.AdminEmails()))
		return p, nil
	}
	return policy.New(cfg.AdminEmails), nil
}

// Close releases every client opened by Open.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("Failed to close backend client: %v", err)
		}
	}
	b.closers = nil
}
