package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageOverwritesSamePath(t *testing.T) {
	m := NewMemoryStorage()
	ctx := context.Background()

	url1, err := m.UploadFile(ctx, strings.NewReader("v1"), "application/pdf", "movers/u1/credentials/license.pdf")
	require.NoError(t, err)
	url2, err := m.UploadFile(ctx, strings.NewReader("v2"), "application/pdf", "movers/u1/credentials/license.pdf")
	require.NoError(t, err)
	assert.Equal(t, url1, url2)

	data, ok := m.Object("movers/u1/credentials/license.pdf")
	require.True(t, ok)
	assert.Equal(t, "v2", string(data))

	require.NoError(t, m.DeleteFile(ctx, url1))
	_, ok = m.Object("movers/u1/credentials/license.pdf")
	assert.False(t, ok)
}

func TestMemoryStorageFailOn(t *testing.T) {
	m := NewMemoryStorage()
	m.FailOn = "broken"

	_, err := m.UploadFile(context.Background(), strings.NewReader("x"), "", "movers/u1/credentials/broken.pdf")
	assert.Error(t, err)
}

func TestS3PublicURLAndDeleteGuard(t *testing.T) {
	c := &S3Client{bucket: "movers-files", region: "eu-west-1"}

	assert.Equal(t, "https://movers-files.s3.eu-west-1.amazonaws.com/a/b.jpg", c.publicURL("a/b.jpg"))
	assert.Error(t, c.DeleteFile(context.Background(), "https://other.example.com/a/b.jpg"))
}

func TestGCSDeleteGuard(t *testing.T) {
	c := &CloudStorageClient{bucketName: "movers-files"}

	assert.Equal(t, "https://storage.googleapis.com/movers-files/x.jpg", c.publicURL("x.jpg"))
	assert.Error(t, c.DeleteFile(context.Background(), "https://storage.googleapis.com/another-bucket/x.jpg"))
}
