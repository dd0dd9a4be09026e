package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/services"
)

func TestLocalStore(t *testing.T) {
	t.Run("PutGetDelete/Local", testPutGetDelete(NewLocalBlobStore(LocalBlobStoreDirectory(t.TempDir()))))

	t.Run("AbsoluteKey/Local", func(t *testing.T) {
		store := NewLocalBlobStore(LocalBlobStoreDirectory(t.TempDir()))
		err := store.PutBlob(context.Background(), "/etc/passwd", "text/plain", strings.NewReader("x"))
		require.Error(t, err)
	})
}

func TestS3BlobStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping S3 blob store integration test")
	}
	bucket := getenvOrSkip(t, "AHACHUL_TEST_S3_BUCKET")

	logRegistry, err := logger.NewLogRegistry("")
	require.NoError(t, err)
	logFactory := logger.MakeLogrusLogFactoryStdOut(logRegistry)
	s3, err := NewS3BlobStore(S3BlobStoreConfig{
		BucketName: bucket,
		Region:     "ap-northeast-2",
	}, logFactory)
	require.NoError(t, err)
	t.Run("PutGetDelete/S3", testPutGetDelete(s3))
}

func testPutGetDelete(store services.BlobStore) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		skipIfAWSCredentialsNotFound(t, ctx, store)

		key := makeTestKey("lost-posts/image.png")
		data := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
		err := store.PutBlob(ctx, key, "image/png", bytes.NewReader(data))
		require.NoError(t, err)

		rc, err := store.GetBlob(ctx, key)
		require.NoError(t, err)
		readBack, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, data, readBack)

		err = store.DeleteBlob(ctx, key)
		require.NoError(t, err)

		_, err = store.GetBlob(ctx, key)
		require.Error(t, err)
		assert.True(t, gerror.IsNotFound(err))

		// Deleting again is not an error
		err = store.DeleteBlob(ctx, key)
		require.NoError(t, err)
	}
}

var (
	keyPrefix string
	once      sync.Once
)

func makeTestKey(key string) string {
	once.Do(func() {
		timestamp := strconv.FormatInt(time.Now().UTC().Unix(), 10)
		keyPrefix = fmt.Sprintf("%s-%s/", timestamp, uuid.NewString()[:8])
	})
	return fmt.Sprintf("%s%s", keyPrefix, key)
}

func skipIfAWSCredentialsNotFound(t *testing.T, ctx context.Context, store services.BlobStore) {
	pingKey := makeTestKey("ping")
	err := store.PutBlob(ctx, pingKey, "", bytes.NewBuffer([]byte{1}))
	if err != nil && (strings.Contains(err.Error(), "EnvAccessKeyNotFound") ||
		strings.Contains(err.Error(), "SharedCredsLoad") ||
		strings.Contains(err.Error(), "NoCredentialProviders") ||
		strings.Contains(err.Error(), "InvalidAccessKeyId")) {
		t.Skip("Skipping S3 test as no AWS credentials found")
	}
	require.NoError(t, err)
	err = store.DeleteBlob(ctx, pingKey)
	require.NoError(t, err)
}

func getenvOrSkip(t *testing.T, name string) string {
	value := os.Getenv(name)
	if value == "" {
		t.Skipf("Skipping as %s is not set", name)
	}
	return value
}
