package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/util"
)

type LocalBlobStoreDirectory string

func (l LocalBlobStoreDirectory) String() string {
	return string(l)
}

// LocalBlobStore keeps each blob in a file under a root directory. Content types are not recorded.
type LocalBlobStore struct {
	path string
}

func NewLocalBlobStore(path LocalBlobStoreDirectory) *LocalBlobStore {
	return &LocalBlobStore{
		path: string(path),
	}
}

// PutBlob writes all data in the source reader to a blob identified by key.
// The caller is responsible for closing the reader.
func (s *LocalBlobStore) PutBlob(ctx context.Context, key string, contentType string, source io.Reader) error {
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("error blob keys cannot begin with /")
	}
	blobPath := s.makeBlobPath(key)
	err := os.MkdirAll(filepath.Dir(blobPath), 0700)
	if err != nil {
		return errors.Wrap(err, "error making blob directory")
	}
	blobFile, err := os.Create(blobPath)
	if err != nil {
		return errors.Wrapf(err, "error opening blob %s for writing", blobPath)
	}
	defer blobFile.Close()
	_, err = io.Copy(blobFile, source)
	if err != nil {
		return errors.Wrapf(err, "error writing data to blob %s", blobPath)
	}
	err = blobFile.Sync()
	if err != nil {
		return errors.Wrapf(err, "error syncing blob %s", blobPath)
	}
	return nil
}

// GetBlob returns a reader positioned at the beginning of the blob identified by key.
// The caller is responsible for closing the reader.
func (s *LocalBlobStore) GetBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	if strings.HasPrefix(key, "/") {
		return nil, fmt.Errorf("error blob keys cannot begin with /")
	}
	blobPath := s.makeBlobPath(key)
	blobFile, err := os.Open(blobPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerror.NewErrNotFound("Not Found").Wrap(err).IDetail("key", key)
		}
		return nil, errors.Wrapf(err, "error opening blob %s for reading", blobPath)
	}
	return blobFile, nil
}

// DeleteBlob deletes a blob. Returns nil if the blob does not exist.
func (s *LocalBlobStore) DeleteBlob(ctx context.Context, key string) error {
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("error blob keys cannot begin with /")
	}
	blobPath := s.makeBlobPath(key)
	err := os.Remove(blobPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error deleting blob %s: %w", blobPath, err)
	}
	return nil
}

// makeBlobPath makes a path to a blob on the local filesystem.
func (s *LocalBlobStore) makeBlobPath(key string) string {
	return filepath.Join(s.path, util.EscapeFileName(key))
}
