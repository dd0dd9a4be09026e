package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/store"
)

// lostPostKeyPrefix is the blob key prefix under which lost post images are stored.
const lostPostKeyPrefix = "lost-posts"

// headerSize is the number of bytes filetype needs to recognise any type it supports.
const headerSize = 261

// PublicURLPrefix is prepended to blob keys to make the URL a file is downloaded from.
type PublicURLPrefix string

func (p PublicURLPrefix) String() string {
	return string(p)
}

type FileService struct {
	db                *store.DB
	fileStore         store.FileStore
	lostPostFileStore store.LostPostFileStore
	blobStore         services.BlobStore
	publicURLPrefix   PublicURLPrefix
	clk               clock.Clock
	logger.Log
}

func NewFileService(
	db *store.DB,
	fileStore store.FileStore,
	lostPostFileStore store.LostPostFileStore,
	blobStore services.BlobStore,
	publicURLPrefix PublicURLPrefix,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *FileService {
	return &FileService{
		db:                db,
		fileStore:         fileStore,
		lostPostFileStore: lostPostFileStore,
		blobStore:         blobStore,
		publicURLPrefix:   publicURLPrefix,
		clk:               clk,
		Log:               logFactory("FileService"),
	}
}

type sniffedUpload struct {
	upload *dto.FileUpload
	kind   types.Type
	body   io.Reader
}

func (s *FileService) UploadLostPostImages(
	ctx context.Context,
	txOrNil *store.Tx,
	postID models.LostPostID,
	uploads []*dto.FileUpload,
) ([]*models.Image, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	// Check every upload is an image before storing any of them
	sniffed := make([]*sniffedUpload, 0, len(uploads))
	for _, upload := range uploads {
		kind, body, err := sniffFileType(upload.Reader)
		if err != nil {
			return nil, err
		}
		if kind.MIME.Type != "image" {
			mime := kind.MIME.Value
			if mime == "" {
				mime = "unknown"
			}
			return nil, gerror.NewErrUnsupportedFileType(mime).EDetail("file_name", upload.FileName)
		}
		sniffed = append(sniffed, &sniffedUpload{upload: upload, kind: kind, body: body})
	}

	var images []*models.Image
	err := s.db.WithTx(ctx, txOrNil, func(tx *store.Tx) error {
		images = nil
		for _, upload := range sniffed {
			key := path.Join(lostPostKeyPrefix, fmt.Sprintf("%s.%s", uuid.NewString(), upload.kind.Extension))
			err := s.blobStore.PutBlob(ctx, key, upload.kind.MIME.Value, upload.body)
			if err != nil {
				return errors.Wrapf(err, "error storing image %q", upload.upload.FileName)
			}
			tx.OnRollback(func() { s.deleteBlob(ctx, key) })

			now := models.NewTime(s.clk.Now())
			file := models.NewFile(now, upload.upload.FileName, key, s.makePublicURL(key))
			err = s.fileStore.Create(ctx, tx, file)
			if err != nil {
				return errors.Wrap(err, "error creating file")
			}
			attachment := models.NewLostPostFile(now, postID, file.ID)
			err = s.lostPostFileStore.Create(ctx, tx, attachment)
			if err != nil {
				return errors.Wrap(err, "error attaching file to lost post")
			}
			images = append(images, &models.Image{ImageID: attachment.ID, ImageURL: file.FilePath})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *FileService) ListLostPostImages(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) ([]*models.Image, error) {
	attachments, err := s.lostPostFileStore.ListImages(ctx, txOrNil, postID)
	if err != nil {
		return nil, errors.Wrap(err, "error listing lost post images")
	}
	images := make([]*models.Image, 0, len(attachments))
	for _, attachment := range attachments {
		images = append(images, &models.Image{ImageID: attachment.ID, ImageURL: attachment.File.FilePath})
	}
	return images, nil
}

func (s *FileService) FirstLostPostImageURL(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) (*string, error) {
	attachment, err := s.lostPostFileStore.ReadFirstImage(ctx, txOrNil, postID)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment.File.FilePath, nil
}

func (s *FileService) DeleteLostPostImages(
	ctx context.Context,
	txOrNil *store.Tx,
	postID models.LostPostID,
	imageIDs []models.LostPostFileID,
) error {
	return s.db.WithTx(ctx, txOrNil, func(tx *store.Tx) error {
		for _, imageID := range imageIDs {
			attachment, err := s.lostPostFileStore.Read(ctx, tx, imageID)
			if err != nil {
				if gerror.IsNotFound(err) {
					continue
				}
				return err
			}
			if attachment.LostPostID != postID {
				continue
			}
			file, err := s.fileStore.Read(ctx, tx, attachment.FileID)
			if err != nil {
				return errors.Wrap(err, "error reading attached file")
			}
			err = s.lostPostFileStore.Delete(ctx, tx, attachment.ID)
			if err != nil {
				return errors.Wrap(err, "error detaching file")
			}
			err = s.fileStore.Delete(ctx, tx, file.ID)
			if err != nil {
				return errors.Wrap(err, "error deleting file")
			}
			// The rows come back if the transaction rolls back, so the blob must outlive it
			key := file.BlobKey
			tx.OnCommit(func() { s.deleteBlob(ctx, key) })
		}
		return nil
	})
}

func (s *FileService) OpenBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	if !strings.HasPrefix(key, lostPostKeyPrefix+"/") || strings.Contains(key, "..") {
		return nil, gerror.NewErrNotFound("Not Found").IDetail("key", key)
	}
	return s.blobStore.GetBlob(ctx, key)
}

func (s *FileService) deleteBlob(ctx context.Context, key string) {
	err := s.blobStore.DeleteBlob(ctx, key)
	if err != nil {
		s.Warnf("Unable to delete blob %s: %v", key, err)
	}
}

func (s *FileService) makePublicURL(key string) string {
	return strings.TrimSuffix(s.publicURLPrefix.String(), "/") + "/" + key
}

// sniffFileType reads enough of r to determine its type, and returns a reader that yields
// the whole of r including the bytes already read.
func sniffFileType(r io.Reader) (types.Type, io.Reader, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return types.Type{}, nil, errors.Wrap(err, "error reading file header")
	}
	header = header[:n]
	kind, err := filetype.Match(header)
	if err == filetype.ErrEmptyBuffer {
		return types.Unknown, bytes.NewReader(nil), nil
	}
	if err != nil {
		return types.Type{}, nil, errors.Wrap(err, "error determining file type")
	}
	return kind, io.MultiReader(bytes.NewReader(header), r), nil
}
