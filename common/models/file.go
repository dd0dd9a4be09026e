package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type FileMetadata struct {
	ID        FileID `json:"id" goqu:"skipinsert,skipupdate" db:"file_id"`
	CreatedAt Time   `json:"created_at" goqu:"skipupdate" db:"file_created_at"`
}

// File is an uploaded file held in the blob store.
type File struct {
	FileMetadata
	FileName string `json:"file_name" db:"file_file_name"`
	// BlobKey identifies the file's contents in the blob store.
	BlobKey string `json:"-" db:"file_blob_key"`
	// FilePath is the URL the file can be downloaded from.
	FilePath string `json:"file_path" db:"file_file_path"`
}

func NewFile(now Time, fileName string, blobKey string, filePath string) *File {
	return &File{
		FileMetadata: FileMetadata{CreatedAt: now},
		FileName:     fileName,
		BlobKey:      blobKey,
		FilePath:     filePath,
	}
}

func (m *File) GetKind() ResourceKind {
	return FileResourceKind
}

func (m *File) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *File) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *File) SetID(id ResourceID) {
	m.ID = FileIDFromResourceID(id)
}

func (m *File) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if m.BlobKey == "" {
		result = multierror.Append(result, errors.New("error blob key must be set"))
	}
	if m.FilePath == "" {
		result = multierror.Append(result, errors.New("error file path must be set"))
	}
	return result.ErrorOrNil()
}

type LostPostFileMetadata struct {
	ID        LostPostFileID `json:"id" goqu:"skipinsert,skipupdate" db:"lost_post_file_id"`
	CreatedAt Time           `json:"created_at" goqu:"skipupdate" db:"lost_post_file_created_at"`
}

// LostPostFile attaches a file to a lost post.
type LostPostFile struct {
	LostPostFileMetadata
	LostPostID LostPostID `json:"lost_post_id" db:"lost_post_file_lost_post_id"`
	FileID     FileID     `json:"file_id" db:"lost_post_file_file_id"`
}

func NewLostPostFile(now Time, lostPostID LostPostID, fileID FileID) *LostPostFile {
	return &LostPostFile{
		LostPostFileMetadata: LostPostFileMetadata{CreatedAt: now},
		LostPostID:           lostPostID,
		FileID:               fileID,
	}
}

func (m *LostPostFile) GetKind() ResourceKind {
	return LostPostFileResourceKind
}

func (m *LostPostFile) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *LostPostFile) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *LostPostFile) SetID(id ResourceID) {
	m.ID = LostPostFileIDFromResourceID(id)
}

func (m *LostPostFile) Validate() error {
	var result *multierror.Error
	if !m.LostPostID.Valid() {
		result = multierror.Append(result, errors.New("error lost post id must be set"))
	}
	if !m.FileID.Valid() {
		result = multierror.Append(result, errors.New("error file id must be set"))
	}
	return result.ErrorOrNil()
}

// Image is a file attached to a post, as shown to readers.
type Image struct {
	ImageID  LostPostFileID `json:"image_id"`
	ImageURL string         `json:"image_url"`
}

// LostPostImage joins a post attachment with the file it points at.
type LostPostImage struct {
	*LostPostFile
	File *File `db:"files"`
}
