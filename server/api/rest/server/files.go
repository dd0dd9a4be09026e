package server

import (
	"bufio"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/h2non/filetype"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/services"
)

// sniffLen is enough of the start of a file for filetype to recognise it.
const sniffLen = 261

type FileAPI struct {
	fileService services.FileService
	*APIBase
}

func NewFileAPI(fileService services.FileService, logFactory logger.LogFactory) *FileAPI {
	return &FileAPI{
		fileService: fileService,
		APIBase:     NewAPIBase(logFactory("FileAPI")),
	}
}

// GetData streams the contents of a stored file. The blob key is the remainder of the url path.
func (a *FileAPI) GetData(w http.ResponseWriter, r *http.Request) {
	key := path.Clean(strings.TrimPrefix(chi.URLParam(r, "*"), "/"))
	if key == "." || key == "" || strings.HasPrefix(key, "..") {
		a.Error(w, r, gerror.NewErrNotFound("Not Found"))
		return
	}
	reader, err := a.fileService.OpenBlob(r.Context(), key)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	defer reader.Close()

	buffered := bufio.NewReaderSize(reader, sniffLen)
	head, _ := buffered.Peek(sniffLen)
	contentType := "application/octet-stream"
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, err = io.Copy(w, buffered)
	if err != nil {
		a.Warnf("Error streaming file %s: %v", key, err)
	}
}
