package documents

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

// ErrorDocument is a standard error representation returned by the API
type ErrorDocument struct {
	Code           gerror.Code                      `json:"code"`
	HTTPStatusCode int                              `json:"http_status_code"`
	Message        string                           `json:"message"`
	Details        map[gerror.DetailKey]interface{} `json:"details"`
}

// NewErrorDocument sanitizes err for public display. Errors that are not meant for an external audience
// are replaced with a generic internal error.
func NewErrorDocument(err error) *ErrorDocument {
	cause := errors.Cause(err)
	if cause == sql.ErrNoRows {
		err = gerror.NewErrNotFound("Resource not found")
	}
	if pqErr, ok := cause.(*pq.Error); ok && pqErr.Code == "23505" {
		err = gerror.NewErrAlreadyExists("Resource already exists").Wrap(err)
	}
	if sqliteErr, ok := cause.(sqlite3.Error); ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		err = gerror.NewErrAlreadyExists("Resource already exists").Wrap(err)
	}

	// Find the first gerror.Error in the chain, including errors wrapped with fmt.Errorf()
	var gErr gerror.Error
	if !errors.As(err, &gErr) || gErr.Audience() != gerror.AudienceExternal {
		gErr = gerror.NewErrInternal()
	}
	doc := &ErrorDocument{
		Code:           gErr.Code(),
		HTTPStatusCode: gErr.HTTPStatusCode(),
		Message:        gErr.Message(),
		Details:        make(map[gerror.DetailKey]interface{}),
	}
	for _, detail := range gErr.Details() {
		if detail.Audience() == gerror.AudienceExternal {
			doc.Details[detail.Key()] = detail.Value()
		}
	}
	return doc
}
