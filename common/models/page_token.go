package models

import (
	"encoding/base64"
	"encoding/json"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

// SortKeyKind selects the column that drives the order of a paginated listing.
// Its value is the column name suffix, e.g. "created_at" resolves to "lost_post_created_at".
type SortKeyKind string

const (
	SortKeyCreatedAt    SortKeyKind = "created_at"
	SortKeyReceivedDate SortKeyKind = "received_date"
)

func (k SortKeyKind) String() string {
	return string(k)
}

// PageToken marks the position of the last item on a page. The next page contains only items
// strictly after (SortValue, ID) in (sort DESC, id DESC) order.
type PageToken struct {
	SortValue Time       `json:"s"`
	ID        ResourceID `json:"i"`
}

func NewPageToken(resource KeysetResource, kind SortKeyKind) *PageToken {
	return &PageToken{
		SortValue: resource.GetSortValue(kind),
		ID:        resource.GetID(),
	}
}

// Encode returns the opaque string form of the token, suitable for use in a URL.
func (t *PageToken) Encode() string {
	if t == nil {
		return ""
	}
	buf, err := json.Marshal(t)
	if err != nil {
		// Time and int64 always marshal
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodePageToken parses a token previously returned by Encode. An empty string decodes to nil, meaning
// the first page. The token is not checked against the database.
func DecodePageToken(str string) (*PageToken, error) {
	if str == "" {
		return nil, nil
	}
	buf, err := base64.RawURLEncoding.DecodeString(str)
	if err != nil {
		return nil, gerror.NewErrInvalidQueryParameter("Malformed page token").Wrap(err)
	}
	token := &PageToken{}
	err = json.Unmarshal(buf, token)
	if err != nil {
		return nil, gerror.NewErrInvalidQueryParameter("Malformed page token").Wrap(err)
	}
	return token, nil
}
