package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

type Resource interface {
	// GetKind returns the unique name/type of the resource e.g. "lost_post" or "member".
	GetKind() ResourceKind
	// GetCreatedAt returns the Time at which this resource was created.
	GetCreatedAt() Time
	// GetID returns the database identity of the resource, or zero if it has not been created yet.
	GetID() ResourceID
	// SetID is called by the store once the database has assigned an identity to a new resource.
	SetID(id ResourceID)
	// Validate the model by checking for required fields, lengths and types etc.
	Validate() error
}

type MutableResource interface {
	Resource
	GetETag() ETag
	SetETag(eTag ETag)
	GetUpdatedAt() Time
	SetUpdatedAt(t Time)
}

// KeysetResource is a resource that can be listed one page at a time using a page token.
type KeysetResource interface {
	Resource
	// GetSortValue returns the value of the column identified by kind for this resource.
	GetSortValue(kind SortKeyKind) Time
}

// ResourceID is the database assigned identity of a resource.
type ResourceID int64

func (s ResourceID) Valid() bool {
	return s > 0
}

func (s ResourceID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s *ResourceID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = 0
	case int64:
		*s = ResourceID(v)
	case []byte:
		return s.Scan(string(v))
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("error parsing resource id: %w", err)
		}
		*s = ResourceID(id)
	default:
		return fmt.Errorf("error unsupported resource id type: %[1]T (%[1]v)", src)
	}
	return nil
}

func (s ResourceID) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s ResourceID) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ResourceID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = 0
		return nil
	}
	return s.Scan(strings.Trim(string(data), `"`))
}

// ParseResourceID parses a decimal resource id, as found in URLs.
func ParseResourceID(str string) (ResourceID, error) {
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing resource id %q: %w", str, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("error resource id must be positive: %d", id)
	}
	return ResourceID(id), nil
}
