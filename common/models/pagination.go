package models

import (
	"github.com/ahachul/ahachul-backend/common/gerror"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Pagination struct {
	// PageSize is the maximum number of results to return.
	PageSize int `json:"page_size"`
	// PageToken is the position after which results start, or nil for the first page.
	PageToken *PageToken `json:"page_token"`
}

func NewPagination(pageSize int, pageToken *PageToken) Pagination {
	return Pagination{
		PageSize:  pageSize,
		PageToken: pageToken,
	}
}

func (p Pagination) Validate() error {
	if p.PageSize <= 0 {
		return gerror.NewErrInvalidArgument("Page size must be greater than zero").EDetail("page_size", p.PageSize)
	}
	return nil
}
