package documents

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
)

const (
	pageSizeParam  = "page_size"
	pageTokenParam = "page_token"
)

// PageRequest is the pagination part of a listing request, read from the query string.
type PageRequest struct {
	models.Pagination
}

// FromQuery reads page_size and page_token. A missing page size defaults to models.DefaultPageSize.
func (d *PageRequest) FromQuery(values url.Values) error {
	d.PageSize = models.DefaultPageSize
	if sizeStr := values.Get(pageSizeParam); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return gerror.NewErrInvalidQueryParameter("error decoding page size").Wrap(err)
		}
		if size > models.MaxPageSize {
			size = models.MaxPageSize
		}
		d.PageSize = size
	}
	token, err := models.DecodePageToken(values.Get(pageTokenParam))
	if err != nil {
		return err
	}
	d.PageToken = token
	return d.Pagination.Validate()
}

func (d *PageRequest) GetQuery() url.Values {
	values := make(url.Values)
	values.Set(pageSizeParam, strconv.Itoa(d.PageSize))
	if d.PageToken != nil {
		values.Set(pageTokenParam, d.PageToken.Encode())
	}
	return values
}

func (d *PageRequest) Bind(r *http.Request) error {
	return d.FromQuery(r.URL.Query())
}

// PageResponse is one page of a keyset paginated listing.
type PageResponse struct {
	// Results is the items on this page.
	Results interface{} `json:"results"`
	// HasNext is true if there is another page after this one.
	HasNext bool `json:"has_next"`
	// NextPageToken is passed as page_token to fetch the next page. Empty if there is no next page.
	NextPageToken string `json:"next_page_token"`
	// NextURL fetches the next page with the same filters. Empty if there is no next page.
	NextURL string `json:"next_url,omitempty"`
}

// NewPageResponse makes a page response. If link is set it is used to build the url of the next page,
// keeping its query string apart from the page token.
func NewPageResponse(link string, results interface{}, next *models.PageToken) *PageResponse {
	res := &PageResponse{Results: results}
	if next == nil {
		return res
	}
	res.HasNext = true
	res.NextPageToken = next.Encode()
	if link != "" {
		u, err := url.Parse(link)
		if err == nil {
			query := u.Query()
			query.Set(pageTokenParam, res.NextPageToken)
			u.RawQuery = query.Encode()
			res.NextURL = u.String()
		}
	}
	return res
}
