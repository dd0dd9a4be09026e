package documents

import "github.com/ahachul/ahachul-backend/common/models"

type ResourceDocument interface {
	// GetLink returns a link that can be used to fetch the resource from the server.
	GetLink() string
	// GetID returns the ResourceID of the resource.
	GetID() models.ResourceID
	// GetKind returns the unique name/type of the resource e.g. "lost_post" or "comment".
	GetKind() models.ResourceKind
	// GetCreatedAt returns the Time at which this resource was created.
	GetCreatedAt() models.Time
}

type baseResourceDocument struct {
	URL string `json:"url"`
}

func (d *baseResourceDocument) GetLink() string {
	return d.URL
}
