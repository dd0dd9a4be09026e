package store

import (
	"context"

	"github.com/ahachul/ahachul-backend/common/models"
)

type MemberStore interface {
	// Create a new member.
	// Returns store.ErrAlreadyExists if a member with the same provider identity already exists.
	Create(ctx context.Context, txOrNil *Tx, member *models.Member) error
	// Read an existing member, looking it up by ID.
	// Returns gerror.ErrNotFound if the member does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.MemberID) (*models.Member, error)
	// ReadByProviderUser reads the member that signed up with the specified OAuth provider identity.
	// Returns gerror.ErrNotFound if the member does not exist.
	ReadByProviderUser(ctx context.Context, txOrNil *Tx, provider models.ProviderType, providerUserID string) (*models.Member, error)
	// FindOrCreate creates a member if no member with the same provider identity already exists,
	// otherwise it reads and returns the existing member.
	// Returns the member as it is in the database, and true iff a new member was created.
	FindOrCreate(ctx context.Context, txOrNil *Tx, memberData *models.Member) (member *models.Member, created bool, err error)
	// Update an existing member with optimistic locking. Overrides all previous values using the supplied model.
	// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
	Update(ctx context.Context, txOrNil *Tx, member *models.Member) error
	// NicknameTaken returns true if a member other than excludeOrNil uses the nickname.
	NicknameTaken(ctx context.Context, txOrNil *Tx, nickname string, excludeOrNil *models.MemberID) (bool, error)
}

type SubwayLineStore interface {
	Create(ctx context.Context, txOrNil *Tx, line *models.SubwayLine) error
	// Read an existing subway line, looking it up by ID.
	// Returns gerror.ErrNotFound if the line does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.SubwayLineID) (*models.SubwayLine, error)
	// ReadByName reads an existing subway line, looking it up by its name e.g. "2호선".
	// Returns gerror.ErrNotFound if the line does not exist.
	ReadByName(ctx context.Context, txOrNil *Tx, name string) (*models.SubwayLine, error)
	// FindOrCreate creates the line if no line with the same name exists, otherwise returns the existing line.
	FindOrCreate(ctx context.Context, txOrNil *Tx, lineData *models.SubwayLine) (line *models.SubwayLine, created bool, err error)
	// ListAll lists every subway line ordered by id.
	ListAll(ctx context.Context, txOrNil *Tx) ([]*models.SubwayLine, error)
}

type StationStore interface {
	Create(ctx context.Context, txOrNil *Tx, station *models.Station) error
	// Read an existing station, looking it up by ID.
	// Returns gerror.ErrNotFound if the station does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.StationID) (*models.Station, error)
	// FindOrCreate creates the station if the line has no station with the same name, otherwise returns the
	// existing station.
	FindOrCreate(ctx context.Context, txOrNil *Tx, stationData *models.Station) (station *models.Station, created bool, err error)
	// ListAll lists every station ordered by id.
	ListAll(ctx context.Context, txOrNil *Tx) ([]*models.Station, error)
}

type CategoryStore interface {
	// Read an existing category, looking it up by ID.
	// Returns gerror.ErrNotFound if the category does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.CategoryID) (*models.Category, error)
	// ReadByName reads an existing category, looking it up by its name.
	// Returns gerror.ErrNotFound if the category does not exist.
	ReadByName(ctx context.Context, txOrNil *Tx, name string) (*models.Category, error)
	// FindOrCreate creates the category if no category with the same name exists, otherwise returns the
	// existing category.
	FindOrCreate(ctx context.Context, txOrNil *Tx, categoryData *models.Category) (category *models.Category, created bool, err error)
	// ListAll lists every category ordered by id.
	ListAll(ctx context.Context, txOrNil *Tx) ([]*models.Category, error)
}

type LostPostStore interface {
	// Create a new lost post.
	Create(ctx context.Context, txOrNil *Tx, post *models.LostPost) error
	// CreateMany creates all posts with a single statement. The ids of the new posts are not set.
	CreateMany(ctx context.Context, txOrNil *Tx, posts []*models.LostPost) error
	// Read an existing lost post, looking it up by ID. Deleted posts are returned.
	// Returns gerror.ErrNotFound if the post does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.LostPostID) (*models.LostPost, error)
	// Update an existing lost post with optimistic locking. Overrides all previous values using the supplied model.
	// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
	Update(ctx context.Context, txOrNil *Tx, post *models.LostPost) error
	// Search lists one page of the posts that are not deleted and match search, newest first according to
	// the sort key of search.LostType. Returns the token for the next page, or nil if there is none.
	Search(ctx context.Context, txOrNil *Tx, search *models.LostPostSearch) ([]*models.LostPost, *models.PageToken, error)
	// ListRandom lists up to limit randomly ordered posts other than excludeID that are not deleted and are on
	// the specified subway line. If sameCategory is true only posts in categoryID are listed, otherwise only posts
	// in a different category.
	ListRandom(ctx context.Context, txOrNil *Tx, excludeID models.LostPostID, subwayLineID models.SubwayLineID, categoryID models.CategoryID, sameCategory bool, limit int) ([]*models.LostPost, error)
	// ListExistingPageURLs returns the subset of pageURLs that already belong to a post.
	ListExistingPageURLs(ctx context.Context, txOrNil *Tx, pageURLs []string) ([]string, error)
}

type FileStore interface {
	Create(ctx context.Context, txOrNil *Tx, file *models.File) error
	// Read an existing file, looking it up by ID.
	// Returns gerror.ErrNotFound if the file does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.FileID) (*models.File, error)
	// Delete permanently and idempotently deletes a file record. The contents are not touched.
	Delete(ctx context.Context, txOrNil *Tx, id models.FileID) error
}

type LostPostFileStore interface {
	Create(ctx context.Context, txOrNil *Tx, lostPostFile *models.LostPostFile) error
	// Read an existing attachment, looking it up by ID.
	// Returns gerror.ErrNotFound if the attachment does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.LostPostFileID) (*models.LostPostFile, error)
	// ListImages lists the attachments of a post along with their files, in the order they were attached.
	ListImages(ctx context.Context, txOrNil *Tx, postID models.LostPostID) ([]*models.LostPostImage, error)
	// ReadFirstImage reads the first attachment of a post.
	// Returns gerror.ErrNotFound if the post has no attachments.
	ReadFirstImage(ctx context.Context, txOrNil *Tx, postID models.LostPostID) (*models.LostPostImage, error)
	// Delete permanently and idempotently deletes an attachment.
	Delete(ctx context.Context, txOrNil *Tx, id models.LostPostFileID) error
}

type CommunityPostStore interface {
	Create(ctx context.Context, txOrNil *Tx, post *models.CommunityPost) error
	// Read an existing community post, looking it up by ID. Deleted and blocked posts are returned.
	// Returns gerror.ErrNotFound if the post does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.CommunityPostID) (*models.CommunityPost, error)
	// Update an existing community post with optimistic locking.
	// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
	Update(ctx context.Context, txOrNil *Tx, post *models.CommunityPost) error
	// IncrementViews adds one to the view count of a post without changing its etag.
	IncrementViews(ctx context.Context, txOrNil *Tx, id models.CommunityPostID) error
	// Search lists one page of visible posts matching search, newest first.
	// Returns the token for the next page, or nil if there is none.
	Search(ctx context.Context, txOrNil *Tx, search *models.CommunityPostSearch) ([]*models.CommunityPostSearchResult, *models.PageToken, error)
}

type CommentStore interface {
	Create(ctx context.Context, txOrNil *Tx, comment *models.Comment) error
	// Read an existing comment, looking it up by ID.
	// Returns gerror.ErrNotFound if the comment does not exist.
	Read(ctx context.Context, txOrNil *Tx, id models.CommentID) (*models.Comment, error)
	// Update an existing comment with optimistic locking.
	// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
	Update(ctx context.Context, txOrNil *Tx, comment *models.Comment) error
	// ListByPost lists every comment on a post along with its writer, oldest first. Deleted comments are included.
	ListByPost(ctx context.Context, txOrNil *Tx, postType models.PostType, postID models.ResourceID) ([]*models.CommentWithWriter, error)
	// CountByPost counts the comments on a post that have not been deleted.
	CountByPost(ctx context.Context, txOrNil *Tx, postType models.PostType, postID models.ResourceID) (int, error)
}

type ReportStore interface {
	// Create a new report.
	// Returns gerror.ErrAlreadyExists if the member has already reported the post.
	Create(ctx context.Context, txOrNil *Tx, report *models.Report) error
	// Exists returns true if the source member has already reported the post.
	Exists(ctx context.Context, txOrNil *Tx, source models.MemberID, postID models.CommunityPostID) (bool, error)
	// CountByPost counts the reports made against a post.
	CountByPost(ctx context.Context, txOrNil *Tx, postID models.CommunityPostID) (int, error)
	// CountByTargetMember counts the reports made against posts written by a member.
	CountByTargetMember(ctx context.Context, txOrNil *Tx, target models.MemberID) (int, error)
}

type ComplaintMessageStore interface {
	Create(ctx context.Context, txOrNil *Tx, message *models.ComplaintMessage) error
	// ListByMember lists one page of the messages sent by a member, newest first.
	// Returns the token for the next page, or nil if there is none.
	ListByMember(ctx context.Context, txOrNil *Tx, memberID models.MemberID, pagination models.Pagination) ([]*models.ComplaintMessage, *models.PageToken, error)
}
