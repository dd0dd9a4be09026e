package services

import (
	"context"
	"io"
	"time"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/store"
)

// BlobStore is an interface for storing and retrieving flat files.
type BlobStore interface {
	// PutBlob writes all data in the source reader to a blob identified by key.
	// The caller is responsible for closing the reader.
	PutBlob(ctx context.Context, key string, contentType string, source io.Reader) error
	// GetBlob returns a reader positioned at the beginning of the blob identified by key.
	// The caller is responsible for closing the reader.
	// Returns gerror.ErrNotFound if the blob does not exist.
	GetBlob(ctx context.Context, key string) (io.ReadCloser, error)
	// DeleteBlob deletes a blob. Returns nil if the blob does not exist.
	DeleteBlob(ctx context.Context, key string) error
}

type CredentialService interface {
	// IssueAccessToken creates a signed access token for the member and returns it along with its lifetime.
	IssueAccessToken(memberID models.MemberID) (string, time.Duration, error)
	// IssueRefreshToken creates a signed refresh token for the member and returns it along with its lifetime.
	IssueRefreshToken(memberID models.MemberID) (string, time.Duration, error)
	// VerifyAccessToken checks the signature and expiry of an access token issued by this service, and returns
	// the member it was issued to along with its expiry time. The member is NOT checked against the database.
	// Returns gerror.ErrExpiredAccessToken if the token has expired, or gerror.ErrInvalidAccessToken if the
	// token is not valid for any other reason.
	VerifyAccessToken(token string) (models.MemberID, time.Time, error)
	// VerifyRefreshToken checks a refresh token the same way VerifyAccessToken checks an access token.
	VerifyRefreshToken(token string) (models.MemberID, time.Time, error)
}

// LogoutService remembers access tokens that have been logged out until they would have expired anyway.
type LogoutService interface {
	// Revoke marks token as logged out. The record may be discarded after expiresAt.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	// IsRevoked returns true if token has been logged out.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// OAuthProvider signs members in with a third party identity provider.
type OAuthProvider interface {
	// Type returns the provider implemented, used to look it up in the registry.
	Type() models.ProviderType
	// AuthCodeURL returns the URL of the provider's login page. The provider redirects back to a page
	// on originHost with an authorization code, or to the configured default page if originHost is empty.
	AuthCodeURL(state string, originHost string) string
	// FetchUser exchanges an authorization code for the identity of the member who signed in.
	// originHost must match the value used to make the login URL.
	// Returns gerror.ErrInvalidOAuthAuthorizationCode if the code is rejected.
	FetchUser(ctx context.Context, code string, originHost string) (*models.OAuthUser, error)
}

type AuthenticationService interface {
	// RedirectURL returns the login page of the specified provider.
	RedirectURL(ctx context.Context, provider models.ProviderType, state string, originHost string) (string, error)
	// Login signs a member in using an authorization code from an OAuth provider. A member is created the first
	// time a provider identity signs in.
	// Returns gerror.ErrMemberSuspended if the member has been suspended.
	Login(ctx context.Context, login *dto.Login) (*dto.LoginResult, error)
	// Logout revokes an access token.
	Logout(ctx context.Context, accessToken string) error
	// Refresh issues a new access token in exchange for a refresh token. The refresh token is rotated too once
	// it is close to expiry.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	// AuthenticateAccessToken returns the member an access token was issued to.
	// Returns gerror.ErrInvalidAccessToken if the token has been revoked.
	AuthenticateAccessToken(ctx context.Context, accessToken string) (*models.Member, error)
}

type MemberService interface {
	// Read an existing member, looking it up by ID.
	// Returns gerror.ErrNotFound if the member does not exist.
	Read(ctx context.Context, txOrNil *store.Tx, id models.MemberID) (*models.Member, error)
	// Update changes the member's profile.
	// Returns gerror.ErrAlreadyExists if the new nickname is used by another member.
	Update(ctx context.Context, id models.MemberID, update *models.MemberUpdate) (*models.Member, error)
	// IsNicknameAvailable returns true if no member other than me uses nickname.
	IsNicknameAvailable(ctx context.Context, me models.MemberID, nickname string) (bool, error)
	// Suspend stops a member from signing in.
	Suspend(ctx context.Context, txOrNil *store.Tx, id models.MemberID) (*models.Member, error)
}

type SubwayService interface {
	// ListLines lists every subway line along with its stations.
	ListLines(ctx context.Context) ([]*models.SubwayLineWithStations, error)
	// ReadLine reads an existing subway line.
	// Returns gerror.ErrInvalidSubwayLine if the line does not exist.
	ReadLine(ctx context.Context, txOrNil *store.Tx, id models.SubwayLineID) (*models.SubwayLine, error)
	// ReadStation reads an existing station.
	// Returns gerror.ErrNotFound if the station does not exist.
	ReadStation(ctx context.Context, txOrNil *store.Tx, id models.StationID) (*models.Station, error)
	// Seed creates the supplied lines and stations, leaving any that already exist alone.
	// Returns the number of lines and stations created.
	Seed(ctx context.Context, lines []*models.SubwayLineWithStations) (int, int, error)
}

type FileService interface {
	// UploadLostPostImages stores each upload in the blob store and attaches it to the post.
	// Returns gerror.ErrUnsupportedFileType if an upload is not an image; nothing is attached in that case.
	UploadLostPostImages(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID, uploads []*dto.FileUpload) ([]*models.Image, error)
	// ListLostPostImages lists the images attached to a post, in the order they were attached.
	ListLostPostImages(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) ([]*models.Image, error)
	// FirstLostPostImageURL returns the URL of the first image attached to a post, or nil if it has none.
	FirstLostPostImageURL(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) (*string, error)
	// DeleteLostPostImages detaches images from a post and deletes their contents once the transaction
	// commits. Images that are not attached to the post are ignored.
	DeleteLostPostImages(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID, imageIDs []models.LostPostFileID) error
	// OpenBlob opens the contents of a stored file.
	OpenBlob(ctx context.Context, key string) (io.ReadCloser, error)
}

type LostPostService interface {
	// Search lists one page of posts matching search.
	Search(ctx context.Context, search *dto.SearchLostPosts) ([]*dto.LostPostSummary, *models.PageToken, error)
	// Read returns a post along with its images and recommended posts.
	// Returns gerror.ErrPostNotFound if the post does not exist or was deleted.
	Read(ctx context.Context, id models.LostPostID) (*dto.LostPostDetail, error)
	// Recommend lists up to size posts similar to post. Posts on the same line in the same category come first,
	// followed by posts on the same line in other categories if there are not enough of those.
	Recommend(ctx context.Context, txOrNil *store.Tx, post *models.LostPost, size int) ([]*models.LostPost, error)
	Create(ctx context.Context, me models.MemberID, create *dto.CreateLostPost) (*models.LostPost, []*models.Image, error)
	// Update changes a post written by me.
	// Returns gerror.ErrForbidden if the post was written by someone else.
	Update(ctx context.Context, me models.MemberID, id models.LostPostID, update *dto.UpdateLostPost) (*models.LostPost, error)
	// UpdateStatus marks a post written by me as in progress or complete.
	// Returns gerror.ErrInvalidArgument for imported posts, which have no writer.
	UpdateStatus(ctx context.Context, me models.MemberID, id models.LostPostID, status models.LostStatus) (*models.LostPost, error)
	// Delete marks a post written by me as deleted.
	Delete(ctx context.Context, me models.MemberID, id models.LostPostID) (*models.LostPost, error)
	// ListCategories lists every lost item category.
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type CommunityPostService interface {
	// Search lists one page of visible posts matching search.
	Search(ctx context.Context, search *models.CommunityPostSearch) ([]*dto.CommunityPostSummary, *models.PageToken, error)
	// SearchHot lists one page of visible posts that have been viewed at least the configured number of times.
	SearchHot(ctx context.Context, subwayLineID *models.SubwayLineID, pagination models.Pagination) ([]*dto.CommunityPostSummary, *models.PageToken, error)
	// Read returns a visible post and counts the view.
	// Returns gerror.ErrPostNotFound if the post does not exist, was deleted or was blocked.
	Read(ctx context.Context, id models.CommunityPostID) (*dto.CommunityPostDetail, error)
	Create(ctx context.Context, me models.MemberID, create *dto.CreateCommunityPost) (*models.CommunityPost, error)
	// Update changes a post written by me.
	// Returns gerror.ErrForbidden if the post was written by someone else.
	Update(ctx context.Context, me models.MemberID, id models.CommunityPostID, update *models.CommunityPostUpdate) (*models.CommunityPost, error)
	// Delete marks a post written by me as deleted.
	Delete(ctx context.Context, me models.MemberID, id models.CommunityPostID) (*models.CommunityPost, error)
	// Block hides a post from readers.
	Block(ctx context.Context, txOrNil *store.Tx, id models.CommunityPostID) error
}

type CommentService interface {
	// List lists the comments on a post, oldest first. Deleted comments are listed with no content.
	List(ctx context.Context, postType models.PostType, postID models.ResourceID) ([]*models.CommentWithWriter, error)
	// Count counts the comments on a post that have not been deleted.
	Count(ctx context.Context, txOrNil *store.Tx, postType models.PostType, postID models.ResourceID) (int, error)
	// Create adds a comment to a post.
	// Returns gerror.ErrPostNotFound if the post does not exist or is not visible.
	Create(ctx context.Context, me models.MemberID, create *dto.CreateComment) (*models.Comment, error)
	// Update changes the content of a comment written by me.
	Update(ctx context.Context, me models.MemberID, id models.CommentID, content string) (*models.Comment, error)
	// Delete marks a comment written by me as deleted.
	Delete(ctx context.Context, me models.MemberID, id models.CommentID) (*models.Comment, error)
}

type ReportService interface {
	// ReportCommunityPost records that me reported a post. Posts reported by enough members are blocked.
	// Returns gerror.ErrInvalidReportRequest when reporting your own post, and
	// gerror.ErrDuplicateReportRequest when reporting the same post twice.
	ReportCommunityPost(ctx context.Context, me models.MemberID, postID models.CommunityPostID) (*models.Report, error)
	// ActionOnMember suspends a member whose posts have been reported enough times.
	// Returns gerror.ErrInvalidConditionToBlockMember if there are not enough reports, and
	// gerror.ErrInvalidReportAction if the member is already suspended.
	ActionOnMember(ctx context.Context, targetMemberID models.MemberID) (*models.Member, error)
}

type ComplaintService interface {
	Send(ctx context.Context, me models.MemberID, send *dto.SendComplaint) (*models.ComplaintMessage, error)
	// ListMine lists one page of the complaints sent by me, newest first.
	ListMine(ctx context.Context, me models.MemberID, pagination models.Pagination) ([]*models.ComplaintMessage, *models.PageToken, error)
}

type TrainService interface {
	// GetCongestion reports how full each car of a train approaching a station is.
	// Returns gerror.ErrInvalidSubwayLine if congestion is not available for the station's line.
	GetCongestion(ctx context.Context, stationID models.StationID, trainNo string) (*models.TrainCongestion, error)
}

type Lost112Service interface {
	// Import fetches the latest found items and creates a post for each one not seen before.
	// Returns the number of posts created.
	Import(ctx context.Context) (int, error)
}
