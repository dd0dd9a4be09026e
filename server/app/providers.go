package app

import (
	"github.com/google/wire"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/services/authentication"
	"github.com/ahachul/ahachul-backend/server/services/comment"
	"github.com/ahachul/ahachul-backend/server/services/community"
	"github.com/ahachul/ahachul-backend/server/services/complaint"
	"github.com/ahachul/ahachul-backend/server/services/credential"
	"github.com/ahachul/ahachul-backend/server/services/file"
	"github.com/ahachul/ahachul-backend/server/services/lost"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/services/member"
	"github.com/ahachul/ahachul-backend/server/services/report"
	"github.com/ahachul/ahachul-backend/server/services/subway"
	"github.com/ahachul/ahachul-backend/server/services/train"
	"github.com/ahachul/ahachul-backend/server/store"
	"github.com/ahachul/ahachul-backend/server/store/categories"
	"github.com/ahachul/ahachul-backend/server/store/comments"
	"github.com/ahachul/ahachul-backend/server/store/community_posts"
	"github.com/ahachul/ahachul-backend/server/store/complaint_messages"
	"github.com/ahachul/ahachul-backend/server/store/files"
	"github.com/ahachul/ahachul-backend/server/store/lost_post_files"
	"github.com/ahachul/ahachul-backend/server/store/lost_posts"
	"github.com/ahachul/ahachul-backend/server/store/members"
	"github.com/ahachul/ahachul-backend/server/store/reports"
	"github.com/ahachul/ahachul-backend/server/store/stations"
	"github.com/ahachul/ahachul-backend/server/store/subway_lines"
)

// MakeHTTPClient creates the client used to call OAuth providers, Lost112 and the congestion API.
func MakeHTTPClient(config httpclient.Config, logFactory logger.LogFactory) *httpclient.Client {
	return httpclient.NewClient(config, logFactory("HTTPClient"))
}

// StoreSet provides every store, bound to its interface.
var StoreSet = wire.NewSet(
	members.NewStore,
	wire.Bind(new(store.MemberStore), new(*members.MemberStore)),
	subway_lines.NewStore,
	wire.Bind(new(store.SubwayLineStore), new(*subway_lines.SubwayLineStore)),
	stations.NewStore,
	wire.Bind(new(store.StationStore), new(*stations.StationStore)),
	categories.NewStore,
	wire.Bind(new(store.CategoryStore), new(*categories.CategoryStore)),
	lost_posts.NewStore,
	wire.Bind(new(store.LostPostStore), new(*lost_posts.LostPostStore)),
	files.NewStore,
	wire.Bind(new(store.FileStore), new(*files.FileStore)),
	lost_post_files.NewStore,
	wire.Bind(new(store.LostPostFileStore), new(*lost_post_files.LostPostFileStore)),
	community_posts.NewStore,
	wire.Bind(new(store.CommunityPostStore), new(*community_posts.CommunityPostStore)),
	comments.NewStore,
	wire.Bind(new(store.CommentStore), new(*comments.CommentStore)),
	reports.NewStore,
	wire.Bind(new(store.ReportStore), new(*reports.ReportStore)),
	complaint_messages.NewStore,
	wire.Bind(new(store.ComplaintMessageStore), new(*complaint_messages.ComplaintMessageStore)),
)

// ServiceSet provides the domain services. OAuth providers, the logout service and the blob store
// are left to the injector since they differ between the server and tests.
var ServiceSet = wire.NewSet(
	member.NewMemberService,
	wire.Bind(new(services.MemberService), new(*member.MemberService)),
	subway.NewSubwayService,
	wire.Bind(new(services.SubwayService), new(*subway.SubwayService)),
	file.NewFileService,
	wire.Bind(new(services.FileService), new(*file.FileService)),
	lost.NewLostPostService,
	wire.Bind(new(services.LostPostService), new(*lost.LostPostService)),
	community.NewCommunityPostService,
	wire.Bind(new(services.CommunityPostService), new(*community.CommunityPostService)),
	comment.NewCommentService,
	wire.Bind(new(services.CommentService), new(*comment.CommentService)),
	report.NewReportService,
	wire.Bind(new(services.ReportService), new(*report.ReportService)),
	complaint.NewComplaintService,
	wire.Bind(new(services.ComplaintService), new(*complaint.ComplaintService)),
	credential.NewCredentialService,
	wire.Bind(new(services.CredentialService), new(*credential.CredentialService)),
	authentication.NewAuthenticationService,
	wire.Bind(new(services.AuthenticationService), new(*authentication.AuthenticationService)),
	train.NewTrainService,
	wire.Bind(new(services.TrainService), new(*train.TrainService)),
	lost112.NewLost112Service,
	wire.Bind(new(services.Lost112Service), new(*lost112.Lost112Service)),
)

// APISet provides the REST handlers and the router that serves them.
var APISet = wire.NewSet(
	server.NewRootAPI,
	server.NewAuthenticationAPI,
	server.NewMemberAPI,
	server.NewSubwayAPI,
	server.NewLostPostAPI,
	server.NewFileAPI,
	server.NewCommunityPostAPI,
	server.NewCommentAPI,
	server.NewReportAPI,
	server.NewComplaintAPI,
	server.NewAppAPIRouter,
	server.NewAppAPIServer,
)
