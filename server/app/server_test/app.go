package server_test

import (
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/store"
)

type TestServer struct {
	DB                      *store.DB
	MemberStore             store.MemberStore
	SubwayLineStore         store.SubwayLineStore
	StationStore            store.StationStore
	CategoryStore           store.CategoryStore
	LostPostStore           store.LostPostStore
	CommunityPostStore      store.CommunityPostStore
	CommentStore            store.CommentStore
	ReportStore             store.ReportStore
	ComplaintMessageStore   store.ComplaintMessageStore
	CredentialService       services.CredentialService
	AuthenticationService   services.AuthenticationService
	MemberService           services.MemberService
	SubwayService           services.SubwayService
	FileService             services.FileService
	LostPostService         services.LostPostService
	CommunityPostService    services.CommunityPostService
	CommentService          services.CommentService
	ReportService           services.ReportService
	ComplaintService        services.ComplaintService
	TrainService            services.TrainService
	Lost112Service          services.Lost112Service
	FakeItemSource          *FakeItemSource
	FakeCarPercentageSource *FakeCarPercentageSource
	LogFactory              logger.LogFactory

	AppAPIServer *server.AppAPIServer
}

func NewTestServer(
	db *store.DB,
	memberStore store.MemberStore,
	subwayLineStore store.SubwayLineStore,
	stationStore store.StationStore,
	categoryStore store.CategoryStore,
	lostPostStore store.LostPostStore,
	communityPostStore store.CommunityPostStore,
	commentStore store.CommentStore,
	reportStore store.ReportStore,
	complaintMessageStore store.ComplaintMessageStore,
	credentialService services.CredentialService,
	authenticationService services.AuthenticationService,
	memberService services.MemberService,
	subwayService services.SubwayService,
	fileService services.FileService,
	lostPostService services.LostPostService,
	communityPostService services.CommunityPostService,
	commentService services.CommentService,
	reportService services.ReportService,
	complaintService services.ComplaintService,
	trainService services.TrainService,
	lost112Service services.Lost112Service,
	fakeItemSource *FakeItemSource,
	fakeCarPercentageSource *FakeCarPercentageSource,
	logFactory logger.LogFactory,
	appAPIServer *server.AppAPIServer,
) *TestServer {
	return &TestServer{
		DB:                      db,
		MemberStore:             memberStore,
		SubwayLineStore:         subwayLineStore,
		StationStore:            stationStore,
		CategoryStore:           categoryStore,
		LostPostStore:           lostPostStore,
		CommunityPostStore:      communityPostStore,
		CommentStore:            commentStore,
		ReportStore:             reportStore,
		ComplaintMessageStore:   complaintMessageStore,
		CredentialService:       credentialService,
		AuthenticationService:   authenticationService,
		MemberService:           memberService,
		SubwayService:           subwayService,
		FileService:             fileService,
		LostPostService:         lostPostService,
		CommunityPostService:    communityPostService,
		CommentService:          commentService,
		ReportService:           reportService,
		ComplaintService:        complaintService,
		TrainService:            trainService,
		Lost112Service:          lost112Service,
		FakeItemSource:          fakeItemSource,
		FakeCarPercentageSource: fakeCarPercentageSource,
		LogFactory:              logFactory,
		AppAPIServer:            appAPIServer,
	}
}
