package server

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ahachul/ahachul-backend/common/logger"
	ahmiddleware "github.com/ahachul/ahachul-backend/server/api/rest/middleware"
	"github.com/ahachul/ahachul-backend/server/services"
)

// CORSAllowedOrigins lists the web origins allowed to call the API from a browser.
type CORSAllowedOrigins []string

type AppAPIServerConfig struct {
	HTTPServerConfig
}

type AppAPIServer struct {
	APIServer
}

func NewAppAPIServer(appAPI *AppAPIRouter, config AppAPIServerConfig, httpServerFactory HTTPServerFactory, logFactory logger.LogFactory) (*AppAPIServer, error) {
	httpServer, err := httpServerFactory(appAPI, config.HTTPServerConfig, logFactory("AppAPIServer"))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP server: %w", err)
	}
	return &AppAPIServer{
		APIServer: httpServer,
	}, nil
}

type AppAPIRouter struct {
	chi.Router
}

func NewAppAPIRouter(
	root *RootAPI,
	authentication *AuthenticationAPI,
	member *MemberAPI,
	subway *SubwayAPI,
	lostPost *LostPostAPI,
	file *FileAPI,
	communityPost *CommunityPostAPI,
	comment *CommentAPI,
	report *ReportAPI,
	complaint *ComplaintAPI,
	authenticationService services.AuthenticationService,
	admins ahmiddleware.AdminMemberIDs,
	allowedOrigins CORSAllowedOrigins,
	logFactory logger.LogFactory,
) *AppAPIRouter {

	logger := logFactory("AppAPIRouter")

	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true})
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Compress(6))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Id", "Location", "ETag"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/v1", func(r chi.Router) {
		// Every route accepts an access token; routes in the group below require one
		r.Use(ahmiddleware.MakeJWTAuthenticator(logger, authenticationService))

		// Public routes that can be accessed without auth
		r.Group(func(r chi.Router) {
			r.Get("/", root.GetRootDocument)
			r.Get("/auth/redirect-url", authentication.GetRedirectURL)
			r.Post("/auth/login", authentication.Login)
			r.Post("/auth/token/refresh", authentication.RefreshToken)
			r.Get("/subway-lines", subway.ListLines)
			r.Get("/trains/congestions", subway.GetTrainCongestion)
			r.Get("/lost-posts", lostPost.Search)
			r.Get("/lost-posts/{post_id}", lostPost.Get)
			r.Get("/lost-categories", lostPost.ListCategories)
			r.Get("/files/*", file.GetData)
			r.Get("/community-posts", communityPost.Search)
			r.Get("/community-hot-posts", communityPost.SearchHot)
			r.Get("/community-posts/{post_id}", communityPost.Get)
			r.Get("/comments", comment.List)
		})

		// Routes that act as the authenticated member
		r.Group(func(r chi.Router) {
			r.Use(ahmiddleware.MakeMustAuthenticate(logger))

			r.Post("/auth/logout", authentication.Logout)
			r.Get("/members", member.GetCurrent)
			r.Patch("/members", member.PatchCurrent)
			r.Post("/members/check-nickname", member.CheckNickname)
			// Routes below share paths with the public group, so they must not be mounted as sub-routers
			r.Post("/lost-posts", lostPost.Create)
			r.Patch("/lost-posts/{post_id}", lostPost.Patch)
			r.Delete("/lost-posts/{post_id}", lostPost.Delete)
			r.Patch("/lost-posts/{post_id}/status", lostPost.PatchStatus)
			r.Post("/community-posts", communityPost.Create)
			r.Post("/community-posts/{post_id}", communityPost.Patch)
			r.Patch("/community-posts/{post_id}", communityPost.Patch)
			r.Delete("/community-posts/{post_id}", communityPost.Delete)
			r.Post("/comments", comment.Create)
			r.Patch("/comments/{comment_id}", comment.Patch)
			r.Delete("/comments/{comment_id}", comment.Delete)
			r.Post("/reports/community-posts/{post_id}", report.ReportCommunityPost)
			r.Get("/complaints/messages", complaint.ListMine)
			r.Post("/complaints/messages", complaint.Send)

			r.Group(func(r chi.Router) {
				r.Use(ahmiddleware.MakeMustBeAdmin(logger, admins))
				r.Post("/admin/reports/action", report.ActionOnMember)
			})
		})
	})
	return &AppAPIRouter{Router: r}
}
