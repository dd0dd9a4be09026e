package app

import (
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
)

type Server struct {
	SubwayService  services.SubwayService
	Lost112Service services.Lost112Service
	AppAPIServer   *server.AppAPIServer
	ImportTimer    *lost112.ImportTimer
}

func NewServer(
	subwayService services.SubwayService,
	lost112Service services.Lost112Service,
	appAPIServer *server.AppAPIServer,
	importTimer *lost112.ImportTimer,
) *Server {
	return &Server{
		SubwayService:  subwayService,
		Lost112Service: lost112Service,
		AppAPIServer:   appAPIServer,
		ImportTimer:    importTimer,
	}
}
