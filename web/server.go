package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type GinServer struct {
	Engine *gin.Engine
	Addr   string

	srv *http.Server
}

func NewGinServer(engine *gin.Engine, addr string) *GinServer {
	return &GinServer{
		Engine: engine,
		Addr:   addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start 阻塞直到服务关闭
func (s *GinServer) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *GinServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
