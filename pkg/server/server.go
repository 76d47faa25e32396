// Package server exposes the flow model and the stream processor over HTTP,
// so slicers and print farms can post-process gcode without a local install.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/3dptools/flowcomp/pkg/flow"
)

// Server serves one immutable flow model. The model is safe to share across
// requests; each processing request gets its own run state.
type Server struct {
	model       *flow.Model
	samples     int
	diagnostics bool
}

// New returns a Server around the given model. samples controls the spline
// sampling density of the curve endpoint; diagnostics controls whether
// rewritten lines carry the trailing diagnostic comment.
func New(model *flow.Model, samples int, diagnostics bool) *Server {
	return &Server{model: model, samples: samples, diagnostics: diagnostics}
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.POST("/process", s.postProcess)
	router.GET("/curve", s.getCurve)
	router.GET("/version", s.getVersion)

	return router
}

// Run serves HTTP on addr until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(addr string) error {
	router := s.setupRoutes()

	srv := &http.Server{
		Handler: router,
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http server exited: %v", err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
