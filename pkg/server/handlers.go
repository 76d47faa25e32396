package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/3dptools/flowcomp/pkg/gcode"
	"github.com/3dptools/flowcomp/pkg/version"
)

// postProcess runs one full rewrite over the request body and returns the
// processed stream. A body that was already processed is a conflict, not a
// server failure.
func (s *Server) postProcess(c *gin.Context) {
	proc := gcode.NewProcessor(s.model)
	proc.DiagnosticComments = s.diagnostics

	var buf bytes.Buffer
	if err := proc.Run(c.Request.Body, &buf); err != nil {
		if errors.Is(err, gcode.ErrAlreadyProcessed) {
			c.IndentedJSON(http.StatusConflict, err.Error())
			return
		}
		logrus.Errorf("processing request failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Server) getCurve(c *gin.Context) {
	samples := s.samples
	if q := c.Query("samples"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 2 {
			c.IndentedJSON(http.StatusBadRequest, "samples must be an integer >= 2")
			return
		}
		samples = n
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"maxLength": s.model.MaxLength(),
		"points":    s.model.Describe(),
		"spline":    s.model.Sample(samples),
	})
}

func (s *Server) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"version":   version.Version,
		"gitCommit": version.GitCommit,
	})
}
