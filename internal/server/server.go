// Package server exposes dashboard snapshots and charts over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/fleetkpi/internal/chart"
	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/logging"
	"github.com/rshade/fleetkpi/pkg/version"
)

// Timeouts of the HTTP server.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxChartDimension = 4096
)

// TraceHeader carries the request trace ID.
const TraceHeader = "X-Trace-ID"

// Dashboard is the part of *dashboard.Dashboard the server needs.
type Dashboard interface {
	Options(ctx context.Context) (dashboard.Options, error)
	DefaultFilters(ctx context.Context) (dashboard.Filters, error)
	Build(ctx context.Context, f dashboard.Filters) (*dashboard.Snapshot, error)
}

// Server is the HTTP dashboard API.
type Server struct {
	dash      Dashboard
	addr      string
	chartSize chart.Size
	router    *gin.Engine
}

// New builds the router. A blank mode leaves the gin default in place.
func New(d Dashboard, cfg config.ServerConfig, out config.OutputConfig) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	s := &Server{
		dash:      d,
		addr:      cfg.Addr,
		chartSize: chart.Size{Width: out.ChartWidth, Height: out.ChartHeight},
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery(), requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.GET("/options", s.handleOptions)
	v1.GET("/filters/default", s.handleDefaultFilters)
	v1.GET("/snapshot", s.handleSnapshot)
	v1.GET("/charts", s.handleChartList)
	v1.GET("/charts/:name", s.handleChart)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logging.ComponentLogger(logging.Default(), "server")
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Ctx(ctx).Str("addr", s.addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	log.Info().Ctx(ctx).Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger attaches a trace ID and logger to every request context and
// logs the outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		base := logging.Default()
		logger := logging.ComponentLogger(base, "server")
		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = logger.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)

		c.Next()

		event := logger.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Ctx(ctx).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.GetVersion()})
}

func (s *Server) handleOptions(c *gin.Context) {
	opts, err := s.dash.Options(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handleDefaultFilters(c *gin.Context) {
	f, err := s.dash.DefaultFilters(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// snapshot builds a snapshot from the default filters overridden by the
// request query.
func (s *Server) snapshot(c *gin.Context) (*dashboard.Snapshot, bool) {
	ctx := c.Request.Context()
	f, err := s.dash.DefaultFilters(ctx)
	if err != nil {
		abort(c, err)
		return nil, false
	}
	if err = f.ApplyQuery(c.Request.URL.Query()); err != nil {
		abort(c, err)
		return nil, false
	}
	snap, err := s.dash.Build(ctx, f)
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return snap, true
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleChartList(c *gin.Context) {
	names := dashboard.FigureNames()
	urls := make([]string, len(names))
	for i, n := range names {
		urls[i] = "/api/v1/charts/" + n + ".png"
	}
	c.JSON(http.StatusOK, gin.H{"charts": urls})
}

func (s *Server) handleChart(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("name"), ".png")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "charts are served as <name>.png"})
		return
	}
	size, err := s.requestSize(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	fig, ok := snap.Figure(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart " + strconv.Quote(name)})
		return
	}

	var buf bytes.Buffer
	if err = chart.Render(&buf, fig, size); err != nil {
		abort(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

var errChartSize = errors.New("width and height must be integers between 1 and 4096")

func (s *Server) requestSize(c *gin.Context) (chart.Size, error) {
	size := s.chartSize
	for key, dst := range map[string]*int{"width": &size.Width, "height": &size.Height} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxChartDimension {
			return chart.Size{}, errChartSize
		}
		*dst = n
	}
	return size, nil
}

// abort maps err to a status code and writes it as JSON.
func abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, dashboard.ErrInvalidFilter) {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
