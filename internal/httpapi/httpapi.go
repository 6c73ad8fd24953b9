// Package httpapi exposes the interval index over HTTP for local, single
// operator use: a thin gin router around one process-wide
// pkg/intervalindex.Index, mirroring the teacher's cmd/zmux-server router
// shape (ZapLogger middleware, _ = c.Error(err) + JSON response pattern,
// sentinel-error wrapping for 404s).
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/edirooss/intervalidx/internal/audit"
	"github.com/edirooss/intervalidx/pkg/intervalindex"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrIntervalNotFound is returned by the DELETE handler when Remove reports
// no matching interval was stored, the same sentinel-error shape as the
// teacher's redis.ErrChannelNotFound.
var ErrIntervalNotFound = errors.New("interval not found")

// Service wraps a single Index behind a mutex: the index itself stays
// unsynchronized (per the core's single-threaded contract), and every
// request serializes through this one lock instead.
type Service struct {
	mu    sync.Mutex
	index *intervalindex.Index[float64]
	trail *audit.Trail
	log   *zap.Logger
}

// NewService builds a Service around index, logging with log and recording
// accepted mutations to trail (which may be a no-op Trail).
func NewService(index *intervalindex.Index[float64], trail *audit.Trail, log *zap.Logger) *Service {
	return &Service{index: index, trail: trail, log: log.Named("http")}
}

// Register mounts every route from §10.2 onto r.
func (s *Service) Register(r gin.IRouter) {
	r.POST("/api/intervals", s.handleInsert)
	r.DELETE("/api/intervals", s.handleRemove)
	r.GET("/api/stab", s.handleStab)
	r.GET("/api/contains", s.handleContains)
	r.GET("/api/size", s.handleSize)
	r.POST("/api/clear", s.handleClear)
	r.GET("/debug/dump", s.handleDump)
}

type intervalRequest struct {
	Inf       float64 `json:"inf"`
	Sup       float64 `json:"sup"`
	InfClosed bool    `json:"inf_closed"`
	SupClosed bool    `json:"sup_closed"`
}

func (s *Service) handleInsert(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	err := s.index.Insert(req.Inf, req.Sup, req.InfClosed, req.SupClosed)
	s.mu.Unlock()

	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	s.trail.Record(c.Request.Context(), audit.Entry{
		Op: "insert", Inf: req.Inf64(), Sup: req.Sup64(),
		InfClosed: req.InfClosed, SupClosed: req.SupClosed, At: s.now(),
	})
	c.JSON(http.StatusCreated, gin.H{"inf": req.Inf, "sup": req.Sup, "inf_closed": req.InfClosed, "sup_closed": req.SupClosed})
}

func (s *Service) handleRemove(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	removed := s.index.Remove(req.Inf, req.Sup, req.InfClosed, req.SupClosed)
	s.mu.Unlock()

	if !removed {
		err := ErrIntervalNotFound
		_ = c.Error(err)
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	s.trail.Record(c.Request.Context(), audit.Entry{
		Op: "remove", Inf: req.Inf64(), Sup: req.Sup64(),
		InfClosed: req.InfClosed, SupClosed: req.SupClosed, At: s.now(),
	})
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (s *Service) handleStab(c *gin.Context) {
	v, err := parseQueryFloat(c, "v")
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	got := s.index.FindIntervalsSlice(v)
	s.mu.Unlock()

	out := make([]intervalRequest, len(got))
	for i, iv := range got {
		out[i] = intervalRequest{Inf: iv.Inf(), Sup: iv.Sup(), InfClosed: iv.InfClosed(), SupClosed: iv.SupClosed()}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Service) handleContains(c *gin.Context) {
	v, err := parseQueryFloat(c, "v")
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	contained := s.index.IsContained(v)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"contained": contained})
}

func (s *Service) handleSize(c *gin.Context) {
	s.mu.Lock()
	n := s.index.Size()
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"size": n})
}

func (s *Service) handleClear(c *gin.Context) {
	s.mu.Lock()
	s.index.Clear()
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

func (s *Service) handleDump(c *gin.Context) {
	s.mu.Lock()
	var ivs []intervalindex.Interval[float64]
	s.index.Iter(func(iv intervalindex.Interval[float64]) { ivs = append(ivs, iv) })
	backend := s.index.Backend()
	s.mu.Unlock()

	c.String(http.StatusOK, "backend: %s\nsize: %d\n%s", backend, len(ivs), spew.Sdump(ivs))
}

// now is a method, not a bare time.Now() call, so a future test can stub it.
func (s *Service) now() time.Time { return time.Now() }

func (r intervalRequest) Inf64() string { return strconv.FormatFloat(r.Inf, 'g', -1, 64) }
func (r intervalRequest) Sup64() string { return strconv.FormatFloat(r.Sup, 'g', -1, 64) }

func parseQueryFloat(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid or missing query parameter " + name)
	}
	return v, nil
}

// RequestID mints (or propagates) an X-Request-Id header and stashes it in
// the gin context, the same spot the teacher reserves for its correlation
// middleware.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// ZapLogger mirrors the teacher's cmd/zmux-server ZapLogger middleware,
// additionally attaching the request ID minted by RequestID.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		var errs []error
		for _, ge := range c.Errors {
			if ge.Err != nil {
				errs = append(errs, ge.Err)
			}
		}
		joinedErr := errors.Join(errs...)

		requestID, _ := c.Get("request_id")
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.Any("request_id", requestID),
		}
		if joinedErr != nil {
			fields = append(fields, zap.Error(joinedErr))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
