// Package server exposes the calculator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/gcalc/internal/cache"
	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Routes
const (
	PathCalculate = "/api/v1/calculate"
	PathExportCSV = "/api/v1/export.csv"
	PathDefaults  = "/api/v1/defaults"
	PathHealth    = "/healthz"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv; charset=utf-8"
	cacheTimeout    = 250 * time.Millisecond

	// MaxRequestBodySize bounds calculate and export bodies; a full parameter set is
	// well under 1 KiB.
	MaxRequestBodySize = 16 << 10
)

// Server answers calculation requests. Identical parameter sets are served from the cache.
type Server struct {
	engine *compare.CompareEngine
	cache  cache.Repository
	logger *zap.Logger
	srv    *fasthttp.Server
}

// New creates a server. A nil repo disables caching and a nil logger discards logs.
func New(engine *compare.CompareEngine, repo cache.Repository, logger *zap.Logger, cfg domain.ServerConfig) (*Server, error) {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}
	if repo == nil {
		repo = cache.NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 {
		return nil, fmt.Errorf("server timeouts cannot be negative (read %s, write %s)", cfg.ReadTimeout, cfg.WriteTimeout)
	}

	s := &Server{engine: engine, cache: repo, logger: logger}
	s.srv = &fasthttp.Server{
		Name:         "gcalc",
		Handler:            s.Handler,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: MaxRequestBodySize,
		Logger:             zap.NewStdLog(logger),
	}
	return s, nil
}

// ListenAndServe serves HTTP on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("server listening", zap.String("op", "server.ListenAndServe"), zap.String("address", addr))
	return s.srv.ListenAndServe(addr)
}

// Serve serves HTTP on an existing listener until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server listening", zap.String("op", "server.Serve"), zap.String("address", ln.Addr().String()))
	return s.srv.Serve(ln)
}

// Shutdown stops accepting connections and waits for open requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down", zap.String("op", "server.Shutdown"))
	return s.srv.ShutdownWithContext(ctx)
}

// Handler routes a request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case PathCalculate:
		if s.requireMethod(ctx, fasthttp.MethodPost) {
			s.handleCalculate(ctx)
		}
	case PathExportCSV:
		if s.requireMethod(ctx, fasthttp.MethodPost) {
			s.handleExportCSV(ctx)
		}
	case PathDefaults:
		if s.requireMethod(ctx, fasthttp.MethodGet) {
			s.writeJSON(ctx, fasthttp.StatusOK, domain.DefaultInputParameters())
		}
	case PathHealth:
		if s.requireMethod(ctx, fasthttp.MethodGet) {
			s.writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok"})
		}
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	s.logger.Debug("request",
		zap.String("op", "server.Handler"),
		zap.ByteString("method", ctx.Method()),
		zap.String("path", path),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *Server) requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set(fasthttp.HeaderAllow, method)
	s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	params, ok := s.decodeParameters(ctx)
	if !ok {
		return
	}

	key, err := cache.Key(params)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Failed to derive cache key")
		return
	}

	if body, found := s.cacheGet(key); found {
		ctx.Response.Header.Set("X-Cache", "HIT")
		ctx.SetContentType(contentTypeJSON)
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBody(body)
		return
	}

	comp, ok := s.compare(ctx, params)
	if !ok {
		return
	}

	body, err := json.Marshal(CalculateResponse{Parameters: params, Result: comp.Result, Comparison: comp})
	if err != nil {
		s.logger.Error("failed to encode response", zap.String("op", "server.handleCalculate"), zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	s.cacheSet(key, body)

	ctx.Response.Header.Set("X-Cache", "MISS")
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func (s *Server) handleExportCSV(ctx *fasthttp.RequestCtx) {
	params, ok := s.decodeParameters(ctx)
	if !ok {
		return
	}
	comp, ok := s.compare(ctx, params)
	if !ok {
		return
	}

	out, err := (&compare.CSVFormatter{}).Format(comp)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Failed to write CSV")
		return
	}

	ctx.Response.Header.Set(fasthttp.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", domain.DefaultResultsFileName))
	ctx.SetContentType(contentTypeCSV)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(out)
}

// decodeParameters overlays the body on the default parameters and clamps the result.
// An empty body means the defaults.
func (s *Server) decodeParameters(ctx *fasthttp.RequestCtx) (domain.InputParameters, bool) {
	params := domain.DefaultInputParameters()
	body := ctx.PostBody()
	if len(body) > MaxRequestBodySize {
		s.writeError(ctx, fasthttp.StatusRequestEntityTooLarge, "Request body too large")
		return params, false
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return params, false
		}
	}
	if err := config.CheckPrecision(params); err != nil {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return params, false
	}
	return config.ClampParameters(params), true
}

func (s *Server) compare(ctx *fasthttp.RequestCtx, params domain.InputParameters) (*compare.Comparison, bool) {
	comp, err := s.engine.CompareParameters("", params)
	if err == nil {
		return comp, true
	}
	if errors.Is(err, calculation.ErrInvalidInput) {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	s.logger.Error("calculation failed", zap.String("op", "server.compare"), zap.Error(err))
	s.writeError(ctx, fasthttp.StatusInternalServerError, "Calculation failed")
	return nil, false
}

func (s *Server) cacheGet(key string) ([]byte, bool) {
	cctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	body, found, err := s.cache.Get(cctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("op", "server.cacheGet"), zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, found
}

func (s *Server) cacheSet(key string, body []byte) {
	cctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := s.cache.Set(cctx, key, body); err != nil {
		s.logger.Warn("cache write failed", zap.String("op", "server.cacheSet"), zap.String("key", key), zap.Error(err))
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.String("op", "server.writeJSON"), zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}
