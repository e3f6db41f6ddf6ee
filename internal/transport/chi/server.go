package chi

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/color"
	"github.com/wardrobe-assistant/wardrobe/internal/version"
	cataloguc "github.com/wardrobe-assistant/wardrobe/internal/usecase/catalog"
	healthuc "github.com/wardrobe-assistant/wardrobe/internal/usecase/health"
	recommenduc "github.com/wardrobe-assistant/wardrobe/internal/usecase/recommend"
)

const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the recommendation API.
type Server struct {
	recommend     *recommenduc.Service
	catalog       *cataloguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	s := &Server{
		recommend: recommend,
		catalog:   catalog,
		health:    health,
		logger:    logger,
		validate:  v,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// Routes mounts the API on r. apiMiddlewares wrap the /api/v1 group only.
func (s *Server) Routes(r gochi.Router, apiMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Use(apiMiddlewares...)
		r.Get("/recommendations", s.RecommendQuery)
		r.Post("/recommendations", s.Recommend)
		r.Get("/options", s.Options)
		r.Get("/colors/classify", s.ClassifyColor)
	})
}

// Recommend handles POST /api/v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.serveRecommend(w, r, &req)
}

// RecommendQuery handles GET /api/v1/recommendations with the query fields as parameters.
func (s *Server) RecommendQuery(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	params := r.URL.Query()
	for name, dst := range req.fields() {
		if !params.Has(string(name)) {
			continue
		}
		if err := runtime.BindQueryParameter("form", true, true, string(name), params, dst); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid query parameter "+string(name))
			return
		}
	}
	s.serveRecommend(w, r, &req)
}

func (s *Server) serveRecommend(w http.ResponseWriter, r *http.Request, req *RecommendRequest) {
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, validationMessage(err))
		return
	}

	out := s.recommend.Recommend(r.Context(), req.toQuery())
	if errors.Is(out.Err, domain.ErrIndexUnavailable) {
		s.handleDomainError(w, out.Err)
		return
	}

	items := make([]ResultItem, len(out.Items))
	for i := range out.Items {
		items[i] = resultItemToDTO(&out.Items[i])
	}
	writeJSON(w, http.StatusOK, RecommendResponse{
		Items:      items,
		Count:      len(items),
		Neighbors:  s.recommend.Neighbors(),
		Diagnostic: out.Diagnostic(),
	})
}

// Options handles GET /api/v1/options.
func (s *Server) Options(w http.ResponseWriter, _ *http.Request) {
	opts, err := s.catalog.Options()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	fields := make(map[string][]string, len(opts))
	for name, values := range opts {
		fields[string(name)] = values
	}
	families := color.Families()
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.String()
	}

	writeJSON(w, http.StatusOK, OptionsResponse{Fields: fields, ColorFamilies: names})
}

// ClassifyColor handles GET /api/v1/colors/classify?color=.
// A missing color parameter classifies as Unknown.
func (s *Server) ClassifyColor(w http.ResponseWriter, r *http.Request) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "color", r.URL.Query(), &raw); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid query parameter color")
		return
	}
	writeJSON(w, http.StatusOK, ColorResponse{Color: raw, Family: color.ClassifyOptional(raw).String()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RateLimit limits API requests per client IP. perMinute <= 0 disables it.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, "rate limit exceeded")
		}),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexUnavailable,
		domain.ErrInvalidQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// validationMessage lists the offending request fields by their JSON names.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "validation failed"
	}
	var missing, invalid []string
	for _, fe := range ve {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
