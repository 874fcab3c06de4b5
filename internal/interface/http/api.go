package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"example.com/shopfront/internal/apperr"
	domuser "example.com/shopfront/internal/domain/user"
	authuc "example.com/shopfront/internal/usecase/auth"
	categoryuc "example.com/shopfront/internal/usecase/category"
	productuc "example.com/shopfront/internal/usecase/product"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	authSvc     *authuc.Service
	categorySvc *categoryuc.Service
	productSvc  *productuc.Service
	health      Pinger
	validator   *validator.Validate
	log         *zap.Logger
}

type Dependencies struct {
	AuthService     *authuc.Service
	CategoryService *categoryuc.Service
	ProductService  *productuc.Service
	Health          Pinger
	Logger          *zap.Logger
}

func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		authSvc:     deps.AuthService,
		categorySvc: deps.CategoryService,
		productSvc:  deps.ProductService,
		health:      deps.Health,
		validator:   newValidator(),
		log:         log.With(zap.String("component", "http")),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(a.recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", a.handleRegister)
			ar.Post("/login", a.handleLogin)
			ar.With(a.authMiddleware).Get("/profile", a.handleProfile)
		})

		r.Route("/categories", func(cr chi.Router) {
			cr.Get("/", a.handleListCategories)
			cr.Get("/{id}", a.handleGetCategory)
			cr.Get("/{id}/subcategories/{name}", a.handleHasSubcategory)

			cr.Group(func(mr chi.Router) {
				mr.Use(a.authMiddleware)
				mr.Use(a.requireRoles(domuser.RoleMerchant))
				mr.Post("/", a.handleCreateCategory)
				mr.Put("/{id}", a.handleUpdateCategory)
				mr.Delete("/{id}", a.handleDeleteCategory)
			})
		})

		r.Route("/products", func(pr chi.Router) {
			pr.Get("/", a.handleListProducts)
			pr.Get("/price-range", a.handlePriceRange)

			pr.Group(func(mr chi.Router) {
				mr.Use(a.authMiddleware)
				mr.Use(a.requireRoles(domuser.RoleMerchant))
				mr.Get("/merchant", a.handleListMerchantProducts)
				mr.Get("/merchant/my-products", a.handleListMerchantProducts)
				mr.Get("/merchant/stats", a.handleMerchantStats)
				mr.Post("/", a.handleAddProduct)
				mr.Put("/{id}", a.handleEditProduct)
				mr.Delete("/{id}", a.handleDeleteProduct)
			})

			pr.Get("/{id}", a.handleGetProduct)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		if err := a.health.Ping(r.Context()); err != nil {
			a.log.Warn("Health check failed", zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, apperr.InfraMessage, nil)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}

var errInvalidBody = errors.New("invalid request body")

// trimmer is implemented by requests whose text fields are trimmed before
// their length rules run.
type trimmer interface {
	trim()
}

// decodeAndValidate decodes a JSON body into dst and runs the struct tags.
// It returns errInvalidBody or validator.ValidationErrors.
func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	if t, ok := dst.(trimmer); ok {
		t.trim()
	}
	return a.validator.Struct(dst)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// respondBadRequest answers a failed decodeAndValidate.
func respondBadRequest(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors(verrs))
		return
	}
	respondError(w, http.StatusBadRequest, "Invalid request body", nil)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, msg string, details map[string]string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleDomainError renders err by kind. Causes of infrastructure and
// internal failures are logged, never sent.
func (a *API) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInfrastructure || kind == apperr.KindInternal {
		a.log.Error("Request failed",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}
	respondError(w, statusFor(kind), apperr.Message(err), nil)
}
