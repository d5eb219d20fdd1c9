package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// Handler implements report HTTP endpoints.
type Handler struct {
	store     Store
	directory middleware.RoleDirectory
	refFormat identifier.Format
}

// NewHandler constructs a new report [Handler].
func NewHandler(store Store, directory middleware.RoleDirectory) *Handler {
	return &Handler{store: store, directory: directory, refFormat: identifier.Hex24}
}

// Routes returns a [chi.Router] configured with report routes.
//
// # Endpoints
//   - PUT /{email}  : Owner-only report upsert keyed by reporter email.
//   - GET /         : Admin listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSelf("email"))
		r.Put("/{email}", handler.file)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.directory))
		r.Get("/", handler.list)
	})

	return router
}

// file upserts the caller's report. Re-filing replaces the previous one
// rather than stacking duplicates.
func (handler *Handler) file(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	var report Report
	if err := requestutil.DecodeJSON(request, &report); err != nil {
		respond.Error(writer, request, err)
		return
	}
	report.ReporterEmail = email

	if report.ProductID != "" {
		validator := &validate.Validator{}
		validator.RefID("product_id", report.ProductID, handler.refFormat)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	result, err := handler.store.UpsertByReporter(request.Context(), &report)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Successfully filed report")
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	reports, err := handler.store.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reports, "Successfully found all reports")
}
