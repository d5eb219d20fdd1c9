package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// Handler implements subscription HTTP endpoints.
type Handler struct {
	store     Store
	directory middleware.RoleDirectory
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(store Store, directory middleware.RoleDirectory) *Handler {
	return &Handler{store: store, directory: directory}
}

// Routes returns a [chi.Router] configured with subscription routes.
//
// # Endpoints
//   - PUT /{email}  : Public subscribe (idempotent upsert).
//   - GET /         : Admin listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Put("/{email}", handler.subscribe)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.directory))
		r.Get("/", handler.list)
	})

	return router
}

// subscribe adds or refreshes a mailing-list membership. Subscribing twice
// converges on the same record.
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	validator := &validate.Validator{}
	validator.Required("email", email).Email("email", email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var subscription Subscription
	if err := requestutil.DecodeJSON(request, &subscription); err != nil {
		respond.Error(writer, request, err)
		return
	}
	subscription.Email = email

	result, err := handler.store.UpsertByEmail(request.Context(), &subscription)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Successfully subscribed")
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	subscriptions, err := handler.store.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, subscriptions, "Successfully found all subscriptions")
}
