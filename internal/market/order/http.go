package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// Handler implements order HTTP endpoints.
type Handler struct {
	store     Store
	refFormat identifier.Format
}

// NewHandler constructs a new order [Handler].
func NewHandler(store Store) *Handler {
	return &Handler{store: store, refFormat: identifier.Hex24}
}

// Routes returns a [chi.Router] configured with order routes.
//
// # Endpoints
//   - POST /               : Authenticated order placement.
//   - GET  /               : Authenticated listing.
//   - GET  /user/{email}   : Owner-only listing by buyer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.place)
		r.Get("/", handler.list)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSelf("email"))
		r.Get("/user/{email}", handler.listByBuyer)
	})

	return router
}

// place records a purchase. The buyer email is taken from the verified
// credential, never from the payload.
func (handler *Handler) place(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var order Order
	if err := requestutil.DecodeJSON(request, &order); err != nil {
		respond.Error(writer, request, err)
		return
	}
	order.BuyerEmail = actor.Email

	validator := &validate.Validator{}
	validator.RefID("product_id", order.ProductID, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.store.Insert(request.Context(), &order)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Successfully placed order")
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	orders, err := handler.store.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, orders, "Successfully found all orders")
}

func (handler *Handler) listByBuyer(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	orders, err := handler.store.ListByBuyer(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, orders, "Successfully found orders")
}
