package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/identifier"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// Handler implements blog HTTP endpoints. All routes are public.
type Handler struct {
	store     Store
	refFormat identifier.Format
}

// NewHandler constructs a new blog [Handler].
func NewHandler(store Store) *Handler {
	return &Handler{store: store, refFormat: identifier.Hex24}
}

// Routes returns a [chi.Router] configured with blog routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.byID)
	return router
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var post Post
	if err := requestutil.DecodeJSON(request, &post); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", post.Title).MaxLen("title", post.Title, 300)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.store.Insert(request.Context(), &post)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Successfully created blog post")
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.store.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, posts, "Successfully found all blog posts")
}

func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.RefID("id", id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.store.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post, "Successfully found blog post")
}
