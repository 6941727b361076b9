// Package rest exposes the product catalog over HTTP/JSON.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	producterrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/service"
	"github.com/abgdnv/productcatalog/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	basePath    = "/api/v1/products"
	searchParam = "search"
	maxBodySize = 1 << 20
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a Handler. Validation errors are reported by JSON field name.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	return &Handler{
		service:  service,
		validate: validate,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes mounts the product routes and /healthz on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(basePath, func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.FindByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.DeleteByID)
	})
	r.Get("/healthz", h.HealthCheck)
}

// FindAll lists the catalog in insertion order. With ?search= it lists only the products
// whose description equals the parameter, which may be empty.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	var (
		list []service.ProductDto
		err  error
	)
	if query := r.URL.Query(); query.Has(searchParam) {
		list, err = h.service.Search(r.Context(), query.Get(searchParam))
	} else {
		list, err = h.service.FindAll(r.Context())
	}
	if err != nil {
		h.failInternal(w, r, err, "list products")
		return
	}
	h.logger.DebugContext(r.Context(), "Listed products", "count", len(list), "search", r.URL.Query().Get(searchParam))
	web.RespondJSON(w, r, http.StatusOK, list)
}

func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.failByID(w, r, err, "find", id)
		return
	}
	web.RespondJSON(w, r, http.StatusOK, product)
}

// Create stores the body as-is. The id is caller supplied and may repeat an existing one.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		h.failInternal(w, r, err, "create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created", "id", created.ID)
	web.RespondJSON(w, r, http.StatusCreated, created)
}

// Update replaces name and description of the product addressed by the path.
// The path id wins over any id in the body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = id

	updated, err := h.service.Update(r.Context(), product)
	if err != nil {
		h.failByID(w, r, err, "update", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated", "id", id)
	web.RespondJSON(w, r, http.StatusOK, updated)
}

// DeleteByID removes the product and responds with what was removed.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		h.failByID(w, r, err, "delete", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted", "id", id)
	web.RespondJSON(w, r, http.StatusOK, deleted)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := web.PathInt(r, "id")
	if err != nil {
		web.RespondError(w, r, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// decodeProduct reads and validates a ProductDto. On failure the 400 response is already written.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (service.ProductDto, bool) {
	var product service.ProductDto
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&product); err != nil {
		h.logger.WarnContext(r.Context(), "Rejected product body", "error", err)
		web.RespondError(w, r, http.StatusBadRequest, "invalid request body")
		return product, false
	}

	err := h.validate.Struct(product)
	var fieldErrs validator.ValidationErrors
	switch {
	case err == nil:
		return product, true
	case errors.As(err, &fieldErrs):
		failed := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			failed[fe.Field()] = fe.Tag() + "=" + fe.Param()
		}
		h.logger.WarnContext(r.Context(), "Product failed validation", "fields", failed)
		web.RespondJSON(w, r, http.StatusBadRequest, web.ValidationErrorResponse{ValidationErrors: failed})
	default:
		h.logger.ErrorContext(r.Context(), "Product validation errored", "error", err)
		web.RespondError(w, r, http.StatusBadRequest, "invalid request body")
	}
	return product, false
}

// failByID answers 404 for a missing product and 500 for anything else.
func (h *Handler) failByID(w http.ResponseWriter, r *http.Request, err error, action string, id int) {
	if errors.Is(err, producterrors.ErrProductNotFound) {
		h.logger.DebugContext(r.Context(), "Product not found", "action", action, "id", id)
		web.RespondError(w, r, http.StatusNotFound, fmt.Sprintf("product %d not found", id))
		return
	}
	h.failInternal(w, r, err, fmt.Sprintf("%s product %d", action, id))
}

func (h *Handler) failInternal(w http.ResponseWriter, r *http.Request, err error, what string) {
	h.logger.ErrorContext(r.Context(), "Product request failed", "operation", what, "error", err)
	web.RespondError(w, r, http.StatusInternalServerError, "failed to "+what)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
