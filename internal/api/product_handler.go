package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/service/product"
)

// ProductHandler обрабатывает HTTP-запросы каталога.
type ProductHandler struct {
	service *product.Service
	logger  *log.Entry
}

// NewProductHandler конструирует обработчик каталога.
func NewProductHandler(service *product.Service, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.New().WithField("component", "product-handler")
	}
	return &ProductHandler{service: service, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetActive(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_category", err.Error())
		return
	}

	products, err := h.service.GetByCategory(r.Context(), category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if found == nil {
		writeError(w, http.StatusNotFound, "not_found", "product "+strconv.FormatInt(id, 10)+" not found")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*found))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), product.CreateInput{
		Name:        req.Name,
		PriceMinor:  req.PriceMinor,
		Category:    domain.Category(req.Category),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, product.UpdateInput{
		Name:        req.Name,
		PriceMinor:  req.PriceMinor,
		Category:    domain.Category(req.Category),
		Description: req.Description,
		Active:      req.Active,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found", "product "+strconv.FormatInt(id, 10)+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
