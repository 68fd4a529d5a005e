package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/service/order"
)

// OrderHandler обрабатывает HTTP-запросы заказов.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler конструирует обработчик заказов.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &OrderHandler{service: service, logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseOrderStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	orders, err := h.service.GetByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, http.StatusNotFound, "not_found", "order "+strconv.FormatInt(id, 10)+" not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*found))
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]order.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.ItemInput{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
		}
	}

	created, err := h.service.Create(r.Context(), order.CreateInput{
		CustomerID:  req.CustomerID,
		Number:      req.Number,
		Observation: req.Observation,
		Items:       items,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, order.UpdateInput{
		Status:        domain.OrderStatus(req.Status),
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		PaymentID:     req.PaymentID,
		Observation:   req.Observation,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, http.StatusNotFound, "not_found", "order "+strconv.FormatInt(id, 10)+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
