package httpapi

import (
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/pastelaria/internal/service/orders"
)

const (
	// Без точки в конце: так зафиксировано в исходном контракте.
	msgOrderNotFound = "Pedido não encontrado"
	msgOrderDeleted  = "Pedido removido com sucesso."
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	decodeBody(r.Body, &req)

	input, err := h.validator.Validate(req.toPayload())
	if err != nil {
		if verrs, ok := ordersvc.AsValidationErrors(err); ok {
			writeValidation(w, verrs)
			return
		}
		h.serverError(w, r, err)
		return
	}

	order, err := h.manager.Place(r.Context(), input)
	if err != nil {
		if domain.IsOrderTxError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderToResponse(order, true))
}

// listOrders отдаёт страницу заказов в сокращённой проекции товаров
// (id, nome, preco + pivot), как исходный список.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	params, reqErr := parseListParams(r, nil)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	page, err := h.orders.List(params)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	items := make([]orderResponse, 0, len(page.Items))
	for _, order := range page.Items {
		items = append(items, orderToResponse(order, false))
	}
	writeJSON(w, http.StatusOK, pagedToResponse(r.URL.Path, page, items))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, msgOrderNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderToResponse(order, true))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	var req orderRequest
	decodeBody(r.Body, &req)

	input, err := h.validator.Validate(req.toPayload())
	if err != nil {
		if verrs, ok := ordersvc.AsValidationErrors(err); ok {
			writeValidation(w, verrs)
			return
		}
		h.serverError(w, r, err)
		return
	}

	order, err := h.manager.Replace(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, msgOrderNotFound)
		case domain.IsOrderTxError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, orderToResponse(order, true))
}

// deleteOrder по умолчанию удаляет мягко; ?force=true отвязывает позиции
// и удаляет строку физически.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	remove := h.orders.SoftDelete
	if r.URL.Query().Get("force") == "true" {
		remove = h.orders.ForceDelete
	}

	if err := remove(id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, msgOrderNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeMessage(w, msgOrderDeleted)
}
