package httpapi

import (
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

const (
	msgEmailTaken       = "E-mail já cadastrado."
	msgCustomerNotFound = "Cliente não encontrado."
	msgCustomerDeleted  = "Cliente deletado com sucesso."
)

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	decodeBody(r.Body, &req)

	customer, violations := validateCustomer(req)
	if violations != nil {
		writeValidation(w, violations)
		return
	}

	created, err := h.customers.Create(customer)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, msgEmailTaken)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, customerToResponse(created))
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	params, reqErr := parseListParams(r, customerSortColumns)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	page, err := h.customers.List(params)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	items := make([]customerResponse, 0, len(page.Items))
	for _, customer := range page.Items {
		items = append(items, customerToResponse(customer))
	}
	writeJSON(w, http.StatusOK, pagedToResponse(r.URL.Path, page, items))
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	customer, err := h.customers.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			writeError(w, http.StatusNotFound, msgCustomerNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, customerToResponse(customer))
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	var req customerRequest
	decodeBody(r.Body, &req)

	customer, violations := validateCustomer(req)
	if violations != nil {
		writeValidation(w, violations)
		return
	}
	customer.ID = id

	updated, err := h.customers.Update(customer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			writeError(w, http.StatusNotFound, msgCustomerNotFound)
		case errors.Is(err, domain.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, customerToResponse(updated))
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	if err := h.customers.SoftDelete(id); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			writeError(w, http.StatusNotFound, msgCustomerNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeMessage(w, msgCustomerDeleted)
}
