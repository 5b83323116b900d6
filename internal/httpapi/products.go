package httpapi

import (
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

const (
	msgProductNotFound = "Produto não encontrado."
	msgProductDeleted  = "Produto removido com sucesso."
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	decodeBody(r.Body, &req)

	product, violations := validateProduct(req)
	if violations != nil {
		writeValidation(w, violations)
		return
	}

	created, err := h.products.Create(product)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, productToResponse(created))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	params, reqErr := parseListParams(r, productSortColumns)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	page, err := h.products.List(params)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	items := make([]productResponse, 0, len(page.Items))
	for _, product := range page.Items {
		items = append(items, productToResponse(product))
	}
	writeJSON(w, http.StatusOK, pagedToResponse(r.URL.Path, page, items))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	product, err := h.products.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	var req productRequest
	decodeBody(r.Body, &req)

	product, violations := validateProduct(req)
	if violations != nil {
		writeValidation(w, violations)
		return
	}
	product.ID = id

	updated, err := h.products.Update(product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(updated))
}

// deleteProduct удаляет товар жёстко. Снапшоты в ранее оформленных заказах
// при этом сохраняются.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, reqErr := pathID(r)
	if reqErr != nil {
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	if err := h.products.Delete(id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeMessage(w, msgProductDeleted)
}
