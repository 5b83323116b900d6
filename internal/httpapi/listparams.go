package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// Сообщения контракта для query-параметров и идентификаторов пути.
const (
	msgInvalidSortColumn    = "Coluna de ordenação inválida."
	msgInvalidSortDirection = "Direção de ordenação inválida."
	msgInvalidPerPage       = "Número de itens por página inválido."
	msgInvalidID            = "ID inválido."
)

const defaultPerPage = 10

// requestError — клиентская ошибка разбора запроса с готовым статусом и сообщением.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// parseListParams валидирует query-параметры выборки ДО обращения к хранилищу.
// allowedSort — allow-list колонок сортировки конкретного ресурса; nil
// отключает сортировочные параметры (списки только постраничные).
func parseListParams(r *http.Request, allowedSort map[string]struct{}) (domain.ListParams, *requestError) {
	params := domain.ListParams{
		SortBy:        "created_at",
		SortDirection: domain.SortAsc,
		Page:          1,
		PerPage:       defaultPerPage,
	}
	query := r.URL.Query()

	if allowedSort != nil {
		if raw := query.Get("sort_by"); raw != "" {
			if _, ok := allowedSort[raw]; !ok {
				return domain.ListParams{}, badRequest(msgInvalidSortColumn)
			}
			params.SortBy = raw
		}

		if raw := query.Get("sort_direction"); raw != "" {
			switch raw {
			case "asc":
				params.SortDirection = domain.SortAsc
			case "desc":
				params.SortDirection = domain.SortDesc
			default:
				return domain.ListParams{}, badRequest(msgInvalidSortDirection)
			}
		}
	}

	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage <= 0 {
			return domain.ListParams{}, badRequest(msgInvalidPerPage)
		}
		params.PerPage = perPage
	}

	// Некорректный номер страницы не ошибка: выборка начинается с первой.
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}

	return params, nil
}

// pathID извлекает идентификатор ресурса из пути: положительное целое,
// иначе 400 с фиксированным сообщением.
func pathID(r *http.Request) (int64, *requestError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(msgInvalidID)
	}
	return id, nil
}

var customerSortColumns = map[string]struct{}{
	"nome":       {},
	"email":      {},
	"created_at": {},
	"updated_at": {},
}

var productSortColumns = map[string]struct{}{
	"nome":       {},
	"preco":      {},
	"created_at": {},
	"updated_at": {},
}
