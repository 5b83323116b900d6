package domain

// SortDirection задаёт направление сортировки списков.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListParams — нормализованные параметры постраничной выборки.
// Валидация сырых query-параметров происходит до обращения к хранилищу.
type ListParams struct {
	SortBy        string
	SortDirection SortDirection
	Page          int
	PerPage       int
}

// PagedResult — одна страница выборки вместе со сведениями пагинации.
type PagedResult[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
}

// LastPage возвращает номер последней страницы (минимум 1).
func (p PagedResult[T]) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	last := (p.Total + p.PerPage - 1) / p.PerPage
	if last < 1 {
		return 1
	}
	return last
}
