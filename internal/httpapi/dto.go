package httpapi

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// Формы ответов совместимы с исходным контрактом: сущности с created_at/
// updated_at, заказ с массивом products, где связь выражена объектом pivot.

type customerResponse struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	Nascimento  string    `json:"nascimento"`
	Endereco    string    `json:"endereco"`
	Complemento string    `json:"complemento"`
	Bairro      string    `json:"bairro"`
	CEP         string    `json:"cep"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func customerToResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		Nome:        c.Nome,
		Email:       c.Email,
		Nascimento:  c.Nascimento,
		Endereco:    c.Endereco,
		Complemento: c.Complemento,
		Bairro:      c.Bairro,
		CEP:         c.CEP,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type productResponse struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Preco     float64   `json:"preco"`
	Foto      string    `json:"foto"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func productToResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Nome:      p.Nome,
		Preco:     p.Preco,
		Foto:      p.Foto,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type pivotResponse struct {
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// orderProductResponse — товар внутри заказа. Поля берутся из снапшота
// позиции, поэтому ответ не зависит от текущего состояния каталога.
// В сокращённой проекции списка foto и таймстемпы опускаются.
type orderProductResponse struct {
	ID        int64         `json:"id"`
	Nome      string        `json:"nome"`
	Preco     float64       `json:"preco"`
	Foto      *string       `json:"foto,omitempty"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	Pivot     pivotResponse `json:"pivot"`
}

type orderResponse struct {
	ID         int64                  `json:"id"`
	CustomerID int64                  `json:"customer_id"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Products   []orderProductResponse `json:"products"`
}

func orderToResponse(o domain.Order, full bool) orderResponse {
	products := make([]orderProductResponse, 0, len(o.Items))
	for _, item := range o.Items {
		product := orderProductResponse{
			ID:    item.ProductID,
			Nome:  item.Nome,
			Preco: item.Preco,
			Pivot: pivotResponse{
				OrderID:   item.OrderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
		}
		if full {
			foto := item.Foto
			createdAt := item.CreatedAt
			updatedAt := item.UpdatedAt
			product.Foto = &foto
			product.CreatedAt = &createdAt
			product.UpdatedAt = &updatedAt
		}
		products = append(products, product)
	}

	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Products:   products,
	}
}

type pageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

type pagedResponse struct {
	CurrentPage int        `json:"current_page"`
	Data        any        `json:"data"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
	Links       []pageLink `json:"links"`
}

// pagedToResponse упаковывает страницу в формат, совместимый с исходным
// пагинатором: data + сведения о странице + навигационные ссылки.
func pagedToResponse[T any](path string, page domain.PagedResult[T], items any) pagedResponse {
	lastPage := page.LastPage()

	links := []pageLink{
		{URL: pageURL(path, page.Page-1, page.Page > 1), Label: "&laquo; Anterior"},
		{URL: pageURL(path, page.Page, true), Label: fmt.Sprintf("%d", page.Page), Active: true},
		{URL: pageURL(path, page.Page+1, page.Page < lastPage), Label: "Próximo &raquo;"},
	}

	return pagedResponse{
		CurrentPage: page.Page,
		Data:        items,
		LastPage:    lastPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
		Links:       links,
	}
}

func pageURL(path string, page int, ok bool) *string {
	if !ok {
		return nil
	}
	url := fmt.Sprintf("%s?page=%d", path, page)
	return &url
}
