package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderPlaced — заказ оформлен и закоммичен.
	EventTypeOrderPlaced EventType = "order.placed"
)

// TopicOrderEvents — топик событий заказов. Его читает внешний сервис
// рассылки, который рендерит и отправляет письмо клиенту.
const TopicOrderEvents = "pastelaria.order.events"

// OrderPlacedEvent — полный снапшот оформленного заказа для потребителей.
type OrderPlacedEvent struct {
	EventID       string           `json:"event_id"`
	EventType     EventType        `json:"event_type"`
	OrderID       int64            `json:"order_id"`
	CustomerID    int64            `json:"customer_id"`
	CustomerEmail string           `json:"customer_email"`
	Total         float64          `json:"total"`
	Items         []OrderEventItem `json:"items"`
	Timestamp     time.Time        `json:"timestamp"`
}

// OrderEventItem — позиция заказа со снапшотом товара на момент оформления.
type OrderEventItem struct {
	ProductID int64   `json:"product_id"`
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Foto      string  `json:"foto"`
	Quantity  int     `json:"quantity"`
}

// NewOrderPlacedEvent создаёт событие оформленного заказа с уникальным event id.
func NewOrderPlacedEvent(order domain.Order, email string) *OrderPlacedEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			ProductID: item.ProductID,
			Nome:      item.Nome,
			Preco:     item.Preco,
			Foto:      item.Foto,
			Quantity:  item.Quantity,
		})
	}

	return &OrderPlacedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypeOrderPlaced,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		CustomerEmail: email,
		Total:         order.Total(),
		Items:         items,
		Timestamp:     time.Now().UTC(),
	}
}
