package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	"github.com/vladislavdragonenkov/pastelaria/internal/metrics"
)

// PlaceOrderInput — нормализованный ввод для создания или полной замены заказа.
// Позиции идут строго в порядке исходного запроса: при сбое клиент получает
// сообщение о ПЕРВОЙ проблемной позиции.
type PlaceOrderInput struct {
	CustomerID int64
	Items      []InputItem
}

// InputItem — одна позиция нормализованного ввода. Quantity остаётся
// опциональным: его отсутствие фиксируется уже внутри транзакции.
type InputItem struct {
	ProductID int64
	Quantity  *int
}

// Manager описывает транзакционные мутации заказа.
type Manager interface {
	// Place создаёт заказ с позициями в одной транзакции и после коммита
	// отправляет уведомление клиенту.
	Place(ctx context.Context, input PlaceOrderInput) (domain.Order, error)
	// Replace полностью заменяет владельца и состав существующего заказа.
	// Уведомление при замене не отправляется.
	Replace(ctx context.Context, orderID int64, input PlaceOrderInput) (domain.Order, error)
}

// manager реализует транзакционный цикл заказа: открытая транзакция,
// повторная проверка каждого товара под блокировкой строки, снапшот позиции,
// коммит либо полный откат.
type manager struct {
	uow       domain.OrderUnitOfWork
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	notifier  domain.Notifier
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewManager создаёт рабочий экземпляр менеджера заказов.
func NewManager(
	uow domain.OrderUnitOfWork,
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) Manager {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &manager{
		uow:       uow,
		orders:    orders,
		customers: customers,
		notifier:  notifier,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewManagerWithoutMetrics создаёт менеджер без метрик (для тестов).
func NewManagerWithoutMetrics(
	uow domain.OrderUnitOfWork,
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) Manager {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &manager{
		uow:       uow,
		orders:    orders,
		customers: customers,
		notifier:  notifier,
		logger:    logger,
	}
}

func (m *manager) Place(ctx context.Context, input PlaceOrderInput) (domain.Order, error) {
	start := time.Now()
	if m.metrics != nil {
		m.metrics.RecordTxOpened()
	}
	defer func() {
		if m.metrics != nil {
			m.metrics.RecordTxClosed()
			m.metrics.RecordTxDuration(time.Since(start))
		}
	}()

	var orderID int64
	err := m.uow.Within(ctx, func(tx domain.OrderTx) error {
		id, err := tx.InsertOrder(input.CustomerID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID = id
		return m.attachItems(tx, orderID, input.Items)
	})
	if err != nil {
		m.recordRollback(err)
		return domain.Order{}, err
	}
	if m.metrics != nil {
		m.metrics.RecordOrderPlaced()
	}

	order, err := m.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("reload order %d: %w", orderID, err)
	}

	m.notifyPlaced(order)
	return order, nil
}

func (m *manager) Replace(ctx context.Context, orderID int64, input PlaceOrderInput) (domain.Order, error) {
	// Проверка существования до открытия транзакции: отсутствующий заказ
	// не должен стоить ни одной записи.
	if _, err := m.orders.Get(orderID); err != nil {
		return domain.Order{}, err
	}

	start := time.Now()
	if m.metrics != nil {
		m.metrics.RecordTxOpened()
	}
	defer func() {
		if m.metrics != nil {
			m.metrics.RecordTxClosed()
			m.metrics.RecordTxDuration(time.Since(start))
		}
	}()

	err := m.uow.Within(ctx, func(tx domain.OrderTx) error {
		if err := tx.UpdateOrderCustomer(orderID, input.CustomerID); err != nil {
			return fmt.Errorf("update order customer: %w", err)
		}
		// Полная замена: прежний состав снимается безусловно, без диффа.
		if err := tx.DetachItems(orderID); err != nil {
			return fmt.Errorf("detach items: %w", err)
		}
		return m.attachItems(tx, orderID, input.Items)
	})
	if err != nil {
		m.recordRollback(err)
		return domain.Order{}, err
	}
	if m.metrics != nil {
		m.metrics.RecordOrderReplaced()
	}

	order, err := m.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("reload order %d: %w", orderID, err)
	}
	return order, nil
}

// attachItems проходит позиции в порядке запроса. Каждый товар перепроверяется
// уже внутри транзакции: между валидацией и записью его могли удалить.
func (m *manager) attachItems(tx domain.OrderTx, orderID int64, items []InputItem) error {
	for _, item := range items {
		product, err := tx.FindProduct(item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return domain.NewProductMissingError(item.ProductID)
			}
			return fmt.Errorf("find product %d: %w", item.ProductID, err)
		}
		if item.Quantity == nil {
			return domain.NewQuantityMissingError(item.ProductID)
		}
		if err := tx.AttachItem(orderID, product, *item.Quantity); err != nil {
			return fmt.Errorf("attach product %d: %w", item.ProductID, err)
		}
	}
	return nil
}

func (m *manager) recordRollback(err error) {
	if m.metrics != nil {
		m.metrics.RecordOrderRolledBack()
	}
	if domain.IsOrderTxError(err) {
		m.logger.WithError(err).Warn("order transaction rolled back")
		return
	}
	m.logger.WithError(err).Error("order transaction failed")
}

// notifyPlaced отправляет уведомление об оформленном заказе. Сбой доставки
// логируется и проглатывается: заказ уже закоммичен.
func (m *manager) notifyPlaced(order domain.Order) {
	if m.notifier == nil {
		return
	}

	customer, err := m.customers.Get(order.CustomerID)
	if err != nil {
		m.logger.WithError(err).WithField("order_id", order.ID).Warn("customer lookup for notification failed")
		if m.metrics != nil {
			m.metrics.RecordNotificationFailed()
		}
		return
	}

	if err := m.notifier.OrderPlaced(order, customer.Email); err != nil {
		m.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"email":    customer.Email,
		}).Warn("order notification failed")
		if m.metrics != nil {
			m.metrics.RecordNotificationFailed()
		}
		return
	}
	if m.metrics != nil {
		m.metrics.RecordNotificationPublished()
	}
}

var _ Manager = (*manager)(nil)
