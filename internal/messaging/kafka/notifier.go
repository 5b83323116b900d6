package kafka

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// Notifier публикует событие оформленного заказа в Kafka. Партиционируется
// по идентификатору заказа, чтобы события одного заказа шли упорядоченно.
type Notifier struct {
	producer *Producer
	logger   *log.Entry
}

// NewNotifier создаёт notifier поверх готового producer.
func NewNotifier(producer *Producer, logger *log.Entry) *Notifier {
	if logger == nil {
		logger = log.New().WithField("component", "kafka-notifier")
	}
	return &Notifier{producer: producer, logger: logger}
}

// OrderPlaced публикует событие order.placed с email клиента.
func (n *Notifier) OrderPlaced(order domain.Order, email string) error {
	event := NewOrderPlacedEvent(order, email)
	key := strconv.FormatInt(order.ID, 10)

	if err := n.producer.PublishEvent(TopicOrderEvents, key, event); err != nil {
		return fmt.Errorf("publish order placed event: %w", err)
	}

	n.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"event_id": event.EventID,
	}).Info("order placed event published")
	return nil
}

// LogNotifier — fallback-реализация для окружений без Kafka: уведомление
// просто фиксируется в логе.
type LogNotifier struct {
	logger *log.Entry
}

// NewLogNotifier создаёт лог-notifier.
func NewLogNotifier(logger *log.Entry) *LogNotifier {
	if logger == nil {
		logger = log.New().WithField("component", "log-notifier")
	}
	return &LogNotifier{logger: logger}
}

// OrderPlaced пишет уведомление в лог. Никогда не возвращает ошибку.
func (n *LogNotifier) OrderPlaced(order domain.Order, email string) error {
	n.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"email":    email,
		"items":    len(order.Items),
		"total":    order.Total(),
	}).Info("order placed notification")
	return nil
}

var (
	_ domain.Notifier = (*Notifier)(nil)
	_ domain.Notifier = (*LogNotifier)(nil)
)
