// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const TopicOrderPlaced = "order.placed"

type OrderPlaced struct {
	OrderID       uint      `json:"order_id"`
	UserID        uint      `json:"user_id"`
	OrderType     string    `json:"order_type"`
	AddressID     *uint     `json:"address_id,omitempty"`
	BranchID      *uint     `json:"branch_id,omitempty"`
	ItemCount     int       `json:"item_count"`
	Subtotal      int64     `json:"subtotal"`
	DeliveryPrice int64     `json:"delivery_price"`
	Discount      int64     `json:"discount"`
	Total         int64     `json:"total"`
	PlacedAt      time.Time `json:"placed_at"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewPublisher returns a Kafka publisher, or a no-op one when brokers is empty.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	if topic == "" {
		topic = TopicOrderPlaced
	}
	return &KafkaPublisher{Writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.UserID), 10)),
		Value: payload,
		Time:  ev.PlacedAt,
	})
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }

type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

func (Nop) Close() error { return nil }
