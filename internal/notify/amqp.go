package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marawan13001/zmarketfr-sub000/internal/order"
)

const (
	NotifySMSQueue   = "notify.sms"
	NotifyEmailQueue = "notify.email"
)

// Message is the envelope handed to the transport workers that own the
// actual SMS and email delivery.
type Message struct {
	MessageID  string    `json:"messageId"`
	Channel    string    `json:"channel"`
	To         string    `json:"to"`
	OrderID    string    `json:"orderId"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AMQPDispatcher publishes the merchant summary to the two notification
// queues. Transport failures surface as an error for the caller to log;
// order confirmation never waits on delivery.
type AMQPDispatcher struct {
	ch            *amqp.Channel
	merchantPhone string
	merchantEmail string
}

func NewAMQPDispatcher(conn *amqp.Connection, merchantPhone, merchantEmail string) (*AMQPDispatcher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, q := range []string{NotifySMSQueue, NotifyEmailQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}

	return &AMQPDispatcher{ch: ch, merchantPhone: merchantPhone, merchantEmail: merchantEmail}, nil
}

func (d *AMQPDispatcher) Close() error {
	return d.ch.Close()
}

func (d *AMQPDispatcher) Notify(ctx context.Context, o order.Order) error {
	body := Format(o)
	now := time.Now().UTC()

	targets := []struct {
		queue   string
		channel string
		to      string
	}{
		{NotifySMSQueue, ChannelSMS, d.merchantPhone},
		{NotifyEmailQueue, ChannelEmail, d.merchantEmail},
	}

	for _, t := range targets {
		msg := Message{
			MessageID:  uuid.NewString(),
			Channel:    t.channel,
			To:         t.to,
			OrderID:    o.ID,
			Body:       body,
			OccurredAt: now,
		}
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal %s message: %w", t.channel, err)
		}
		if err := d.publishJSON(ctx, t.queue, raw); err != nil {
			return fmt.Errorf("publish %s: %w", t.channel, err)
		}
	}
	return nil
}

func (d *AMQPDispatcher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return d.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

var _ order.Dispatcher = (*AMQPDispatcher)(nil)
