package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event identifies which booking transition an email is about.
type Event string

const (
	EventBooked    Event = "booked"
	EventConfirmed Event = "confirmed"
	EventCancelled Event = "cancelled"
)

// EmailJob is the JSON payload put on the queue for the email worker.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

// BookingEmail carries everything the templates need about a booking.
type BookingEmail struct {
	UserEmail       string
	UserName        string
	PropertyTitle   string
	PropertyAddress string
	BookingDate     string
	OwnerEmail      string
}

// Publisher pushes email jobs onto a durable queue. A nil Publisher is a
// no-op so the API runs fine without a broker configured.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) publish(ctx context.Context, job EmailJob) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"", p.queue, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// BookingCreated notifies the visitor and the property owner about a new
// booking. Delivery is best effort; callers log the error and move on.
func (p *Publisher) BookingCreated(ctx context.Context, data BookingEmail) error {
	if err := p.publish(ctx, EmailJob{
		To:       data.UserEmail,
		Template: TemplateBookingConfirmation,
		Data:     data.toMap(),
	}); err != nil {
		return err
	}
	return p.publish(ctx, EmailJob{
		To:       data.OwnerEmail,
		Template: TemplateBookingNotification,
		Data:     data.toMap(),
	})
}

// StatusChanged notifies the visitor that the owner confirmed or cancelled
// their visit.
func (p *Publisher) StatusChanged(ctx context.Context, event Event, data BookingEmail) error {
	m := data.toMap()
	m["Status"] = string(event)
	return p.publish(ctx, EmailJob{
		To:       data.UserEmail,
		Template: TemplateBookingStatus,
		Data:     m,
	})
}

func (d BookingEmail) toMap() map[string]any {
	return map[string]any{
		"UserName":        d.UserName,
		"UserEmail":       d.UserEmail,
		"PropertyTitle":   d.PropertyTitle,
		"PropertyAddress": d.PropertyAddress,
		"BookingDate":     d.BookingDate,
	}
}
