package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
	amqp "github.com/rabbitmq/amqp091-go"
)

// channel は Publisher が利用する amqp.Channel のメソッド集合です。
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher は社員変更イベントを RabbitMQ の topic exchange へ送信します。
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	newID    func() string
}

var _ employee.EventPublisher = (*Publisher)(nil)

// Dial はブローカーへ接続し、durable な topic exchange を宣言します。
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, errors.New("rabbitmq: exchange is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := newPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		newID:    uuid.NewString,
	}
}

// Publish はイベント種別をルーティングキーとして永続メッセージを送信します。
func (p *Publisher) Publish(ctx context.Context, event employee.Event) error {
	msg, err := buildPublishing(event, p.newID())
	if err != nil {
		return err
	}

	// amqp.Channel は並行送信に対応していないため直列化する
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Close はチャネルと接続を閉じます。
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

func buildPublishing(event employee.Event, messageID string) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    event.OccurredAt.UTC(),
		Type:         string(event.Type),
		Body:         body,
	}, nil
}
