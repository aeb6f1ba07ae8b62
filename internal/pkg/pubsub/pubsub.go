package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelPaymentEvents = "payment_events"
)

// PaymentMessage 支付事件消息，服务端订阅后转发到 WebSocket
type PaymentMessage struct {
	Type          string  `json:"type"`
	UserID        int64   `json:"user_id"`
	PaymentID     int64   `json:"payment_id"`
	PaymentType   string  `json:"payment_type"` // membership, purchase, rent
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
	BookID        int64   `json:"book_id,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// 支付类型对应的提示消息
var typeMessages = map[string]string{
	"membership": "会员订阅支付成功",
	"purchase":   "图书购买支付成功",
	"rent":       "图书租借支付成功",
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishPayment 发布支付事件
func (p *Publisher) PublishPayment(ctx context.Context, msg *PaymentMessage) error {
	msg.Type = "payment"

	if msg.Message == "" {
		if m, ok := typeMessages[msg.PaymentType]; ok {
			msg.Message = m
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payment message: %w", err)
	}

	return p.client.Publish(ctx, ChannelPaymentEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅支付事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*PaymentMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelPaymentEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var paymentMsg PaymentMessage
			if err := json.Unmarshal([]byte(msg.Payload), &paymentMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&paymentMsg)
		}
	}
}
