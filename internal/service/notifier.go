package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/metrics"
)

type MessageClient interface {
	SendToMe(ctx context.Context, accessToken, text string) error
}

type notification struct {
	handle  string
	text    string
	orderID uint
}

// Notifier is the NotificationSink backed by a bounded queue and a fixed pool of
// workers. Notify never blocks: when the queue is full the notification is dropped.
type Notifier struct {
	client  MessageClient
	queue   chan notification
	workers int
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewNotifier(client MessageClient, workers, queueSize int, timeout time.Duration, m *metrics.Metrics) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	return &Notifier{
		client:  client,
		queue:   make(chan notification, queueSize),
		workers: workers,
		timeout: timeout,
		metrics: m,
	}
}

func (n *Notifier) Notify(member domain.Member, order domain.Order, option domain.Option) {
	handle, ok := member.NotificationTarget()
	if !ok {
		n.metrics.IncrementNotifications(metrics.NotificationSkipped)
		return
	}

	select {
	case n.queue <- notification{handle: handle, text: orderMessage(order, option), orderID: order.ID}:
	default:
		n.metrics.IncrementNotifications(metrics.NotificationDropped)
		zap.L().Warn("notification queue full, dropping", zap.Uint("orderID", order.ID))
	}
}

// Run sends queued notifications until ctx is done. Notifications still queued at
// that point are dropped.
func (n *Notifier) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for i := 0; i < n.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-n.queue:
					n.send(ctx, job)
				}
			}
		}()
	}

	wg.Wait()

	return nil
}

func (n *Notifier) send(ctx context.Context, job notification) {
	defer func() {
		if r := recover(); r != nil {
			n.metrics.IncrementNotifications(metrics.NotificationFailed)
			zap.L().Warn("notification client panicked", zap.Uint("orderID", job.orderID), zap.Any("panic", r))
		}
	}()

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.client.SendToMe(sendCtx, job.handle, job.text); err != nil {
		n.metrics.IncrementNotifications(metrics.NotificationFailed)
		zap.L().Warn("failed to send order notification", zap.Uint("orderID", job.orderID), zap.Error(err))
		return
	}

	n.metrics.IncrementNotifications(metrics.NotificationSent)
}

func orderMessage(order domain.Order, option domain.Option) string {
	text := fmt.Sprintf("[주문 완료] %s - %s x%d (%d point)", option.Product.Name, option.Name, order.Quantity, order.Amount)
	if order.Message != "" {
		text += "\n" + order.Message
	}

	return text
}

// NopSink discards every notification.
type NopSink struct{}

func (NopSink) Notify(domain.Member, domain.Order, domain.Option) {}
