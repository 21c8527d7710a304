package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/metrics"
	"github.com/vietanh2810/gift-api/internal/service/mocks"
)

func runNotifier(t *testing.T, n *Notifier) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = n.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
}

func notificationCount(m *metrics.Metrics, result string) func() bool {
	return func() bool {
		return testutil.ToFloat64(m.Notifications.WithLabelValues(result)) == 1
	}
}

var (
	notifyMember = domain.Member{ID: 1, NotificationHandle: "kakao-token"}
	notifyOrder  = domain.Order{ID: 9, Quantity: 2, Amount: 200, Message: "for you"}
	notifyOption = domain.Option{ID: 3, Name: "Large", Product: domain.Product{Name: "Coffee"}}
)

func TestNotifier_Sends(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	var text string
	client.EXPECT().SendToMe(gomock.Any(), "kakao-token", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, msg string) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			text = msg
			return nil
		})

	n := NewNotifier(client, 2, 8, time.Second, m)
	runNotifier(t, n)

	n.Notify(notifyMember, notifyOrder, notifyOption)

	assert.Eventually(t, notificationCount(m, metrics.NotificationSent), time.Second, 10*time.Millisecond)
	assert.Contains(t, text, "Coffee - Large x2")
	assert.Contains(t, text, "for you")
}

func TestNotifier_SkipsMemberWithoutHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	n := NewNotifier(client, 1, 1, time.Second, m)
	n.Notify(domain.Member{ID: 2}, notifyOrder, notifyOption)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues(metrics.NotificationSkipped)))
	assert.Empty(t, n.queue)
}

func TestNotifier_SwallowsClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	client.EXPECT().SendToMe(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))

	n := NewNotifier(client, 1, 1, time.Second, m)
	runNotifier(t, n)

	n.Notify(notifyMember, notifyOrder, notifyOption)

	assert.Eventually(t, notificationCount(m, metrics.NotificationFailed), time.Second, 10*time.Millisecond)
}

func TestNotifier_RecoversClientPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	client.EXPECT().SendToMe(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			panic("nil map")
		})

	n := NewNotifier(client, 1, 1, time.Second, m)
	runNotifier(t, n)

	n.Notify(notifyMember, notifyOrder, notifyOption)

	assert.Eventually(t, notificationCount(m, metrics.NotificationFailed), time.Second, 10*time.Millisecond)
}

func TestNotifier_DropsWhenQueueIsFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	n := NewNotifier(client, 1, 1, time.Second, m)

	n.Notify(notifyMember, notifyOrder, notifyOption)
	n.Notify(notifyMember, notifyOrder, notifyOption)

	assert.Len(t, n.queue, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues(metrics.NotificationDropped)))
}

func TestNotifier_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)

	n := NewNotifier(client, 3, 1, time.Second, metrics.New(prometheus.NewRegistry()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- n.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
