package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LedgerInventory = "inventory"
	LedgerBalance   = "balance"

	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
	NotificationSkipped = "skipped"
)

// Metrics holds the order and notification counters.
type Metrics struct {
	OrdersCreated      prometheus.Counter
	OrdersRejected     *prometheus.CounterVec
	OrderCompensations *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// New registers the counters with reg. Passing nil uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gift_orders_created_total",
			Help: "Total number of orders committed",
		}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gift_orders_rejected_total",
			Help: "Total number of order submissions rejected, by reason",
		}, []string{"reason"}),
		OrderCompensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gift_order_compensations_total",
			Help: "Total number of compensating ledger actions run by the order transaction",
		}, []string{"ledger"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gift_notifications_total",
			Help: "Total number of order notifications, by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementOrdersCreated() {
	m.OrdersCreated.Inc()
}

func (m *Metrics) IncrementOrdersRejected(reason string) {
	m.OrdersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementCompensations(ledger string) {
	m.OrderCompensations.WithLabelValues(ledger).Inc()
}

func (m *Metrics) IncrementNotifications(result string) {
	m.Notifications.WithLabelValues(result).Inc()
}
