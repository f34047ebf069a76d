package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics holds the order and payment counters.
type StoreMetrics struct {
	OrdersCreatedTotal   prometheus.Counter
	OrdersCompletedTotal prometheus.Counter

	PaymentsApprovedTotal prometheus.Counter
	PaymentsRejectedTotal prometheus.Counter
	PaymentErrorsTotal    prometheus.Counter
}

// New registers and returns store metrics.
func New() *StoreMetrics {
	return &StoreMetrics{
		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Orders created at checkout start",
		}),
		OrdersCompletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_completed_total",
			Help: "Orders marked completed after gateway approval",
		}),
		PaymentsApprovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_payments_approved_total",
			Help: "Gateway commits with response code 0",
		}),
		PaymentsRejectedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_payments_rejected_total",
			Help: "Gateway commits with nonzero response code",
		}),
		PaymentErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_payment_errors_total",
			Help: "Gateway calls that failed outright",
		}),
	}
}
