package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coachapi", Name: "bookings_created_total", Help: "Successfully admitted course bookings",
	})
	BookingsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coachapi", Name: "bookings_rejected_total", Help: "Booking attempts rejected by the admission checks",
	}, []string{"reason"})
	BookingsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coachapi", Name: "bookings_cancelled_total", Help: "Soft-cancelled course bookings",
	})
	CreditPurchases = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coachapi", Name: "credit_purchases_total", Help: "Recorded credit package purchases",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "coachapi", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BookingsCreated, BookingsRejected, BookingsCancelled, CreditPurchases, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
