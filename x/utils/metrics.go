package utils

import (
	"time"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts delivered transactions by path and result and observes
// how long they take. Check calls are not measured.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ weave.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weave_escrow",
			Name:      "tx_total",
			Help:      "Delivered transactions by message path and result.",
		}, []string{"path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weave_escrow",
			Name:      "tx_duration_seconds",
			Help:      "Time spent delivering a transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

func (m *Metrics) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (m *Metrics) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	path := weave.GetPath(tx)
	res, err := next.Deliver(ctx, db, tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.txs.WithLabelValues(path, Result(err)).Inc()
	return res, err
}

// Result is the metric label of a transaction outcome: "ok" or the
// registered description of the root error, "internal" for anything else.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, e := range resultErrors {
		if e.Is(err) {
			return e.Error()
		}
	}
	return "internal"
}

var resultErrors = []*errors.Error{
	errors.ErrUnauthorized,
	errors.ErrNotFound,
	errors.ErrDuplicate,
	errors.ErrMismatch,
	errors.ErrAmount,
	errors.ErrInput,
	errors.ErrMsg,
	errors.ErrState,
	errors.ErrEmpty,
	errors.ErrPanic,
}
