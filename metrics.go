package wedge

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	kindVertex = "vertex"
	kindEdge   = "edge"
	kindFace   = "face"
)

type metrics struct {
	enabled  bool
	reg      prometheus.Registerer
	elements *prometheus.GaugeVec
	rejected *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, meshID string, logger logrus.FieldLogger) *metrics {
	if reg == nil {
		return &metrics{enabled: false}
	}

	labels := prometheus.Labels{"mesh": meshID}
	elements, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "wedge",
		Subsystem:   "mesh",
		Name:        "elements",
		Help:        "Number of elements stored in the mesh, by kind",
		ConstLabels: labels,
	}, []string{"kind"}))
	if err != nil {
		logger.WithField("action", "register_metrics").WithError(err).
			Warn("metrics disabled")
		return &metrics{enabled: false}
	}

	rejected, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "wedge",
		Subsystem:   "mesh",
		Name:        "rejected_operations_total",
		Help:        "Builder operations rejected because of an invalid argument",
		ConstLabels: labels,
	}, []string{"operation"}))
	if err != nil {
		logger.WithField("action", "register_metrics").WithError(err).
			Warn("metrics disabled")
		return &metrics{enabled: false}
	}

	return &metrics{
		enabled:  true,
		reg:      reg,
		elements: elements,
		rejected: rejected,
	}
}

// register registers c, falling back to an identical collector that is
// already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) setElements(kind string, n int) {
	if !m.enabled {
		return
	}

	m.elements.WithLabelValues(kind).Set(float64(n))
}

func (m *metrics) reject(operation string) {
	if !m.enabled {
		return
	}

	m.rejected.WithLabelValues(operation).Inc()
}

// unregister removes the collectors from the registry. Later updates are
// dropped.
func (m *metrics) unregister() {
	if !m.enabled {
		return
	}

	m.reg.Unregister(m.elements)
	m.reg.Unregister(m.rejected)
	m.enabled = false
}
