package wedge

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type options struct {
	id         uuid.UUID
	logger     logrus.FieldLogger
	registerer prometheus.Registerer

	vertexCapacity int
	edgeCapacity   int
	faceCapacity   int

	limit Index
}

// Option configures a Mesh.
type Option func(*options)

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics enables prometheus metrics, registered with reg. The series
// carry the mesh ID as a label and stay registered until Close is called.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithID sets the mesh identity used in log fields and metric labels.
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithCapacity preallocates room for the given number of elements.
func WithCapacity(vertices, edges, faces int) Option {
	return func(o *options) {
		o.vertexCapacity = vertices
		o.edgeCapacity = edges
		o.faceCapacity = faces
	}
}

// WithMaxElements bounds every arena to n elements. Going beyond the bound
// panics like exhausting the index space would. Values outside (0, none]
// keep the default bound.
func WithMaxElements(n int) Option {
	return func(o *options) {
		if n > 0 && uint64(n) <= uint64(none) {
			o.limit = Index(n)
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: logrus.StandardLogger(),
		limit:  none,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}
	return o
}
