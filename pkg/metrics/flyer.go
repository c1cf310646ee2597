package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "flyer"

// FlyerMetrics counts domain events: request decisions, public flyer views and uploads.
type FlyerMetrics struct {
	decisions *prometheus.CounterVec
	views     prometheus.Counter
	uploads   *prometheus.CounterVec
}

func NewFlyerMetrics(reg prometheus.Registerer) *FlyerMetrics {
	if reg == nil {
		return &FlyerMetrics{}
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_decisions_total",
		Help:      "Registration requests approved or rejected.",
	}, []string{"decision"})
	views := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_views_total",
		Help:      "Public flyer page views served.",
	})
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Images stored, by uploader.",
	}, []string{"uploader"})
	reg.MustRegister(decisions, views, uploads)
	return &FlyerMetrics{decisions: decisions, views: views, uploads: uploads}
}

func (m *FlyerMetrics) IncDecision(decision string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(decision)).Inc()
}

func (m *FlyerMetrics) IncView() {
	if m == nil || m.views == nil {
		return
	}
	m.views.Inc()
}

func (m *FlyerMetrics) IncUpload(uploader string) {
	if m == nil || m.uploads == nil {
		return
	}
	m.uploads.WithLabelValues(normalizeLabel(uploader)).Inc()
}
