package services

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PDFMetrics tracks quotation document generation.
type PDFMetrics struct {
	generated     *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pages         prometheus.Histogram
	missingImages prometheus.Counter
	expired       prometheus.Counter
}

var (
	pdfMetricsOnce sync.Once
	pdfMetrics     *PDFMetrics
)

// Metrics returns the process-wide collectors registered on the default registerer.
func Metrics(env string) *PDFMetrics {
	pdfMetricsOnce.Do(func() {
		pdfMetrics = NewPDFMetrics(prometheus.DefaultRegisterer, env)
	})
	return pdfMetrics
}

func NewPDFMetrics(registerer prometheus.Registerer, env string) *PDFMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	env = strings.TrimSpace(env)
	if env == "" {
		env = "unknown"
	}
	constLabels := prometheus.Labels{"service": "quotations", "env": env}

	m := &PDFMetrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "quotation_pdf_generated_total",
			Help:        "Quotation PDFs generated, by kind and result.",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}), // kind: save | preview | email
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "quotation_pdf_generation_seconds",
			Help:        "Time spent loading assets, composing and emitting a quotation PDF.",
			Buckets:     []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			ConstLabels: constLabels,
		}, []string{"kind"}),
		pages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "quotation_pdf_pages",
			Help:        "Pages per generated quotation PDF.",
			Buckets:     []float64{2, 3, 4, 6, 8, 12, 20},
			ConstLabels: constLabels,
		}),
		missingImages: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "quotation_pdf_missing_images_total",
			Help:        "Item images that could not be loaded and were left out.",
			ConstLabels: constLabels,
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "quotation_expired_total",
			Help:        "Quotations moved to expired by the daily job.",
			ConstLabels: constLabels,
		}),
	}
	registerer.MustRegister(m.generated, m.duration, m.pages, m.missingImages, m.expired)
	return m
}

func (m *PDFMetrics) observeGeneration(kind string, started time.Time, pages, missing int, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.generated.WithLabelValues(kind, result).Inc()
	m.duration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if err == nil {
		m.pages.Observe(float64(pages))
		m.missingImages.Add(float64(missing))
	}
}

func (m *PDFMetrics) observeExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.expired.Add(float64(n))
}
