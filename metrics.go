package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry     *prometheus.Registry
	pageViews    prometheus.Counter
	sectionViews *prometheus.CounterVec
	contacts     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		pageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio", Name: "page_views_total", Help: "Portfolio page renders",
		}),
		sectionViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio", Name: "section_views_total", Help: "Sections reported active by the page script",
		}, []string{"section"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio", Name: "contact_submissions_total", Help: "Contact form submissions by result",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.pageViews, m.sectionViews, m.contacts)
	m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
