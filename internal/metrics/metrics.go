// Package metrics exposes prometheus counters for the link and webhook pipelines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LinksCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "links_created_total",
		Help: "Total short links created.",
	})
	Clicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_clicks_total",
		Help: "Total recorded link clicks.",
	})
	Milestones = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_milestones_total",
		Help: "Total milestone events fired.",
	})
	Deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_deliveries_total",
		Help: "Webhook delivery attempts by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(LinksCreated, Clicks, Milestones, Deliveries)
}

func Handler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
