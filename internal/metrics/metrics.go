package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	CacheRequests *prometheus.CounterVec
	PostsCreated  prometheus.Counter
	Comments      prometheus.Counter
	Follows       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_cache_requests_total",
			Help: "Global feed page cache lookups by result.",
		}, []string{"result"}),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Posts created.",
		}),
		Comments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Comments added to posts.",
		}),
		Follows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "follow_edges_changed_total",
			Help: "Follow edges created or removed.",
		}, []string{"op"}),
	}

	reg.MustRegister(m.CacheRequests, m.PostsCreated, m.Comments, m.Follows)

	return m
}

func (m *Metrics) CacheHit() {
	m.CacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheRequests.WithLabelValues("miss").Inc()
}
