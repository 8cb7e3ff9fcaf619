package metric

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector reports the number of domains holding a cached token, summed
// over every store added to it. The count is read at scrape time.
type Collector struct {
	desc *prometheus.Desc

	mu      sync.Mutex
	sources map[*source]struct{}
}

type source struct {
	count func() int
}

// NewCollector creates a collector with no stores.
func NewCollector() *Collector {
	return &Collector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "token", "cached_domains"),
			"Number of domains with a cached token.",
			nil, nil,
		),
		sources: make(map[*source]struct{}),
	}
}

// RegisterCollector adds count to the cached domains collector of reg,
// registering the collector on first use. The returned func removes count.
func RegisterCollector(reg prometheus.Registerer, count func() int) (func(), error) {
	c, err := register(reg, NewCollector())
	if err != nil {
		return nil, err
	}
	return c.Add(count), nil
}

// Add includes count in the reported total until the returned func is called.
func (c *Collector) Add(count func() int) func() {
	src := &source{count: count}
	c.mu.Lock()
	c.sources[src] = struct{}{}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.sources, src)
		c.mu.Unlock()
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	n := 0
	for src := range c.sources {
		n += src.count()
	}
	c.mu.Unlock()
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n))
}
