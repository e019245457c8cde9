package semchan

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsProvider is implemented by every [Channel].
type StatsProvider interface {
	Stats() Stats
}

// Collector exports channel statistics as Prometheus metrics. Every
// metric carries a "channel" label holding the channel name.
//
// A Collector is not registered anywhere by default; register it with
// the registry of your choice:
//
//	col := semchan.NewCollector("app")
//	col.Add(jobs)
//	prometheus.MustRegister(col)
type Collector struct {
	mu       sync.Mutex
	channels []StatsProvider

	sent        *prometheus.Desc
	received    *prometheus.Desc
	length      *prometheus.Desc
	capacity    *prometheus.Desc
	closed      *prometheus.Desc
	sendWaiters *prometheus.Desc
	recvWaiters *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector whose metric names are prefixed with
// namespace.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "semchan", name),
			help,
			[]string{"channel"},
			nil,
		)
	}
	return &Collector{
		sent:        desc("sent_total", "Values delivered into the channel."),
		received:    desc("received_total", "Values taken out of the channel."),
		length:      desc("len", "Values currently buffered."),
		capacity:    desc("cap", "Channel capacity; 0 for rendezvous channels."),
		closed:      desc("closed", "1 once the channel has been closed."),
		sendWaiters: desc("select_send_waiters", "Select calls parked on a send case."),
		recvWaiters: desc("select_recv_waiters", "Select calls parked on a receive case."),
	}
}

// Add starts exporting the statistics of each given channel.
func (c *Collector) Add(chs ...StatsProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = append(c.channels, chs...)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sent
	ch <- c.received
	ch <- c.length
	ch <- c.capacity
	ch <- c.closed
	ch <- c.sendWaiters
	ch <- c.recvWaiters
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	channels := append([]StatsProvider(nil), c.channels...)
	c.mu.Unlock()

	for _, p := range channels {
		st := p.Stats()
		closed := 0.0
		if st.Closed {
			closed = 1
		}
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(st.Sent), st.Name)
		ch <- prometheus.MustNewConstMetric(c.received, prometheus.CounterValue, float64(st.Received), st.Name)
		ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(st.Len), st.Name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Cap), st.Name)
		ch <- prometheus.MustNewConstMetric(c.closed, prometheus.GaugeValue, closed, st.Name)
		ch <- prometheus.MustNewConstMetric(c.sendWaiters, prometheus.GaugeValue, float64(st.SendWaiters), st.Name)
		ch <- prometheus.MustNewConstMetric(c.recvWaiters, prometheus.GaugeValue, float64(st.RecvWaiters), st.Name)
	}
}
