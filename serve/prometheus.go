// Copyright © 2021-2025 The Gomon Project.

package serve

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zosmac/godmesg/follow"
)

type (
	// prometheusCollector complies with the Prometheus Collector interface.
	prometheusCollector struct {
		stats func() follow.Stats
		hub   *Hub
	}

	// counter maps a metric description to its value in a Stats snapshot.
	counter struct {
		desc  *prometheus.Desc
		value func(follow.Stats) uint64
	}
)

var (
	// counters describes the record statistics exported.
	counters = []counter{
		{
			desc:  prometheus.NewDesc("godmesg_records_read_total", "Reads of the kernel log device that returned a record.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Read },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_malformed_total", "Records skipped because they could not be parsed.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Malformed },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_truncated_total", "Records longer than the read buffer.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Truncated },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_filtered_total", "Records rejected by the level and facility filters.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Filtered },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_rendered_total", "Records written to the output.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Rendered },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_oversized_total", "Records skipped because they exceed the read buffer.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Oversized },
		},
		{
			desc:  prometheus.NewDesc("godmesg_overwrites_total", "Reads that found the kernel ring buffer had overwritten the reader's position.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Overwrites },
		},
		{
			desc:  prometheus.NewDesc("godmesg_records_lost_total", "Records overwritten by the kernel before they were read.", nil, nil),
			value: func(s follow.Stats) uint64 { return s.Lost },
		},
	}

	clientsDesc = prometheus.NewDesc("godmesg_websocket_clients", "Connected websocket clients.", nil, nil)
	droppedDesc = prometheus.NewDesc("godmesg_websocket_dropped_total", "Records not delivered to slow websocket clients.", nil, nil)
)

// Describe returns metric descriptions for prometheusCollector.
func (c *prometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, ctr := range counters {
		ch <- ctr.desc
	}
	ch <- clientsDesc
	ch <- droppedDesc
}

// Collect returns the current state of all metrics to Prometheus.
func (c *prometheusCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	for _, ctr := range counters {
		ch <- prometheus.MustNewConstMetric(ctr.desc, prometheus.CounterValue, float64(ctr.value(s)))
	}
	ch <- prometheus.MustNewConstMetric(clientsDesc, prometheus.GaugeValue, float64(c.hub.Clients()))
	ch <- prometheus.MustNewConstMetric(droppedDesc, prometheus.CounterValue, float64(c.hub.Dropped()))
}
