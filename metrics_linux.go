// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	promNamespace = "mqueue"

	queueLabel = "queue"
)

// Collector exports queue depth and capacity gauges for one handle.
// Collect refreshes the volatile attributes through the handle, so the
// collector must not be registered while the handle is used concurrently
// without external synchronization.
type Collector struct {
	queue *Queue

	messagesDesc       *prometheus.Desc
	freeDesc           *prometheus.Desc
	maxMessagesDesc    *prometheus.Desc
	maxMessageSizeDesc *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for the given queue, labelled with the
// queue name.
func NewCollector(q *Queue) *Collector {
	labels := []string{
		queueLabel,
	}

	return &Collector{
		queue: q,

		messagesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(promNamespace, "", "messages"),
			"Number of messages currently in the queue",
			labels,
			nil,
		),
		freeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(promNamespace, "", "messages_free"),
			"Number of additional messages the queue can hold",
			labels,
			nil,
		),
		maxMessagesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(promNamespace, "", "max_messages"),
			"Maximum number of messages the queue can hold",
			labels,
			nil,
		),
		maxMessageSizeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(promNamespace, "", "max_message_size_bytes"),
			"Maximum size of a single message",
			labels,
			nil,
		),
	}
}

// Describe implements the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.messagesDesc
	ch <- c.freeDesc
	ch <- c.maxMessagesDesc
	ch <- c.maxMessageSizeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	name := c.queue.Name()

	// Fixed at queue creation.
	ch <- prometheus.MustNewConstMetric(
		c.maxMessagesDesc,
		prometheus.GaugeValue,
		float64(c.queue.Cap()),
		name,
	)
	ch <- prometheus.MustNewConstMetric(
		c.maxMessageSizeDesc,
		prometheus.GaugeValue,
		float64(c.queue.MaxMessageSize()),
		name,
	)

	// Volatile, refreshed per scrape.
	n, err := c.queue.Len()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.messagesDesc, err)
		ch <- prometheus.NewInvalidMetric(c.freeDesc, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(
		c.messagesDesc,
		prometheus.GaugeValue,
		float64(n),
		name,
	)
	ch <- prometheus.MustNewConstMetric(
		c.freeDesc,
		prometheus.GaugeValue,
		float64(c.queue.Cap()-n),
		name,
	)
}
