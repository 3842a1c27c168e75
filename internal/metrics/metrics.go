package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Counter metrics
const (
	CounterTransitionsTotal        = "transitions_total"
	CounterTransitionsRejected     = "transitions_rejected_total"
	CounterRuleViolationsTotal     = "rule_violations_total"
	CounterRecommendationsCreated  = "recommendations_created_total"
	CounterAggregationsTotal       = "aggregations_total"
	CounterCacheHits               = "cache_hits_total"
	CounterCacheMisses             = "cache_misses_total"
	CounterMessagesPublished       = "messages_published_total"
	CounterMessagesPublishFailures = "messages_publish_failures_total"
	CounterErrorsTotal             = "errors_total"
)

// Error types
const (
	ErrorTypeValidation = "validation"
	ErrorTypeDatabase   = "database"
	ErrorTypeScoring    = "scoring"
	ErrorTypeInternal   = "internal"
)

// MetricsCollector provides a centralized way to collect and retrieve metrics
type MetricsCollector struct {
	mutex     sync.RWMutex
	counters  map[string]int64
	startTime time.Time
}

var (
	collector     *MetricsCollector
	collectorOnce sync.Once
)

// GetMetricsCollector returns the singleton metrics collector
func GetMetricsCollector() *MetricsCollector {
	collectorOnce.Do(func() {
		collector = &MetricsCollector{
			counters:  make(map[string]int64),
			startTime: time.Now(),
		}
	})
	return collector
}

// Increment increments a counter by one
func (m *MetricsCollector) Increment(counter string) {
	m.Add(counter, 1)
}

// Add adds a value to a counter
func (m *MetricsCollector) Add(counter string, delta int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.counters[counter] += delta
}

// RecordTransition records a committed lifecycle transition
func (m *MetricsCollector) RecordTransition(from, to string) {
	m.Increment(CounterTransitionsTotal)
	m.Increment(fmt.Sprintf("transitions_%s_to_%s", from, to))
}

// RecordRuleViolation records a business rule failure
func (m *MetricsCollector) RecordRuleViolation(rule string) {
	m.Increment(CounterRuleViolationsTotal)
	m.Increment(fmt.Sprintf("rule_violations_%s", rule))
}

// RecordError records an error by type
func (m *MetricsCollector) RecordError(errorType string) {
	m.Increment(CounterErrorsTotal)
	m.Increment(fmt.Sprintf("errors_%s_total", errorType))
}

// Snapshot returns a copy of all counters plus service uptime
func (m *MetricsCollector) Snapshot() map[string]interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	counters := make(map[string]int64, len(m.counters))
	for name, value := range m.counters {
		counters[name] = value
	}

	return map[string]interface{}{
		"counters":       counters,
		"uptime_seconds": time.Since(m.startTime).Seconds(),
	}
}
