package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics holds request counters for the service. Counters are atomics;
// the per-endpoint maps take the mutex.
type Metrics struct {
	TotalRequests  int64
	ActiveRequests int64
	TotalErrors    int64
	TotalLatencyMs int64
	MaxLatencyMs   int64
	StartTime      time.Time
	EndpointCounts map[string]int64
	StatusCodes    map[int]int64
	mu             sync.Mutex
}

var (
	globalMetrics *Metrics
	once          sync.Once
)

// Get returns the process-wide metrics instance.
func Get() *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime:      time.Now(),
			EndpointCounts: make(map[string]int64),
			StatusCodes:    make(map[int]int64),
		}
	})
	return globalMetrics
}

// Middleware records request counts, latency, and status codes.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := Get()

			atomic.AddInt64(&m.ActiveRequests, 1)
			start := time.Now()

			err := next(c)

			latencyMs := time.Since(start).Milliseconds()
			atomic.AddInt64(&m.ActiveRequests, -1)
			atomic.AddInt64(&m.TotalRequests, 1)
			atomic.AddInt64(&m.TotalLatencyMs, latencyMs)

			for {
				current := atomic.LoadInt64(&m.MaxLatencyMs)
				if latencyMs <= current || atomic.CompareAndSwapInt64(&m.MaxLatencyMs, current, latencyMs) {
					break
				}
			}

			statusCode := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			m.mu.Lock()
			m.EndpointCounts[fmt.Sprintf("%s %s", c.Request().Method, path)]++
			m.StatusCodes[statusCode]++
			m.mu.Unlock()

			if statusCode >= 400 {
				atomic.AddInt64(&m.TotalErrors, 1)
			}

			return err
		}
	}
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

// RegisterRoute exposes the counters at GET /metrics.
func RegisterRoute(e *echo.Echo) {
	e.GET("/metrics", func(c echo.Context) error {
		m := Get()
		total := atomic.LoadInt64(&m.TotalRequests)

		var avgLatency float64
		if total > 0 {
			avgLatency = float64(atomic.LoadInt64(&m.TotalLatencyMs)) / float64(total)
		}

		m.mu.Lock()
		endpointCounts := make(map[string]int64, len(m.EndpointCounts))
		for k, v := range m.EndpointCounts {
			endpointCounts[k] = v
		}
		statusCodes := make(map[int]int64, len(m.StatusCodes))
		for k, v := range m.StatusCodes {
			statusCodes[k] = v
		}
		m.mu.Unlock()

		return c.JSON(http.StatusOK, Snapshot{
			TotalRequests:  total,
			ActiveRequests: atomic.LoadInt64(&m.ActiveRequests),
			TotalErrors:    atomic.LoadInt64(&m.TotalErrors),
			AvgLatencyMs:   avgLatency,
			MaxLatencyMs:   atomic.LoadInt64(&m.MaxLatencyMs),
			UptimeSeconds:  time.Since(m.StartTime).Seconds(),
			EndpointCounts: endpointCounts,
			StatusCodes:    statusCodes,
		})
	})
}
