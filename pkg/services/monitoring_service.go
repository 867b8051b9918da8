package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the per-request id on responses.
	RequestIDHeader = "X-Request-ID"

	maxStoredLogs   = 10000
	maxRecentErrors = 10
)

// LogEntry is a single recorded request.
type LogEntry struct {
	RequestID    string        `json:"requestId"`
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// MonitoringService keeps an in-memory request log for the dashboard.
type MonitoringService struct {
	logs     []LogEntry
	mu       sync.RWMutex
	location *time.Location
	now      func() time.Time
}

func NewMonitoringService() *MonitoringService {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		ist = time.FixedZone("IST", 5*60*60+30*60)
	}
	return &MonitoringService{
		logs:     make([]LogEntry, 0),
		location: ist,
		now:      time.Now,
	}
}

// LogRequest appends entry, dropping the oldest entries past the cap.
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxStoredLogs {
		s.logs = s.logs[len(s.logs)-maxStoredLogs:]
	}
}

// LoggingMiddleware tags every request with an id and records it. Admin and
// monitoring calls are not recorded.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			RequestID:    requestID,
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: s.now().Sub(start),
		})
	}
}

type HourlyRequests struct {
	Time     string `json:"time"`
	Requests int    `json:"requests"`
}

type StatusClassCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type EndpointLatency struct {
	Endpoint     string `json:"endpoint"`
	ResponseTime int64  `json:"responseTime"`
}

// DashboardData is the aggregated view served to the monitoring page.
type DashboardData struct {
	RequestsOverTime []HourlyRequests   `json:"requestsOverTime"`
	Endpoints        map[string]int     `json:"endpoints"`
	StatusCodes      []StatusClassCount `json:"statusCodes"`
	AvgResponseTimes []EndpointLatency  `json:"avgResponseTimes"`
	RecentErrors     []LogEntry         `json:"recentErrors"`
}

// GetDashboardData aggregates the requests of the last periodHours hours.
// Hour buckets are labelled in IST.
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	if periodHours < 1 {
		periodHours = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().In(s.location)
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	// Buckets run oldest to newest, ending with the current hour.
	overTime := make([]HourlyRequests, periodHours)
	bucketIndex := make(map[string]int, periodHours)
	for i := 0; i < periodHours; i++ {
		t := now.Add(-time.Duration(periodHours-1-i) * time.Hour)
		bucketIndex[hourKey(t)] = i
		overTime[i] = HourlyRequests{Time: t.Format("15:00")}
	}

	endpoints := make(map[string]int)
	classes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	latencySum := make(map[string]time.Duration)

	for _, entry := range filtered {
		key := hourKey(entry.Timestamp.In(s.location))
		if i, ok := bucketIndex[key]; ok {
			overTime[i].Requests++
		}

		endpoints[entry.Path]++
		latencySum[entry.Path] += entry.ResponseTime

		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			classes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			classes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			classes["5xx Server Error"]++
		}
	}

	statusCodes := make([]StatusClassCount, 0, len(classes))
	for name, value := range classes {
		statusCodes = append(statusCodes, StatusClassCount{Name: name, Value: value})
	}
	sort.Slice(statusCodes, func(i, j int) bool { return statusCodes[i].Name < statusCodes[j].Name })

	latencies := make([]EndpointLatency, 0, len(latencySum))
	for path, total := range latencySum {
		latencies = append(latencies, EndpointLatency{
			Endpoint:     path,
			ResponseTime: total.Milliseconds() / int64(endpoints[path]),
		})
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i].Endpoint < latencies[j].Endpoint })

	recentErrors := make([]LogEntry, 0)
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < maxRecentErrors; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	return DashboardData{
		RequestsOverTime: overTime,
		Endpoints:        endpoints,
		StatusCodes:      statusCodes,
		AvgResponseTimes: latencies,
		RecentErrors:     recentErrors,
	}
}

// hourKey is the start of t's wall-clock hour. IST is not hour-aligned with
// UTC, so time.Truncate cannot be used.
func hourKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Format(time.RFC3339)
}
