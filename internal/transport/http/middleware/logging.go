package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"workforce/internal/platform/metrics"
)

type logEntry struct {
	Timestamp string `json:"ts"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Duration  int64  `json:"durationMs"`
	RequestID string `json:"requestId"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(recorder.status)).
			Observe(duration.Seconds())

		entry := logEntry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    recorder.status,
			Duration:  duration.Milliseconds(),
			RequestID: GetRequestID(r.Context()),
		}
		payload, _ := json.Marshal(entry)
		log.Println(string(payload))
	})
}
