package workers

import (
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// latencyWindow is the number of recent pulls the average covers.
const latencyWindow = 5

// SyncReport is a snapshot of a job's counters.
type SyncReport struct {
	Runs       int
	Failures   int
	AvgLatency time.Duration
	LastError  string
}

type syncStats struct {
	mu       sync.Mutex
	latency  *movingaverage.MovingAverage
	runs     int
	failures int
	lastErr  string
}

func newSyncStats() *syncStats {
	return &syncStats{latency: movingaverage.New(latencyWindow)}
}

func (s *syncStats) record(dur time.Duration, err error) SyncReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	s.latency.Add(float64(dur/time.Microsecond) / 1000.0)
	if err != nil {
		s.failures++
		s.lastErr = err.Error()
	}

	return s.reportLocked()
}

func (s *syncStats) report() SyncReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reportLocked()
}

func (s *syncStats) reportLocked() SyncReport {
	r := SyncReport{
		Runs:      s.runs,
		Failures:  s.failures,
		LastError: s.lastErr,
	}
	if s.runs > 0 {
		r.AvgLatency = time.Duration(s.latency.Avg() * float64(time.Millisecond))
	}
	return r
}
