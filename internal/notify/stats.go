package notify

import "sync/atomic"

// Stats counts dispatcher activity. Sent and Failed count individual emails.
type Stats struct {
	enqueued atomic.Int64
	dropped  atomic.Int64
	sent     atomic.Int64
	failed   atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Sent     int64 `json:"sent"`
	Failed   int64 `json:"failed"`
}

func (s *Stats) record(d Delivery) {
	for _, ok := range []bool{d.OperatorOK, d.WelcomeOK} {
		if ok {
			s.sent.Add(1)
		} else {
			s.failed.Add(1)
		}
	}
}

// Snapshot reads all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Enqueued: s.enqueued.Load(),
		Dropped:  s.dropped.Load(),
		Sent:     s.sent.Load(),
		Failed:   s.failed.Load(),
	}
}
