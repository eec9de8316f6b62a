package domain

import "time"

// SyncStatus represents the current state of a bulk sync session
type SyncStatus string

const (
	SyncStatusStarting   SyncStatus = "starting"
	SyncStatusProcessing SyncStatus = "processing"
	SyncStatusCompleted  SyncStatus = "completed"
)

// MaxStoredSyncErrors bounds the error sample kept on a session. The true
// total is carried separately in ErrorCount, so progress reporting stays
// accurate on very large corpora without the record growing without bound.
const MaxStoredSyncErrors = 100

// SyncSessionTTL is how long an abandoned session record survives before
// self-clearing.
const SyncSessionTTL = time.Hour

// SyncItemError records one item's sync failure.
type SyncItemError struct {
	PostID  int64  `json:"post_id"`
	Message string `json:"error"`
}

// SyncSession is the durable record describing one in-progress or completed
// bulk synchronization run. At most one session exists process-wide.
//
// Invariants: Processed <= Total; Offset is monotonically non-decreasing
// while IsRunning.
type SyncSession struct {
	Total       int             `json:"total"`
	Processed   int             `json:"processed"`
	Offset      int             `json:"offset"`
	Errors      []SyncItemError `json:"errors"`
	ErrorCount  int             `json:"error_count"`
	Status      SyncStatus      `json:"status"`
	IsRunning   bool            `json:"is_running"`
	StartedAt   time.Time       `json:"started_at"`
	LastUpdated time.Time       `json:"last_updated"`
}

// NewSyncSession creates the session record written by a bulk sync start.
func NewSyncSession(total int) *SyncSession {
	now := time.Now()
	return &SyncSession{
		Total:       total,
		Processed:   0,
		Offset:      0,
		Errors:      []SyncItemError{},
		Status:      SyncStatusStarting,
		IsRunning:   true,
		StartedAt:   now,
		LastUpdated: now,
	}
}

// ApplyBatch folds one batch outcome into the session.
func (s *SyncSession) ApplyBatch(result *BatchResult) {
	s.Processed += result.Processed
	s.Offset = result.NextOffset
	s.ErrorCount += len(result.Errors)
	for _, e := range result.Errors {
		if len(s.Errors) >= MaxStoredSyncErrors {
			break
		}
		s.Errors = append(s.Errors, e)
	}
	if result.IsComplete {
		s.Status = SyncStatusCompleted
		s.IsRunning = false
	} else {
		s.Status = SyncStatusProcessing
	}
	s.LastUpdated = time.Now()
}

// BatchResult is the outcome of processing one page of items.
type BatchResult struct {
	Processed  int             `json:"processed"`
	Errors     []SyncItemError `json:"errors"`
	NextOffset int             `json:"next_offset"`
	IsComplete bool            `json:"is_complete"`
}
