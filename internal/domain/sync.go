package domain

import "time"

// SyncState tracks an external import source for one user.
type SyncState struct {
	Source        string
	UserID        string
	LastRun       time.Time
	LastReadingAt time.Time
	Imported      int
	ErrorCount    int
	LastError     string
}

// NewSyncState creates an empty sync state.
func NewSyncState(source, userID string) *SyncState {
	return &SyncState{
		Source: source,
		UserID: userID,
	}
}

// RecordSuccess records a completed import run.
// LastReadingAt only moves forward.
func (s *SyncState) RecordSuccess(at time.Time, imported int, newest time.Time) {
	s.LastRun = at
	s.Imported += imported
	if newest.After(s.LastReadingAt) {
		s.LastReadingAt = newest
	}
	s.ResetErrors()
}

// RecordError records a failed import run.
func (s *SyncState) RecordError(at time.Time, errMsg string) {
	s.LastRun = at
	s.ErrorCount++
	s.LastError = errMsg
}

// ResetErrors clears the error state.
func (s *SyncState) ResetErrors() {
	s.ErrorCount = 0
	s.LastError = ""
}
