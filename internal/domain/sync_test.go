package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSyncState(t *testing.T) {
	state := NewSyncState(SourceDexcom, "user-1")

	assert.Equal(t, SourceDexcom, state.Source)
	assert.Equal(t, "user-1", state.UserID)
	assert.True(t, state.LastRun.IsZero())
	assert.True(t, state.LastReadingAt.IsZero())
	assert.Zero(t, state.ErrorCount)
	assert.Empty(t, state.LastError)
}

func TestSyncStateRecordSuccess(t *testing.T) {
	state := NewSyncState(SourceDexcom, "user-1")
	run := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newest := run.Add(-5 * time.Minute)

	state.RecordError(run, "timeout")
	state.RecordSuccess(run, 12, newest)

	assert.Equal(t, run, state.LastRun)
	assert.Equal(t, newest, state.LastReadingAt)
	assert.Equal(t, 12, state.Imported)
	assert.Zero(t, state.ErrorCount)
	assert.Empty(t, state.LastError)

	// An older batch does not move the watermark back.
	state.RecordSuccess(run.Add(time.Minute), 0, newest.Add(-time.Hour))
	assert.Equal(t, newest, state.LastReadingAt)
	assert.Equal(t, 12, state.Imported)
}

func TestSyncStateRecordError(t *testing.T) {
	state := NewSyncState(SourceDexcom, "user-1")
	now := time.Now()

	state.RecordError(now, "API timeout")
	assert.Equal(t, 1, state.ErrorCount)
	assert.Equal(t, "API timeout", state.LastError)

	state.RecordError(now, "Connection refused")
	assert.Equal(t, 2, state.ErrorCount)
	assert.Equal(t, "Connection refused", state.LastError)
}

func TestSyncStateResetErrors(t *testing.T) {
	state := NewSyncState(SourceDexcom, "user-1")
	state.RecordError(time.Now(), "error 1")
	state.RecordError(time.Now(), "error 2")

	state.ResetErrors()

	assert.Zero(t, state.ErrorCount)
	assert.Empty(t, state.LastError)
}
