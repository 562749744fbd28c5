package dexcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/glucowise-go/internal/domain"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{
			name:     "valid timestamp",
			input:    "Date(1705887600000)",
			expected: 1705887600000,
		},
		{
			name:     "with zone offset",
			input:    "Date(1705887600000-0500)",
			expected: 1705887600000,
		},
		{
			name:     "invalid format - no Date wrapper",
			input:    "1705887600000",
			expected: 0,
		},
		{
			name:     "invalid format - empty",
			input:    "",
			expected: 0,
		},
		{
			name:     "invalid format - malformed",
			input:    "Date(abc)",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTimestamp(tt.input)
			if result != tt.expected {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestReadingToBloodReading(t *testing.T) {
	r := Reading{WT: "Date(1705887600000)", Value: 142, Trend: "Flat"}

	br := r.ToBloodReading()
	assert.Equal(t, 142.0, br.Value)
	assert.Equal(t, domain.ReadingSensor, br.Type)
	assert.Equal(t, domain.SourceDexcom, br.Source)
	assert.Equal(t, "Flat", br.Trend)
	assert.Equal(t, int64(1705887600000), br.Date.UnixMilli())
}

// fakeShare emulates the three Share endpoints. With expire set the first
// session is rejected.
type fakeShare struct {
	logins   atomic.Int32
	fetches  atomic.Int32
	password string
	readings []Reading
	expire   bool
}

func (f *fakeShare) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/General/AuthenticatePublisherAccount", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["password"] != f.password {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"Code":"AccountPasswordInvalid"}`))
			return
		}
		_ = json.NewEncoder(w).Encode("account-1")
	})
	mux.HandleFunc("/General/LoginPublisherAccountById", func(w http.ResponseWriter, r *http.Request) {
		n := f.logins.Add(1)
		_ = json.NewEncoder(w).Encode(fmt.Sprintf("session-%d", n))
	})
	mux.HandleFunc("/Publisher/ReadPublisherLatestGlucoseValues", func(w http.ResponseWriter, r *http.Request) {
		f.fetches.Add(1)
		if f.expire && r.URL.Query().Get("sessionId") == "session-1" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"Code":"SessionIdNotFound"}`))
			return
		}
		assert.NotEmpty(t, r.URL.Query().Get("minutes"))
		assert.NotEmpty(t, r.URL.Query().Get("maxCount"))
		_ = json.NewEncoder(w).Encode(f.readings)
	})
	return mux
}

func newFakeClient(t *testing.T, f *fakeShare) *Client {
	t.Helper()
	server := httptest.NewServer(f.handler(t))
	t.Cleanup(server.Close)
	return NewClient("user", "secret", server.URL)
}

func TestFetchReadings(t *testing.T) {
	f := &fakeShare{password: "secret", readings: []Reading{
		{WT: "Date(1705887600000)", Value: 120, Trend: "Flat"},
		{WT: "Date(1705887300000)", Value: 118, Trend: "Flat"},
	}}
	client := newFakeClient(t, f)

	readings, err := client.FetchReadings(context.Background(), 2, 30)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 120, readings[0].Value)

	// The session is reused.
	_, err = client.FetchReadings(context.Background(), 2, 30)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.logins.Load())
}

func TestFetchReadingsRenewsExpiredSession(t *testing.T) {
	f := &fakeShare{password: "secret", expire: true, readings: []Reading{{WT: "Date(1705887600000)", Value: 99}}}
	client := newFakeClient(t, f)

	readings, err := client.FetchReadings(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, int32(2), f.logins.Load())
	assert.Equal(t, int32(2), f.fetches.Load())
}

func TestFetchReadingsBadCredentials(t *testing.T) {
	f := &fakeShare{password: "other"}
	client := newFakeClient(t, f)

	_, err := client.FetchReadings(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.fetches.Load())
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		last        time.Time
		wantMinutes int
		wantCount   int
	}{
		{"first run", time.Time{}, 1440, 288},
		{"recent", now.Add(-2 * time.Minute), 5, 2},
		{"an hour ago", now.Add(-time.Hour), 61, 13},
		{"days ago", now.AddDate(0, 0, -3), 1440, 288},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, count := window(tt.last, now)
			if minutes != tt.wantMinutes || count != tt.wantCount {
				t.Errorf("window() = (%d, %d), want (%d, %d)", minutes, count, tt.wantMinutes, tt.wantCount)
			}
		})
	}
}
