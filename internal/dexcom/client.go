// Package dexcom reads continuous glucose monitor data from Dexcom Share.
package dexcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// Dexcom Share API endpoints.
const (
	BaseURL    = "https://share2.dexcom.com/ShareWebServices/Services"
	BaseURLOUS = "https://shareous1.dexcom.com/ShareWebServices/Services"
	AppID      = "d89443d2-327c-4a6f-89e5-496bbb0317db"
)

// Limits of a single readings request.
const (
	MaxMinutes = 1440
	MaxCount   = 288
)

// ErrUnauthorized is returned when Dexcom rejects the credentials.
var ErrUnauthorized = errors.New("dexcom rejected the credentials")

var timestampPattern = regexp.MustCompile(`Date\((\d+)`)

// Client is an HTTP client for the Dexcom Share API.
type Client struct {
	Username   string
	Password   string
	HTTPClient *http.Client

	baseURL   string
	mu        sync.Mutex
	sessionID string
}

// NewClient creates a new Dexcom API client. An empty baseURL uses the US
// region.
func NewClient(username, password, baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Reading represents a glucose reading from Dexcom.
type Reading struct {
	WT    string // Timestamp like "Date(1234567890000)"
	ST    string // System time
	DT    string // Display time
	Value int    // Glucose in mg/dL
	Trend string // Trend direction
}

// Time returns when the reading was taken.
func (r Reading) Time() time.Time {
	ms := ParseTimestamp(r.WT)
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// ToBloodReading converts the reading to a sensor blood reading.
func (r Reading) ToBloodReading() *domain.BloodReading {
	return &domain.BloodReading{
		Type:   domain.ReadingSensor,
		Value:  float64(r.Value),
		Date:   r.Time(),
		Source: domain.SourceDexcom,
		Trend:  r.Trend,
	}
}

// authenticate gets a session ID from Dexcom.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	// Step 1: Get account ID
	var accountID string
	err := c.post(ctx, "/General/AuthenticatePublisherAccount", map[string]string{
		"accountName":   c.Username,
		"password":      c.Password,
		"applicationId": AppID,
	}, &accountID)
	if err != nil {
		return "", fmt.Errorf("auth failed: %w", err)
	}

	// Step 2: Get session ID
	var sessionID string
	err = c.post(ctx, "/General/LoginPublisherAccountById", map[string]string{
		"accountId":     accountID,
		"password":      c.Password,
		"applicationId": AppID,
	}, &sessionID)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	c.mu.Lock()
	c.sessionID = sessionID
	c.mu.Unlock()
	return sessionID, nil
}

func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.sessionID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}
	return c.authenticate(ctx)
}

// FetchReadings fetches up to maxCount readings taken in the last minutes,
// newest first. An expired session is renewed once.
func (c *Client) FetchReadings(ctx context.Context, maxCount, minutes int) ([]Reading, error) {
	sessionID, err := c.session(ctx)
	if err != nil {
		return nil, err
	}

	readings, err := c.fetch(ctx, sessionID, maxCount, minutes)
	var status statusError
	if errors.As(err, &status) {
		// Session might have expired, try re-authenticating
		if sessionID, err = c.authenticate(ctx); err != nil {
			return nil, err
		}
		readings, err = c.fetch(ctx, sessionID, maxCount, minutes)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	return readings, nil
}

func (c *Client) fetch(ctx context.Context, sessionID string, maxCount, minutes int) ([]Reading, error) {
	q := url.Values{}
	q.Set("sessionId", sessionID)
	q.Set("minutes", strconv.Itoa(minutes))
	q.Set("maxCount", strconv.Itoa(maxCount))

	var readings []Reading
	if err := c.post(ctx, "/Publisher/ReadPublisherLatestGlucoseValues?"+q.Encode(), nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

type statusError struct {
	code int
	body string
}

func (e statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case payload != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusInternalServerError):
		// Share answers bad credentials with 500 and an error document.
		return fmt.Errorf("%w: %s", ErrUnauthorized, statusError{resp.StatusCode, string(data)})
	default:
		return statusError{resp.StatusCode, string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ParseTimestamp parses a Dexcom timestamp "Date(1234567890000)" to Unix
// milliseconds. A zone suffix such as "Date(1234567890000-0500)" is ignored.
func ParseTimestamp(wt string) int64 {
	matches := timestampPattern.FindStringSubmatch(wt)
	if len(matches) < 2 {
		return 0
	}
	ms, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0
	}
	return ms
}
