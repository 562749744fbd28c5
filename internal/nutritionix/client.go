// Package nutritionix looks up foods and their nutrients on Nutritionix.
package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
)

// BaseURL is the Nutritionix v2 API.
const BaseURL = "https://trackapi.nutritionix.com/v2"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// PlaceholderGI is the glycemic index given to looked up foods. Nutritionix
// does not report one.
const PlaceholderGI = 50

// ErrNoFood is returned when a lookup matches nothing.
var ErrNoFood = errors.New("no food matched")

// Client is an HTTP client for the Nutritionix API.
type Client struct {
	AppID      string
	AppKey     string
	HTTPClient *http.Client
	testURL    string // For testing with httptest
}

// NewClient creates a new Nutritionix client.
func NewClient(appID, appKey string) *Client {
	return &Client{
		AppID:  appID,
		AppKey: appKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Endpoint returns the full URL of an API path.
func (c *Client) Endpoint(path string) string {
	if c.testURL != "" {
		return c.testURL + path
	}
	return BaseURL + path
}

// AltMeasure is another unit a food can be measured in.
type AltMeasure struct {
	Measure       string  `json:"measure"`
	ServingWeight float64 `json:"serving_weight"`
	Qty           float64 `json:"qty"`
}

// Food is the nutrient table of one serving of a food.
type Food struct {
	Name          string       `json:"food_name"`
	ServingQty    float64      `json:"serving_qty"`
	ServingUnit   string       `json:"serving_unit"`
	ServingWeight float64      `json:"serving_weight_grams"`
	Calories      float64      `json:"nf_calories"`
	Carbs         float64      `json:"nf_total_carbohydrate"`
	Fats          float64      `json:"nf_total_fat"`
	Proteins      float64      `json:"nf_protein"`
	Fiber         float64      `json:"nf_dietary_fiber"`
	AltMeasures   []AltMeasure `json:"alt_measures"`
}

// Measures lists the units the food can be measured in, the serving unit
// first.
func (f Food) Measures() []string {
	seen := map[string]bool{f.ServingUnit: true}
	measures := []string{f.ServingUnit}
	for _, m := range f.AltMeasures {
		if !seen[m.Measure] {
			seen[m.Measure] = true
			measures = append(measures, m.Measure)
		}
	}
	return measures
}

// Serving returns one reference serving of the food as a food item.
func (f Food) Serving() domain.FoodItem {
	return domain.FoodItem{
		Name:     f.Name,
		Quantity: f.ServingQty,
		Calories: f.Calories,
		Carbs:    f.Carbs,
		Fats:     f.Fats,
		Proteins: f.Proteins,
		Fiber:    f.Fiber,
		GIIndex:  PlaceholderGI,
	}
}

// Portion returns qty units of measure of the food as a food item. An empty
// or unknown measure means the serving unit. Quantity of the result is qty
// in the chosen measure.
func (f Food) Portion(qty float64, measure string) (domain.FoodItem, error) {
	var altWeight float64
	for _, m := range f.AltMeasures {
		if m.Measure == measure && measure != f.ServingUnit {
			altWeight = m.ServingWeight
			break
		}
	}
	factor := nutrition.ServingMultiplier(nutrition.Serving{Qty: f.ServingQty, WeightGrams: f.ServingWeight}, qty, altWeight)

	item, err := f.Serving().AdjustedNutrients(factor * f.ServingQty)
	if err != nil {
		return domain.FoodItem{}, fmt.Errorf("failed to scale %s: %w", f.Name, err)
	}
	item.Quantity = qty
	return item, nil
}

// Suggestion is a search hit.
type Suggestion struct {
	Name        string  `json:"food_name"`
	ServingUnit string  `json:"serving_unit"`
	ServingQty  float64 `json:"serving_qty"`
}

// Search returns the common foods whose name matches query.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.Endpoint("/search/instant?query="+url.QueryEscape(query)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp struct {
		Common []Suggestion `json:"common"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Common, nil
}

// Lookup returns the nutrient table of the first food matching query.
func (c *Client) Lookup(ctx context.Context, query string) (*Food, error) {
	data, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint("/natural/nutrients"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		Foods []Food `json:"foods"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Foods) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFood, query)
	}
	return &resp.Foods[0], nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.AppKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Nutritionix answers unknown natural language queries with 404.
	if resp.StatusCode == http.StatusNotFound {
		return ErrNoFood
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
