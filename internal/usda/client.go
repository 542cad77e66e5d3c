package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"macrolog/internal/food"
)

const defaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

// Nutrient IDs from the FoodData Central schema. Energy appears under
// several IDs depending on the data type, checked in order.
var (
	calorieNutrientIDs = []int{1008, 2047, 2048}
	proteinNutrientIDs = []int{1003}
	carbsNutrientIDs   = []int{1005}
	fatNutrientIDs     = []int{1004}
)

// SearchResult is one food from a FoodData Central search, normalized to the
// catalog's macro shape. Macros refer to one serving of ServingSize
// ServingUnit.
type SearchResult struct {
	FDCID       int64   `json:"fdc_id"`
	Name        string  `json:"name"`
	BrandName   string  `json:"brand_name,omitempty"`
	DataType    string  `json:"data_type"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

// Item converts a search result into a catalog item ready to save. The caller
// assigns the ID.
func (r SearchResult) Item(id string) food.Item {
	return food.Item{
		ID:          id,
		Name:        r.Name,
		ServingSize: r.ServingSize,
		ServingUnit: r.ServingUnit,
		Calories:    r.Calories,
		ProteinG:    r.ProteinG,
		CarbsG:      r.CarbsG,
		FatG:        r.FatG,
	}
}

// Client is a FoodData Central API client.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a new FoodData Central client. An empty baseURL uses the
// public API endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

type searchRequest struct {
	Query     string   `json:"query"`
	PageSize  int      `json:"pageSize"`
	DataType  []string `json:"dataType"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
}

type searchResponse struct {
	Foods []foodData `json:"foods"`
}

type foodData struct {
	FDCID                int64          `json:"fdcId"`
	Description          string         `json:"description"`
	LowercaseDescription string         `json:"lowercaseDescription"`
	BrandName            string         `json:"brandName"`
	DataType             string         `json:"dataType"`
	ServingSize          float64        `json:"servingSize"`
	ServingSizeUnit      string         `json:"servingSizeUnit"`
	FoodNutrients        []foodNutrient `json:"foodNutrients"`
	FoodPortions         []foodPortion  `json:"foodPortions"`
}

// foodNutrient covers both response shapes: search results flatten the
// nutrient ID into nutrientId/value, detail responses nest it.
type foodNutrient struct {
	NutrientID int64   `json:"nutrientId"`
	Value      float64 `json:"value"`
	Amount     float64 `json:"amount"`
	Nutrient   struct {
		ID int64 `json:"id"`
	} `json:"nutrient"`
}

type foodPortion struct {
	GramWeight  float64 `json:"gramWeight"`
	Modifier    string  `json:"modifier"`
	MeasureUnit struct {
		Name string `json:"name"`
	} `json:"measureUnit"`
}

// Search queries FoodData Central by food name and returns normalized
// results. Survey and SR Legacy entries sort first so generic foods beat
// branded ones.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]SearchResult, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	body, err := json.Marshal(searchRequest{
		Query:     query,
		PageSize:  pageSize,
		DataType:  []string{"Survey (FNDDS)", "SR Legacy", "Foundation", "Branded"},
		SortBy:    "dataType.keyword",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/foods/search?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda api error: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResp.Foods))
	for _, fd := range searchResp.Foods {
		results = append(results, normalize(fd))
	}
	return results, nil
}

// Food fetches one food's detail record by its FDC ID.
func (c *Client) Food(ctx context.Context, fdcID int64) (*SearchResult, error) {
	endpoint := fmt.Sprintf("%s/food/%d?api_key=%s", c.baseURL, fdcID, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda api error: status %d", resp.StatusCode)
	}

	var fd foodData
	if err := json.NewDecoder(resp.Body).Decode(&fd); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := normalize(fd)
	return &result, nil
}

// QuickLookup searches for a food and returns the single best candidate,
// preferring generic Survey/SR Legacy data over branded entries. Returns nil
// when nothing matches.
func (c *Client) QuickLookup(ctx context.Context, query string) (*SearchResult, error) {
	results, err := c.Search(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	for i, r := range results {
		if r.DataType == "Survey (FNDDS)" || r.DataType == "SR Legacy" {
			return &results[i], nil
		}
	}
	return &results[0], nil
}

func normalize(fd foodData) SearchResult {
	name := fd.Description
	if name == "" {
		name = fd.LowercaseDescription
	}
	if name == "" {
		name = "Unknown Food"
	}

	servingSize := 100.0
	servingUnit := "g"
	if fd.ServingSize != 0 {
		servingSize = fd.ServingSize
		if fd.ServingSizeUnit != "" {
			servingUnit = fd.ServingSizeUnit
		}
	} else if len(fd.FoodPortions) > 0 {
		portion := fd.FoodPortions[0]
		if portion.GramWeight != 0 {
			servingSize = portion.GramWeight
		}
		if portion.Modifier != "" {
			servingUnit = portion.Modifier
		} else if portion.MeasureUnit.Name != "" {
			servingUnit = portion.MeasureUnit.Name
		}
	}

	return SearchResult{
		FDCID:       fd.FDCID,
		Name:        name,
		BrandName:   fd.BrandName,
		DataType:    fd.DataType,
		ServingSize: servingSize,
		ServingUnit: servingUnit,
		Calories:    math.Round(nutrientAmount(fd.FoodNutrients, calorieNutrientIDs)),
		ProteinG:    round1(nutrientAmount(fd.FoodNutrients, proteinNutrientIDs)),
		CarbsG:      round1(nutrientAmount(fd.FoodNutrients, carbsNutrientIDs)),
		FatG:        round1(nutrientAmount(fd.FoodNutrients, fatNutrientIDs)),
	}
}

func nutrientAmount(nutrients []foodNutrient, ids []int) float64 {
	for _, id := range ids {
		for _, n := range nutrients {
			if n.Nutrient.ID == int64(id) || n.NutrientID == int64(id) {
				if n.Amount != 0 {
					return n.Amount
				}
				return n.Value
			}
		}
	}
	return 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
