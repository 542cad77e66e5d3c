package usda

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" {
				t.Errorf("Expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/foods/search" {
				t.Errorf("Expected path '/foods/search', got %q", r.URL.Path)
			}
			if r.URL.Query().Get("api_key") != "test_key" {
				t.Errorf("Expected api_key 'test_key', got %q", r.URL.Query().Get("api_key"))
			}

			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"foods": [
					{
						"fdcId": 171688,
						"description": "Chicken breast, roasted",
						"dataType": "SR Legacy",
						"foodNutrients": [
							{"nutrientId": 1008, "value": 164.8},
							{"nutrientId": 1003, "value": 31.02},
							{"nutrientId": 1005, "value": 0},
							{"nutrientId": 1004, "value": 3.57}
						]
					},
					{
						"fdcId": 2100001,
						"description": "CHICKEN STRIPS",
						"brandName": "ACME",
						"dataType": "Branded",
						"servingSize": 85,
						"servingSizeUnit": "g",
						"foodNutrients": [
							{"nutrientId": 2048, "value": 190},
							{"nutrientId": 1003, "value": 14}
						]
					}
				]
			}`)
		}))
		defer server.Close()

		client := NewClient("test_key", server.URL)
		results, err := client.Search(context.Background(), "chicken breast", 10)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}

		first := results[0]
		if first.Name != "Chicken breast, roasted" {
			t.Errorf("Expected name 'Chicken breast, roasted', got %q", first.Name)
		}
		if first.Calories != 165 {
			t.Errorf("Expected calories rounded to 165, got %g", first.Calories)
		}
		if first.ProteinG != 31.0 {
			t.Errorf("Expected protein 31.0, got %g", first.ProteinG)
		}
		// No serving info: defaults to 100 g.
		if first.ServingSize != 100 || first.ServingUnit != "g" {
			t.Errorf("Expected 100 g default serving, got %g %s", first.ServingSize, first.ServingUnit)
		}

		second := results[1]
		if second.ServingSize != 85 {
			t.Errorf("Expected serving size 85, got %g", second.ServingSize)
		}
		if second.Calories != 190 {
			t.Errorf("Expected calories 190 via alternate energy ID, got %g", second.Calories)
		}
		if second.BrandName != "ACME" {
			t.Errorf("Expected brand 'ACME', got %q", second.BrandName)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient("bad_key", server.URL)
		if _, err := client.Search(context.Background(), "chicken", 10); err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
	})
}

func TestFood(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/171688" {
			t.Errorf("Expected path '/food/171688', got %q", r.URL.Path)
		}

		// Detail responses nest the nutrient ID and carry portions.
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{
			"fdcId": 171688,
			"description": "Chicken breast, roasted",
			"dataType": "SR Legacy",
			"foodNutrients": [
				{"nutrient": {"id": 1008}, "amount": 165},
				{"nutrient": {"id": 1003}, "amount": 31}
			],
			"foodPortions": [
				{"gramWeight": 140, "modifier": "1/2 breast"}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient("test_key", server.URL)
	result, err := client.Food(context.Background(), 171688)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Calories != 165 {
		t.Errorf("Expected 165 kcal, got %g", result.Calories)
	}
	if result.ServingSize != 140 || result.ServingUnit != "1/2 breast" {
		t.Errorf("Expected portion 140 '1/2 breast', got %g %q", result.ServingSize, result.ServingUnit)
	}
}

func TestQuickLookup(t *testing.T) {
	t.Run("PrefersGenericOverBranded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"foods": [
					{"fdcId": 1, "description": "BRAND X OATS", "dataType": "Branded"},
					{"fdcId": 2, "description": "Oats, raw", "dataType": "SR Legacy"}
				]
			}`)
		}))
		defer server.Close()

		client := NewClient("test_key", server.URL)
		result, err := client.QuickLookup(context.Background(), "oats")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result == nil {
			t.Fatal("Expected a result, got nil")
		}
		if result.Name != "Oats, raw" {
			t.Errorf("Expected the SR Legacy entry, got %q", result.Name)
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"foods": []}`)
		}))
		defer server.Close()

		client := NewClient("test_key", server.URL)
		result, err := client.QuickLookup(context.Background(), "qwertyuiop")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result != nil {
			t.Errorf("Expected nil result, got %+v", result)
		}
	})
}
