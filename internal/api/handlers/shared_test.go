package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleRequest struct {
	Name string `json:"name"`
}

func TestParseJSON(t *testing.T) {
	newRequest := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	t.Run("decodes known fields", func(t *testing.T) {
		got, err := parseJSON[sampleRequest](newRequest(`{"name": "rent"}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "rent" {
			t.Errorf("Expected name 'rent', got '%s'", got.Name)
		}
	})

	t.Run("strict parsing rejects unknown fields", func(t *testing.T) {
		if _, err := parseJSON[sampleRequest](newRequest(`{"name": "rent", "extra": 1}`)); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("lenient parsing ignores unknown fields", func(t *testing.T) {
		got, err := parseLenientJSON[sampleRequest](newRequest(`{"name": "rent", "extra": 1}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "rent" {
			t.Errorf("Expected name 'rent', got '%s'", got.Name)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		if _, err := parseJSON[sampleRequest](newRequest("")); err == nil {
			t.Error("Expected error for empty body")
		}
		got, err := parseOptionalJSON[sampleRequest](newRequest(""))
		if err != nil {
			t.Fatalf("Expected optional body to be accepted, got %v", err)
		}
		if got.Name != "" {
			t.Errorf("Expected zero value, got '%s'", got.Name)
		}
	})
}
