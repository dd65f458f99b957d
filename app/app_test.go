package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"insurecast/config"
	"insurecast/quote"
)

func writeModel(t *testing.T, dir, intercept string) string {
	t.Helper()
	path := filepath.Join(dir, "premium.json")
	body := `{
		"features": ["age", "gender", "bmi", "children", "smoker", "region"],
		"coefficients": [0, 0, 0, 0, 0, 0],
		"intercept": ` + intercept + `
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func testConfig(path string) *config.Config {
	cfg := config.Default()
	cfg.Model.Path = path
	return cfg
}

func TestNewQuotesWithLoadedModel(t *testing.T) {
	dir := t.TempDir()
	a, err := New(testConfig(writeModel(t, dir, "1500")), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.WatchModel(context.Background()); err != nil {
		t.Fatalf("watch disabled must be a no-op: %v", err)
	}

	result := a.Quoter.Quote(context.Background(), quote.Form{Age: "30", Height: "170", Weight: "70", Children: "0"})
	if !result.Predicted() || *result.Premium != 1500 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestReloadPurgesQuoteCache(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "1500")
	a, err := New(testConfig(path), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form := quote.Form{Age: "30", Height: "170", Weight: "70", Children: "0"}
	a.Quoter.Quote(context.Background(), form)

	writeModel(t, dir, "2500")
	if err := a.Models.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	result := a.Quoter.Quote(context.Background(), form)
	if result.Cached || *result.Premium != 2500 {
		t.Fatalf("expected fresh premium after reload, got %+v", result)
	}
}

func TestNewRejectsSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "premium.json")
	body := `{"features": ["age", "bmi", "gender", "children", "smoker", "region"], "coefficients": [0,0,0,0,0,0], "intercept": 1}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	_, err := New(testConfig(path), zaptest.NewLogger(t))
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema error, got %v", err)
	}
}
