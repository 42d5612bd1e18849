package season

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `meta:
  campaign_id: aman-2024
  crop: rice
  timezone: Asia/Dhaka
training:
  years: [2018, 2019, 2020, 2021, 2022]
scoring:
  years: [2023, 2024]
`

func writeCampaign(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "season.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write campaign: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, yamlData, err := Load(writeCampaign(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Meta.CampaignID != "aman-2024" {
		t.Errorf("expected campaign_id=aman-2024, got %s", cfg.Meta.CampaignID)
	}
	if len(cfg.Training.Years) != 5 {
		t.Errorf("expected 5 training years, got %d", len(cfg.Training.Years))
	}
	if len(yamlData) == 0 {
		t.Error("expected raw yaml bytes")
	}

	hash, err := Hash(cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	hash2, _ := Hash(cfg)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}
}

func TestLoadUnknownField(t *testing.T) {
	_, _, err := Load(writeCampaign(t, sampleYAML+"extra_field: oops\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing campaign_id", func(c *Config) { c.Meta.CampaignID = "" }, true},
		{"missing crop", func(c *Config) { c.Meta.Crop = "" }, true},
		{"no training years", func(c *Config) { c.Training.Years = nil }, true},
		{"no scoring years", func(c *Config) { c.Scoring.Years = nil }, true},
		{"duplicate training year", func(c *Config) { c.Training.Years = []int{2018, 2018} }, true},
		{"year out of range", func(c *Config) { c.Scoring.Years = []int{123} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Meta:     Meta{CampaignID: "aman-2024", Crop: "rice"},
				Training: Training{Years: []int{2018, 2019}},
				Scoring:  Scoring{Years: []int{2023}},
			}
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
