package datalinks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
endpoints:
  - name: scoutgpt_analysis
    url: http://scoutgpt.internal/analyze
    method: POST
  - name: scoutgpt_backup
    url: http://scoutgpt-backup.internal/analyze
    method: POST
datasets:
  - table: taxassessor
    domain: assessor
    description: county tax assessments
  - table: avm
    domain: valuation
contracts:
  - name: analyze_batch
    input:
      signal_batch: list
      context: object
    output:
      classification: string
      confidence: float
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(cfg.Endpoints) != 2 {
		t.Errorf("len(Endpoints) = %d, want 2", len(cfg.Endpoints))
	}
	if got := cfg.DatasetDomain("taxassessor"); got != "assessor" {
		t.Errorf("DatasetDomain = %q, want assessor", got)
	}
	if got := cfg.DatasetDomain("nope"); got != "" {
		t.Errorf("DatasetDomain(nope) = %q, want empty", got)
	}

	ct, ok := cfg.Contract("analyze_batch")
	if !ok {
		t.Fatal("Contract analyze_batch not found")
	}
	if ct.Input["signal_batch"] != "list" || ct.Output["confidence"] != "float" {
		t.Errorf("contract schemas = %v / %v", ct.Input, ct.Output)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	doc := `
endpoints:
  - name: a
    url: http://x
    verb: POST
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("Parse accepted unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing endpoint url",
			doc:     "endpoints:\n  - name: a\n",
			wantErr: "url is required",
		},
		{
			name:    "missing endpoint name",
			doc:     "endpoints:\n  - url: http://x\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate endpoint",
			doc:     "endpoints:\n  - name: a\n    url: http://x\n  - name: a\n    url: http://y\n",
			wantErr: "duplicate name",
		},
		{
			name:    "duplicate dataset table",
			doc:     "datasets:\n  - table: t\n  - table: t\n",
			wantErr: "duplicate table",
		},
		{
			name:    "duplicate contract",
			doc:     "contracts:\n  - name: c\n  - name: c\n",
			wantErr: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEndpointResolution(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if ep, ok := cfg.Endpoint("scoutgpt_backup"); !ok || ep.URL != "http://scoutgpt-backup.internal/analyze" {
		t.Errorf("named lookup = %v %v", ep, ok)
	}
	if ep, ok := cfg.Endpoint(""); !ok || ep.Name != DefaultEndpointName {
		t.Errorf("default lookup = %v %v", ep, ok)
	}
	if ep, ok := cfg.Endpoint("missing"); !ok || ep.Name != DefaultEndpointName {
		t.Errorf("unknown name should fall back to default, got %v %v", ep, ok)
	}

	// No default entry: first endpoint wins.
	noDefault := &Config{Endpoints: []Endpoint{{Name: "x", URL: "http://x"}}}
	if ep, ok := noDefault.Endpoint("missing"); !ok || ep.Name != "x" {
		t.Errorf("first-endpoint fallback = %v %v", ep, ok)
	}

	empty := &Config{}
	if _, ok := empty.Endpoint(""); ok {
		t.Error("empty config should resolve nothing")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data_links.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Endpoints) != 2 {
		t.Errorf("len(Endpoints) = %d, want 2", len(cfg.Endpoints))
	}

	if _, err := Load(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("Load of missing file should error")
	}

	def, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if ep, ok := def.Endpoint(""); !ok || ep.Name != DefaultEndpointName {
		t.Errorf("default config endpoint = %v %v", ep, ok)
	}
}

func TestHash(t *testing.T) {
	a, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() == "" || a.Hash() != b.Hash() {
		t.Errorf("Hash not stable: %q vs %q", a.Hash(), b.Hash())
	}

	b.Endpoints[0].URL = "http://elsewhere"
	if a.Hash() == b.Hash() {
		t.Error("Hash unchanged after modification")
	}
}

func TestOverrideEndpoint(t *testing.T) {
	cfg := Default()
	cfg.OverrideEndpoint(DefaultEndpointName, "http://oracle.internal:9000/analyze")
	if len(cfg.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(cfg.Endpoints))
	}
	if ep, _ := cfg.Endpoint(""); ep.URL != "http://oracle.internal:9000/analyze" {
		t.Errorf("URL = %q", ep.URL)
	}

	cfg.OverrideEndpoint("other", "http://other:8000/run")
	if len(cfg.Endpoints) != 2 {
		t.Fatalf("expected appended endpoint, got %d", len(cfg.Endpoints))
	}
	if ep, ok := cfg.Endpoint("other"); !ok || ep.Method != "POST" {
		t.Errorf("appended endpoint = %v %v", ep, ok)
	}
}
