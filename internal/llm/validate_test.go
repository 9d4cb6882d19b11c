package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func tutorSchema() *Schema {
	return &Schema{
		Name: "test-tutor",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"indonesian": map[string]any{"type": "string"},
				"english":    map[string]any{"type": "string"},
				"isHelp":     map[string]any{"type": "boolean"},
				"language":   map[string]any{"type": "string", "enum": []string{"id", "en", "mixed"}},
				"fix": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"corrected": map[string]any{"type": "string"},
					},
					"required": []string{"corrected"},
				},
				"replies": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "maxItems": 3},
			},
			"required": []string{"indonesian", "english"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"indonesian":"Halo","english":"Hi","isHelp":false,"language":"id","replies":["a","b"]}`, true},
		{"required only", `{"indonesian":"Halo","english":"Hi"}`, true},
		{"missing required", `{"indonesian":"Halo"}`, false},
		{"wrong type", `{"indonesian":"Halo","english":"Hi","isHelp":"no"}`, false},
		{"bad enum", `{"indonesian":"Halo","english":"Hi","language":"fr"}`, false},
		{"too many items", `{"indonesian":"Halo","english":"Hi","replies":["a","b","c","d"]}`, false},
		{"nested valid", `{"indonesian":"Halo","english":"Hi","fix":{"corrected":"Saya mau makan"}}`, true},
		{"nested missing", `{"indonesian":"Halo","english":"Hi","fix":{}}`, false},
		{"malformed", `{"indonesian":`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tutorSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("content = %q", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	bad := &Schema{Name: "test-bad", Definition: map[string]any{"type": 12}}
	var inv *ErrInvalidResponse
	if err := validateResponse(bad, json.RawMessage(`{}`)); !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
