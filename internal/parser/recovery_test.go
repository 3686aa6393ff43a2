package parser

import (
	"errors"
	"testing"
)

func TestSalvage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "two concatenated objects",
			input:    `{"a": 1}   {"b": 2}`,
			expected: 2,
		},
		{
			name:     "objects separated by junk",
			input:    `garbage {"a": 1} more garbage {"b": 2} trailing`,
			expected: 2,
		},
		{
			name:     "one valid one truncated",
			input:    `{"a": 1} {"b": `,
			expected: 1,
		},
		{
			name:     "nested braces stay one object",
			input:    `{"a": {"b": {"c": 3}}} {"d": 4}`,
			expected: 2,
		},
		{
			name:     "balanced span that is not JSON is dropped",
			input:    `{not json at all} {"a": 1}`,
			expected: 1,
		},
		{
			name:     "escaped newline literals between objects",
			input:    `{"a": 1}\n{"b": 2}`,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects, err := Salvage(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(objects) != tt.expected {
				t.Errorf("expected %d objects, got %d", tt.expected, len(objects))
			}
		})
	}
}

func TestSalvage_NothingRecoverable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no braces at all", input: "just some text"},
		{name: "empty input", input: ""},
		{name: "only truncated object", input: `{"a": `},
		{name: "balanced junk only", input: `{not json}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Salvage(tt.input)
			if !errors.Is(err, ErrNoSalvage) {
				t.Errorf("expected ErrNoSalvage, got %v", err)
			}
		})
	}
}

func TestSalvagedFormat(t *testing.T) {
	hbbtv := map[string]any{"test_case_id": "TC1", "state": "Successful"}
	plain := map[string]any{"foo": "bar"}

	t.Run("all hbbtv objects classify as batch", func(t *testing.T) {
		got := SalvagedFormat([]map[string]any{hbbtv, hbbtv, hbbtv, plain})
		if got != FormatHbbTVBatch {
			t.Errorf("expected batch, got %v", got)
		}
	})

	t.Run("mixed objects within probe stay opaque", func(t *testing.T) {
		got := SalvagedFormat([]map[string]any{hbbtv, plain, hbbtv})
		if got != FormatUnrecognized {
			t.Errorf("expected unrecognized, got %v", got)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if got := SalvagedFormat(nil); got != FormatUnrecognized {
			t.Errorf("expected unrecognized, got %v", got)
		}
	})
}
