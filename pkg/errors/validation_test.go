package errors

import (
	"math"
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"negative", -3.5, -1e9, false},
		{"nan x", math.NaN(), 0, true},
		{"nan y", 0, math.NaN(), true},
		{"inf x", math.Inf(1), 0, true},
		{"neg inf y", 0, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(0, tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v, %v) error = %v, wantErr %v", tt.x, tt.y, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateEdgeIndices(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 int
		want   Code
	}{
		{"valid", 0, 3, ""},
		{"reversed", 3, 0, ""},
		{"negative first", -1, 2, ErrCodeInvalidEdgeReference},
		{"second past end", 1, 4, ErrCodeInvalidEdgeReference},
		{"self loop", 2, 2, ErrCodeSelfLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdgeIndices(0, tt.v1, tt.v2, 4)
			if got := GetCode(err); got != tt.want {
				t.Errorf("ValidateEdgeIndices(%d, %d) code = %q, want %q", tt.v1, tt.v2, got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "graph.json", false},
		{"nested", "testdata/ladder.json", false},
		{"absolute", "/tmp/graph.json", false},
		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"directory", "out/", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
