package postgres

import (
	"testing"

	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/portfolio/internal/selection"
)

func TestColorFromVector(t *testing.T) {
	tests := []struct {
		name    string
		vec     *pgvector.Vector
		want    selection.Color
		wantErr bool
	}{
		{"null", nil, selection.Color{}, false},
		{"rgb", ptr(pgvector.NewVector([]float32{10, 20, 30})), selection.RGB(10, 20, 30), false},
		{"rounds", ptr(pgvector.NewVector([]float32{9.6, 0, 254.7})), selection.RGB(10, 0, 255), false},
		{"wrong dimensions", ptr(pgvector.NewVector([]float32{1, 2})), selection.Color{}, true},
		{"out of range", ptr(pgvector.NewVector([]float32{1, 2, 300})), selection.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := colorFromVector(tt.vec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestColorParam(t *testing.T) {
	if colorParam(selection.Color{}) != nil {
		t.Error("absent color should be stored as NULL")
	}
	v, ok := colorParam(selection.RGB(1, 2, 3)).(pgvector.Vector)
	if !ok {
		t.Fatal("expected a pgvector.Vector")
	}
	s := v.Slice()
	if len(s) != 3 || s[0] != 1 || s[1] != 2 || s[2] != 3 {
		t.Errorf("unexpected vector %v", s)
	}
}

func ptr[T any](v T) *T {
	return &v
}
