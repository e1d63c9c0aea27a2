package aggregate

import (
	"math"
	"testing"
)

func TestQuartilesFiveNumberSummary(t *testing.T) {
	summary, ok := Quartiles([]float64{40, 10, 20, 30, 50})
	if !ok {
		t.Fatalf("expected summary for non-empty input")
	}
	if summary.Min != 10 || summary.Max != 50 {
		t.Fatalf("unexpected min/max: %+v", summary)
	}
	if summary.Median != 30 {
		t.Fatalf("expected median 30, got %v", summary.Median)
	}
	if summary.Q1 != 20 || summary.Q3 != 40 {
		t.Fatalf("unexpected quartiles: %+v", summary)
	}
}

func TestQuartilesInterpolates(t *testing.T) {
	summary, ok := Quartiles([]float64{10, 20, 30, 40})
	if !ok {
		t.Fatalf("expected summary for non-empty input")
	}
	if math.Abs(summary.Median-25) > 1e-9 {
		t.Fatalf("expected interpolated median 25, got %v", summary.Median)
	}
	if math.Abs(summary.Q1-17.5) > 1e-9 || math.Abs(summary.Q3-32.5) > 1e-9 {
		t.Fatalf("unexpected quartiles: %+v", summary)
	}
}

func TestQuartilesSingleValue(t *testing.T) {
	summary, ok := Quartiles([]float64{42})
	if !ok {
		t.Fatalf("expected summary for single value")
	}
	if summary.Min != 42 || summary.Q1 != 42 || summary.Median != 42 || summary.Q3 != 42 || summary.Max != 42 {
		t.Fatalf("expected all values 42, got %+v", summary)
	}
}

func TestQuartilesEmpty(t *testing.T) {
	if _, ok := Quartiles(nil); ok {
		t.Fatalf("expected no summary for empty input")
	}
}

func TestQuartilesDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	if _, ok := Quartiles(values); !ok {
		t.Fatalf("expected summary")
	}
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Fatalf("input slice was sorted in place: %v", values)
	}
}
