package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), true},
		{"touching edge", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"apart vertically", NewBox(0, 0, 10, 10), NewBox(0, 30, 10, 10), false},
		{"contained", NewBox(0, 0, 100, 100), NewBox(10, 10, 2, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(100, 50, 20, 10)

	if b.Left() != 90 || b.Right() != 110 {
		t.Errorf("horizontal edges = (%f, %f), expected (90, 110)", b.Left(), b.Right())
	}
	if b.Top() != 45 || b.Bottom() != 55 {
		t.Errorf("vertical edges = (%f, %f), expected (45, 55)", b.Top(), b.Bottom())
	}

	moved := b.Translate(5, -5)
	if moved.CX != 105 || moved.CY != 45 {
		t.Errorf("Translate() center = (%f, %f), expected (105, 45)", moved.CX, moved.CY)
	}
	if b.CX != 100 {
		t.Error("Translate() must not modify the receiver")
	}
}
