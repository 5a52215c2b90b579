package demand

import "testing"

func TestRect_RightBottom(t *testing.T) {
	r := Rect{Left: 3, Top: -2, Width: 10, Height: 5}
	if got := r.Right(); got != 13 {
		t.Errorf("Right() = %d, want 13", got)
	}
	if got := r.Bottom(); got != 3 {
		t.Errorf("Bottom() = %d, want 3", got)
	}
}

func TestRect_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero value", Rect{}, true},
		{"zero width", Rect{Width: 0, Height: 5}, true},
		{"zero height", Rect{Width: 5, Height: 0}, true},
		{"negative width", Rect{Width: -1, Height: 5}, true},
		{"unit", Rect{Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.r.IsEmpty(); got != tt.want {
			t.Errorf("%s: IsEmpty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRect_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			"overlap",
			Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10},
			Rect{5, 5, 5, 5},
		},
		{
			"contained",
			Rect{0, 0, 10, 10}, Rect{2, 3, 4, 5},
			Rect{2, 3, 4, 5},
		},
		{
			"disjoint",
			Rect{0, 0, 5, 5}, Rect{10, 10, 5, 5},
			Rect{},
		},
		{
			"touching edges",
			Rect{0, 0, 5, 5}, Rect{5, 0, 5, 5},
			Rect{},
		},
		{
			"negative coordinates",
			Rect{-5, -5, 10, 10}, Rect{0, 0, 10, 10},
			Rect{0, 0, 5, 5},
		},
	}
	for _, tt := range tests {
		if got := tt.a.Intersect(tt.b); got != tt.want {
			t.Errorf("%s: Intersect = %+v, want %+v", tt.name, got, tt.want)
		}
		// Intersection is symmetric.
		if got := tt.b.Intersect(tt.a); got != tt.want {
			t.Errorf("%s: reversed Intersect = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{0, 0, 2, 2}
	b := Rect{5, 5, 1, 1}
	want := Rect{0, 0, 6, 6}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v, want %+v", got, b)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{2, 2, 4, 4}
	if !r.ContainsPoint(2, 2) {
		t.Error("should contain top-left corner")
	}
	if r.ContainsPoint(6, 6) {
		t.Error("should not contain exclusive bottom-right corner")
	}
	if !r.ContainsRect(Rect{3, 3, 2, 2}) {
		t.Error("should contain inner rect")
	}
	if r.ContainsRect(Rect{3, 3, 4, 4}) {
		t.Error("should not contain overhanging rect")
	}
	if !r.ContainsRect(Rect{}) {
		t.Error("every rect contains the empty rect")
	}
}

func TestRect_TranslateGrow(t *testing.T) {
	r := Rect{1, 2, 3, 4}
	if got := r.Translate(10, -2); got != (Rect{11, 0, 3, 4}) {
		t.Errorf("Translate = %+v", got)
	}
	if got := r.Grow(1); got != (Rect{0, 1, 5, 6}) {
		t.Errorf("Grow(1) = %+v", got)
	}
	if got := (Rect{0, 0, 2, 2}).Grow(-1); !got.IsEmpty() {
		t.Errorf("over-shrunk rect should be empty, got %+v", got)
	}
}

// TestRect_ClipTo checks the clip properties: the result is always inside
// {0,0,w,h}, and a rect already within bounds is unchanged.
func TestRect_ClipTo(t *testing.T) {
	bounds := Rect{0, 0, 100, 50}
	tests := []Rect{
		{0, 0, 100, 50},
		{10, 10, 10, 10},
		{-5, -5, 10, 10},
		{95, 45, 10, 10},
		{-100, -100, 1000, 1000},
		{200, 200, 10, 10},
		{0, 0, 0, 0},
	}
	for _, r := range tests {
		got := r.ClipTo(100, 50)
		if !bounds.ContainsRect(got) {
			t.Errorf("ClipTo(%+v) = %+v escapes bounds", r, got)
		}
		if bounds.ContainsRect(r) && !r.IsEmpty() && got != r {
			t.Errorf("ClipTo(%+v) = %+v, want unchanged", r, got)
		}
	}
}

func TestRect_Area(t *testing.T) {
	if got := (Rect{0, 0, 4, 5}).Area(); got != 20 {
		t.Errorf("Area = %d, want 20", got)
	}
	if got := (Rect{Width: -3, Height: 5}).Area(); got != 0 {
		t.Errorf("empty Area = %d, want 0", got)
	}
}
