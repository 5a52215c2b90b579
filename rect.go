package demand

// Rect is an integer axis-aligned rectangle, positioned by its top-left
// corner. A Rect with Width <= 0 or Height <= 0 is empty and contains no
// points.
//
// Rect is a pure value type: all methods return new values and none of them
// can fail. Every rectangle manipulation in the engine routes through these
// methods so that coordinates never escape an image's bounds.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the first column to the right of the rectangle (Left+Width).
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the first row below the rectangle (Top+Height).
func (r Rect) Bottom() int { return r.Top + r.Height }

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Area returns the number of points in the rectangle, 0 when empty.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// ContainsPoint reports whether (x, y) lies inside the rectangle.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// ContainsRect reports whether s lies entirely inside r.
// An empty s is contained in every rectangle.
func (r Rect) ContainsRect(s Rect) bool {
	if s.IsEmpty() {
		return true
	}
	return s.Left >= r.Left && s.Top >= r.Top &&
		s.Right() <= r.Right() && s.Bottom() <= r.Bottom()
}

// Intersect returns the largest rectangle contained in both r and s.
// If the rectangles are disjoint the result is empty.
func (r Rect) Intersect(s Rect) Rect {
	left := max(r.Left, s.Left)
	top := max(r.Top, s.Top)
	right := min(r.Right(), s.Right())
	bottom := min(r.Bottom(), s.Bottom())
	out := Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing both r and s.
// An empty operand does not influence the result.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	left := min(r.Left, s.Left)
	top := min(r.Top, s.Top)
	right := max(r.Right(), s.Right())
	bottom := max(r.Bottom(), s.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Width: r.Width, Height: r.Height}
}

// Grow returns r expanded by n on every side. Negative n shrinks; a
// rectangle shrunk past its center collapses to empty.
func (r Rect) Grow(n int) Rect {
	out := Rect{Left: r.Left - n, Top: r.Top - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// ClipTo returns r intersected with the bounds rectangle {0, 0, w, h}.
// Requests that fall fully outside the bounds clip to empty; clipping is
// silent, never an error.
func (r Rect) ClipTo(w, h int) Rect {
	return r.Intersect(Rect{Width: w, Height: h})
}
