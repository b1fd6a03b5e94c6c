package game

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsAttached reports whether a and b share an edge on the grid.
func IsAttached(a, b Point) bool {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

// WithinBox reports whether p lies strictly inside the square of radius
// minDist around ref, i.e. closer than minDist on both axes at once.
func WithinBox(p, ref Point, minDist int) bool {
	return abs(ref.X-p.X) < minDist && abs(ref.Y-p.Y) < minDist
}

// TooClose checks p against both carrier points of every team other than
// color. Points that were never placed are skipped.
func TooClose(p Point, teams []Team, color string, minDist int) bool {
	for _, t := range teams {
		if t.Color == color {
			continue
		}
		for _, ref := range [2]Point{t.CarrierA, t.CarrierB} {
			if ref.IsSet() && WithinBox(p, ref, minDist) {
				return true
			}
		}
	}
	return false
}

// Facings derives the starting directions of both carrier tiles from the
// position of b relative to a. ok is false when the points coincide.
func Facings(a, b Point) (fa, fb Direction, ok bool) {
	switch {
	case b.X > a.X:
		return East, West, true
	case b.Y > a.Y:
		return South, North, true
	case b.X < a.X:
		return West, East, true
	case b.Y < a.Y:
		return North, South, true
	}
	return "", "", false
}
