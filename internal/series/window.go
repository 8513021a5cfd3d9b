package series

import "equity-strategy-lab/internal/domain"

// Window returns the points falling inside w, preserving order. Both bounds
// are inclusive; a zero bound leaves that side unbounded. The input slice is
// not modified.
func Window(points []domain.PricePoint, w domain.DateWindow) []domain.PricePoint {
	if w.IsOpen() {
		out := make([]domain.PricePoint, len(points))
		copy(out, points)
		return out
	}

	var out []domain.PricePoint
	for _, p := range points {
		if w.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}
