package series

import "equity-strategy-lab/internal/domain"

// Returns derives daily simple returns from a close series:
// r_t = close_t / close_{t-1} - 1, dated at day t. A series of n closes
// yields n-1 returns; fewer than two closes yield none.
func Returns(points []domain.PricePoint) []domain.ReturnPoint {
	if len(points) < 2 {
		return nil
	}

	out := make([]domain.ReturnPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close.InexactFloat64()
		curr := points[i].Close.InexactFloat64()
		out = append(out, domain.ReturnPoint{
			Date:   points[i].Date,
			Return: curr/prev - 1,
		})
	}
	return out
}
