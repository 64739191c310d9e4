package segmentation

import "math"

// scaler holds per-feature population mean and standard deviation.
type scaler struct {
	mean []float64
	std  []float64
}

func fitScaler(points [][]float64) scaler {
	if len(points) == 0 {
		return scaler{}
	}
	dim := len(points[0])
	s := scaler{mean: make([]float64, dim), std: make([]float64, dim)}
	n := float64(len(points))

	for _, p := range points {
		for j, v := range p {
			s.mean[j] += v
		}
	}
	for j := range s.mean {
		s.mean[j] /= n
	}
	for _, p := range points {
		for j, v := range p {
			d := v - s.mean[j]
			s.std[j] += d * d
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j] / n)
	}
	return s
}

// transform returns standardized copies of points. A feature with zero
// variance maps to 0 for every point.
func (s scaler) transform(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		row := make([]float64, len(p))
		for j, v := range p {
			if s.std[j] == 0 {
				continue
			}
			row[j] = (v - s.mean[j]) / s.std[j]
		}
		out[i] = row
	}
	return out
}

// standardize scales each feature to zero mean and unit population variance.
func standardize(points [][]float64) [][]float64 {
	return fitScaler(points).transform(points)
}
