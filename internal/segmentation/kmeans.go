package segmentation

import (
	"math"
	"math/rand"
)

type kmeansConfig struct {
	k             int
	seed          int64
	maxIterations int
	tolerance     float64
	restarts      int
}

type kmeansResult struct {
	labels    []int
	centers   [][]float64
	inertia   float64
	iteration int
}

// kmeans clusters points with k-means++ seeding and Lloyd iterations, keeping
// the lowest-inertia run out of cfg.restarts. All randomness comes from
// cfg.seed, so equal inputs give equal labels. Requires 1 <= k <= len(points)
// and at least k distinct points.
func kmeans(points [][]float64, cfg kmeansConfig) kmeansResult {
	rng := rand.New(rand.NewSource(cfg.seed))

	var best kmeansResult
	for r := 0; r < cfg.restarts; r++ {
		res := lloyd(points, seedCenters(points, cfg.k, rng), cfg)
		if r == 0 || res.inertia < best.inertia {
			best = res
		}
	}
	return best
}

// seedCenters picks k initial centers: the first uniformly, each next one with
// probability proportional to its squared distance from the nearest chosen center.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, p := range points {
			dist[i] = nearest(p, centers).dist
			total += dist[i]
		}
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		pick := len(points) - 1
		acc := 0.0
		for i, d := range dist {
			acc += d
			if d > 0 && acc >= target {
				pick = i
				break
			}
		}
		centers = append(centers, clone(points[pick]))
	}
	return centers
}

func lloyd(points [][]float64, centers [][]float64, cfg kmeansConfig) kmeansResult {
	k := len(centers)
	dim := len(points[0])
	labels := make([]int, len(points))

	iter := 0
	for iter < cfg.maxIterations {
		iter++
		for i, p := range points {
			labels[i] = nearest(p, centers).index
		}

		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				next[c][j] += v
			}
		}
		taken := make(map[int]bool)
		for c := range next {
			if counts[c] == 0 {
				// Empty cluster: restart it on the point farthest from its center.
				far := farthest(points, labels, centers, taken)
				taken[far] = true
				next[c] = clone(points[far])
				continue
			}
			for j := range next[c] {
				next[c][j] /= float64(counts[c])
			}
		}

		shift := 0.0
		for c := range centers {
			shift += sqDist(centers[c], next[c])
		}
		centers = next
		if shift <= cfg.tolerance {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		n := nearest(p, centers)
		labels[i] = n.index
		inertia += n.dist
	}
	return kmeansResult{labels: labels, centers: centers, inertia: inertia, iteration: iter}
}

type match struct {
	index int
	dist  float64
}

func nearest(p []float64, centers [][]float64) match {
	best := match{index: 0, dist: math.Inf(1)}
	for c, center := range centers {
		if d := sqDist(p, center); d < best.dist {
			best = match{index: c, dist: d}
		}
	}
	return best
}

func farthest(points [][]float64, labels []int, centers [][]float64, skip map[int]bool) int {
	idx, max := 0, -1.0
	for i, p := range points {
		if skip[i] {
			continue
		}
		if d := sqDist(p, centers[labels[i]]); d > max {
			idx, max = i, d
		}
	}
	return idx
}

func sqDist(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
