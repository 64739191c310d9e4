package segmentation

import (
	"sort"

	"sentiment-lab/internal/domain"
)

// Profile summarizes segments per cluster, ordered by cluster label.
func Profile(segments []domain.TraderSegment) []domain.ClusterProfile {
	byCluster := make(map[int]*domain.ClusterProfile)
	for _, s := range segments {
		p, ok := byCluster[s.Cluster]
		if !ok {
			p = &domain.ClusterProfile{Cluster: s.Cluster}
			byCluster[s.Cluster] = p
		}
		p.Traders++
		p.MeanPnL += s.LifetimePnL
		p.MeanLeverage += s.AvgLeverage
		p.MeanTrades += float64(s.TotalTrades)
		p.MeanWinRate += s.WinRate
	}

	out := make([]domain.ClusterProfile, 0, len(byCluster))
	for _, p := range byCluster {
		n := float64(p.Traders)
		p.MeanPnL /= n
		p.MeanLeverage /= n
		p.MeanTrades /= n
		p.MeanWinRate /= n
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cluster < out[j].Cluster })
	return out
}
