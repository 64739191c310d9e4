package domain

// TraderSegment holds lifetime statistics for one trader and its behavioral cluster.
type TraderSegment struct {
	Account     string
	LifetimePnL float64
	AvgLeverage float64 // missing leverage counted as 0
	TotalTrades int
	WinRate     float64
	Cluster     int // arbitrary label in [0, k)
}

// ClusterProfile summarizes the traders assigned to one cluster.
type ClusterProfile struct {
	Cluster      int
	Traders      int
	MeanPnL      float64
	MeanLeverage float64
	MeanTrades   float64
	MeanWinRate  float64
}
