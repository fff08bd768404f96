package domain

// Statistic is a single recorded platform metric datapoint.
type Statistic struct {
	StatisticID   int64   `json:"statisticId"`
	StatisticType string  `json:"statisticType"`
	DataType      string  `json:"dataType"`
	Value         float64 `json:"value"`
	RecordedAt    string  `json:"recordedAt"`
}

// DistrictSafety summarises safety scoring for one district, as computed
// server-side.
type DistrictSafety struct {
	District      string  `json:"district"`
	SafetyScore   float64 `json:"safetyScore"`
	TrustScore    float64 `json:"trustScore,omitempty"`
	ActivityScore float64 `json:"activityScore,omitempty"`
	CrimeRate     string  `json:"crimeRate,omitempty"`
	CCTVDensity   string  `json:"cctvDensity,omitempty"`
	Trend         string  `json:"trend,omitempty"`
	RecordedAt    string  `json:"recordedAt,omitempty"`
}
