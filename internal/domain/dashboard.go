package domain

import "time"

// DashboardStats holds the per-state incident counts for a user's dashboard.
// The four state counts always sum to Total.
type DashboardStats struct {
	Total            int `json:"total"`
	Open             int `json:"open"`
	InProgress       int `json:"in_progress"`
	Closed           int `json:"closed"`
	Escalated        int `json:"escalated"`
	SatisfactionRate int `json:"satisfaction_rate"`
	AvgResponseTime  int `json:"avg_response_time"`
}

// PriorityDistribution holds incident counts per priority level.
type PriorityDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Total  int `json:"total"`
}

// ChannelDistribution holds incident counts per reporting channel.
type ChannelDistribution struct {
	Phone  int `json:"phone"`
	Email  int `json:"email"`
	Chat   int `json:"chat"`
	Mobile int `json:"mobile"`
	Total  int `json:"total"`
}

// TimePoint is a single point in a time-bucketed trend series.
type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// CallVolumeSeries is a labeled time-bucket series of call counts.
type CallVolumeSeries struct {
	Labels     []string    `json:"labels"`
	Values     []int       `json:"values"`
	Trend      []TimePoint `json:"trend"`
	TotalCalls int         `json:"total_calls"`
	PeakHour   string      `json:"peak_hour"`
	LowestHour string      `json:"lowest_hour"`
}

// SatisfactionSeries is a labeled time-bucket series of satisfaction scores.
type SatisfactionSeries struct {
	Labels                     []string    `json:"labels"`
	Values                     []float64   `json:"values"`
	Trend                      []TimePoint `json:"trend"`
	AverageScore               float64     `json:"average_score"`
	TotalResponses             int         `json:"total_responses"`
	PositiveFeedbackPercentage float64     `json:"positive_feedback_percentage"`
}
