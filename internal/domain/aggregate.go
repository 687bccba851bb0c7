package domain

// Satisfaction and response-time figures are placeholders until real
// measurement data is available upstream. Known limitation, kept stable so
// cached and fresh responses agree.
const (
	PlaceholderSatisfactionRate = 0
	PlaceholderAvgResponseTime  = 0
)

// ComputeStats counts incidents per state. The per-state counts always sum
// to Total, which equals len(incidents). Input order does not matter.
func ComputeStats(incidents []Incident) DashboardStats {
	stats := DashboardStats{
		Total:            len(incidents),
		SatisfactionRate: PlaceholderSatisfactionRate,
		AvgResponseTime:  PlaceholderAvgResponseTime,
	}
	for _, incident := range incidents {
		switch incident.State {
		case IncidentStateOpen:
			stats.Open++
		case IncidentStateInProgress:
			stats.InProgress++
		case IncidentStateClosed:
			stats.Closed++
		case IncidentStateEscalated:
			stats.Escalated++
		}
	}
	return stats
}

// ComputePriorityDistribution counts incidents per priority level.
func ComputePriorityDistribution(incidents []Incident) PriorityDistribution {
	dist := PriorityDistribution{Total: len(incidents)}
	for _, incident := range incidents {
		switch incident.Priority {
		case IncidentPriorityLow:
			dist.Low++
		case IncidentPriorityMedium:
			dist.Medium++
		case IncidentPriorityHigh:
			dist.High++
		}
	}
	return dist
}

// ComputeChannelDistribution counts incidents per reporting channel.
func ComputeChannelDistribution(incidents []Incident) ChannelDistribution {
	dist := ChannelDistribution{Total: len(incidents)}
	for _, incident := range incidents {
		switch incident.Channel {
		case IncidentChannelPhone:
			dist.Phone++
		case IncidentChannelEmail:
			dist.Email++
		case IncidentChannelChat:
			dist.Chat++
		case IncidentChannelMobile:
			dist.Mobile++
		}
	}
	return dist
}
