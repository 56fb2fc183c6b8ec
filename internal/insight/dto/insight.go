package dto

import insightdomain "journaly-backend/internal/insight/domain"

// WeeklySummaryResponse is the API shape of a weekly insight. ID is empty for
// the synthetic "empty week" payload, which is never persisted.
type WeeklySummaryResponse struct {
	ID        string                       `json:"id,omitempty"`
	WeekStart string                       `json:"week_start"`
	WeekEnd   string                       `json:"week_end"`
	Payload   insightdomain.InsightPayload `json:"payload"`
}
