package domain

import "time"

// RecommendationRun is one persisted recommendation response. Criteria and
// Response hold the JSON documents exactly as they were returned.
type RecommendationRun struct {
	ID        string
	CreatedAt time.Time
	Total     int
	Criteria  []byte
	Response  []byte
}
