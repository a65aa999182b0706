package domain

type UsageStats struct {
	UserCount  int64 `json:"user_count"`
	EventCount int64 `json:"event_count"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"` // 1 day max
}
