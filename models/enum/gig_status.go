package enum

type GigStatus string

const (
	GigStatusScheduled GigStatus = "scheduled"
	GigStatusCompleted GigStatus = "completed"
	GigStatusCancelled GigStatus = "cancelled"
)
