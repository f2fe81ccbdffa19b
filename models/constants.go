package models

// Match statuses
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusRejected = "rejected"
)

// AllowedMatchStatusUpdate reports whether status is a value a party
// may set explicitly on a pending request.
func AllowedMatchStatusUpdate(status string) bool {
	return status == MatchStatusAccepted || status == MatchStatusRejected
}
