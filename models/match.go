package models

// Match is the persisted state of a swipe between two profiles.
// SwiperID always holds the party that swiped first; a pending record
// means that party is awaiting reciprocation. When the second party
// swipes right the same record flips to accepted, so there is one
// record per pair, not one per direction.
type Match struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	SwiperID  string `dynamodbav:"swiperId" json:"swiperId"`
	SwipedID  string `dynamodbav:"swipedId" json:"swipedId"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParty reports whether profileID is one of the two parties.
func (m *Match) HasParty(profileID string) bool {
	return m.SwiperID == profileID || m.SwipedID == profileID
}

// OtherParty returns the opposite party for profileID, or "" when
// profileID is not on the record.
func (m *Match) OtherParty(profileID string) string {
	switch profileID {
	case m.SwiperID:
		return m.SwipedID
	case m.SwipedID:
		return m.SwiperID
	}
	return ""
}

// MatchesTable is the record-store table for matches
const MatchesTable = "Matches"

// GSIs used to find matches from either side of the pair
const (
	SwiperIndex = "swiperId-index"
	SwipedIndex = "swipedId-index"
)
