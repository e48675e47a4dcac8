package entity

// PersonalMessage is one direct message between two users. Endpoints are
// canonical usernames. The timestamp is client-supplied and opaque: it is
// stored and echoed back, never parsed or reordered. Immutable once created.
type PersonalMessage struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// GroupMessage is one message posted to a group, same lifecycle as
// PersonalMessage.
type GroupMessage struct {
	Sender    string `json:"sender"`
	Group     string `json:"group"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
