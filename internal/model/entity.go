package model

// User is a read-only snapshot of a registered user. Topics holds the names
// of subscribed topics in sorted order; Unread holds the ids of delivered,
// unacknowledged alerts in delivery order.
type User struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics,omitempty"`
	Unread []int64  `json:"unread,omitempty"`
}

// IsSubscribed reports whether the snapshot lists the named topic.
func (u User) IsSubscribed(topic string) bool {
	for _, t := range u.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Topic is a read-only snapshot of a registered topic and the ids of every
// alert ever sent through it.
type Topic struct {
	Name    string  `json:"name"`
	History []int64 `json:"history,omitempty"`
}
