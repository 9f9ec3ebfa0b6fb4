package model

// Contact message statuses. Only StatusNew is assigned by the backend;
// the others are reserved for the admin inbox.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactMessage represents a message submitted via the contact/complaints form.
type ContactMessage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Date    string `json:"date"`   // ISO-8601, UTC
	Status  string `json:"status"` // "new" | "read" | "replied"
}

// Clone returns a copy of m.
func (m *ContactMessage) Clone() *ContactMessage {
	c := *m
	return &c
}
