package model

import "time"

// Contact represents one contact-form submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PhoneOrDefault returns the phone number or a placeholder for display.
func (c *Contact) PhoneOrDefault() string {
	if c.Phone != nil && *c.Phone != "" {
		return *c.Phone
	}
	return "Not provided"
}

// BackupRecord is the denormalized copy of a submission written to the local
// JSON backup file. It carries its own timestamp, taken at append time, and
// is never read back by the application.
type BackupRecord struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
