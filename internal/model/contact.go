package model

import "github.com/folio/backend/pkg/contactform"

// StatusNew is the only status a submission has in this service.
const StatusNew = "new"

// ContactSubmission represents a message submitted via the contact form.
type ContactSubmission struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null;index" json:"email"`
	Subject   string `gorm:"not null" json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Timestamp string `gorm:"not null" json:"timestamp"` // ISO-8601
	Status    string `gorm:"not null;default:'new'" json:"status"`
}

// TableName pins the table name shared by the SQLite and PostgreSQL stores.
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

// SubmitRequest is the JSON body accepted by POST /api/contact.
type SubmitRequest struct {
	contactform.Fields
	Timestamp string `json:"timestamp,omitempty"`
}
