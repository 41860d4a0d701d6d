package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SavedApplication is a resume snapshot saved against a job description
type SavedApplication struct {
	ID             uuid.UUID       `json:"id"`
	JobDescription string          `json:"jobDescription"`
	CompanyName    *string         `json:"companyName"`
	Skills         []string        `json:"skills"`
	ResumeData     json.RawMessage `json:"resumeData"`
	ChatHistory    json.RawMessage `json:"chatHistory"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ApplicationCreateInput holds the fields for a new saved application.
// Nil JSON fields are stored as an empty object and an empty array.
type ApplicationCreateInput struct {
	JobDescription string
	CompanyName    *string
	Skills         []string
	ResumeData     json.RawMessage
	ChatHistory    json.RawMessage
}

// ApplicationSkills is the skills column of one saved application
type ApplicationSkills struct {
	ID          uuid.UUID `json:"id"`
	CompanyName *string   `json:"companyName"`
	Skills      []string  `json:"skills"`
}
