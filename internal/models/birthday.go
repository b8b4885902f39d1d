package models

import "cloud.google.com/go/civil"

// BirthdayRecord is the single persisted entity: one birth date per username.
type BirthdayRecord struct {
	Username  string     `json:"username"` // lowercase, alphabetic only
	BirthDate civil.Date `json:"birthDate"`
}

// Greeting is the response body for a birthday status query.
type Greeting struct {
	Message       string `json:"message"`
	DaysRemaining int    `json:"-"`
}
