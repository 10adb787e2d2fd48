package models

import "time"

// Contact statuses
const (
	ContactStatusPending  = "PENDING"
	ContactStatusAccepted = "ACCEPTED"
)

// User represents a user in the system, synced from the identity provider
type User struct {
	ID          string    `json:"id"`
	ProviderUID string    `json:"providerUid"`
	Email       *string   `json:"email"`
	DisplayName *string   `json:"displayName"`
	PhotoURL    *string   `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Contact represents a directed edge from one user to another
type Contact struct {
	UserID     string    `json:"userId"`
	ContactID  string    `json:"contactId"`
	Status     string    `json:"status"`
	CategoryID *string   `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ContactCategory is a user-owned label for classifying contacts
type ContactCategory struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategorySummary is the joined category projection embedded in contact DTOs
type CategorySummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// ContactDetail is a contact edge denormalized with the counterpart's public
// profile and category, ready for direct display
type ContactDetail struct {
	ID          string           `json:"id"`
	DisplayName *string          `json:"displayName"`
	Email       *string          `json:"email"`
	PhotoURL    *string          `json:"photoUrl"`
	Status      string           `json:"status"`
	Category    *CategorySummary `json:"category"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Hangout represents a location/time-scoped event
type Hangout struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// HangoutPatch holds optional replacement fields for updating a hangout;
// nil fields are left unchanged
type HangoutPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	IsPublic    *bool      `json:"isPublic"`
}

// HangoutVisibility scopes a hangout to a category or a single user
type HangoutVisibility struct {
	ID         string    `json:"id"`
	HangoutID  string    `json:"hangoutId"`
	CategoryID *string   `json:"categoryId"`
	UserID     *string   `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Interest is a global interest tag
type Interest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserInterest links a user to an interest tag
type UserInterest struct {
	UserID     string    `json:"userId"`
	InterestID string    `json:"interestId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserInterestDetail is a user interest joined with its tag
type UserInterestDetail struct {
	UserID     string    `json:"userId"`
	InterestID string    `json:"interestId"`
	Interest   Interest  `json:"interest"`
	CreatedAt  time.Time `json:"createdAt"`
}
