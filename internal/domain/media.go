package domain

import "time"

type Media struct {
	ID          int64     `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	Typemime    string    `json:"typemime" db:"typemime"`
	URL         string    `json:"url" db:"url"`
	StoragePath string    `json:"-" db:"storage_path"`
	TicketID    *int64    `json:"ticket_id,omitempty" db:"ticket_id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	StructureID *int64    `json:"structure_id,omitempty" db:"structure_id"`
	CommentID   *int64    `json:"comment_id,omitempty" db:"comment_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateMediaInput carries the multipart form fields next to the file itself.
// At most one of the link targets is expected; the original tolerates several.
type CreateMediaInput struct {
	TicketID    *int64 `json:"ticket_id,omitempty"`
	UserID      *int64 `json:"user_id,omitempty"`
	StructureID *int64 `json:"structure_id,omitempty"`
	CommentID   *int64 `json:"comment_id,omitempty"`
}
