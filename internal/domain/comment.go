package domain

import "time"

type Comment struct {
	ID         int64     `json:"id" db:"id"`
	Content    string    `json:"content" db:"content"`
	TicketID   int64     `json:"ticket_id" db:"ticket_id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	AuthorName *string   `json:"author_name,omitempty" db:"author_name"`
	MediaURL   *string   `json:"media_url,omitempty" db:"media_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type UpdateCommentInput struct {
	Content string `json:"content" validate:"required,max=2000"`
}
