package domain

import (
	"time"

	"github.com/lib/pq"
)

type Ticket struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      string         `json:"status" db:"status"`
	Priority    string         `json:"priority" db:"priority"`
	Category    pq.StringArray `json:"category" db:"category"`
	AuthorID    int64          `json:"author_id" db:"author_id"`
	Author      *User          `json:"author,omitempty" db:"-"`
	StructureID *int64         `json:"structure_id,omitempty" db:"structure_id"`
	Structure   *Structure     `json:"structure,omitempty" db:"-"`
	Assignees   []User         `json:"assigned_users,omitempty" db:"-"`
	ArchivedAt  *time.Time     `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

const TicketStatusOpen = "OPEN"

type CreateTicketInput struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=2000"`
	Priority    string   `json:"priority" validate:"required,max=50"`
	Category    []string `json:"category"`
	StructureID *int64   `json:"structure_id,omitempty"`
}

type UpdateTicketInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Category    []string   `json:"category,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	StructureID *int64     `json:"structure_id,omitempty"`
}

type TicketCountByAuthor struct {
	AuthorID    int64 `json:"author_id" db:"author_id"`
	TicketCount int64 `json:"ticket_count" db:"ticket_count"`
	Author      *User `json:"author,omitempty" db:"-"`
}

type TicketCountByStructure struct {
	StructureID int64      `json:"structure_id" db:"structure_id"`
	TicketCount int64      `json:"ticket_count" db:"ticket_count"`
	Structure   *Structure `json:"structure,omitempty" db:"-"`
}

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int64  `json:"count" db:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority" db:"priority"`
	Count    int64  `json:"count" db:"count"`
}

type TicketAverages struct {
	AveragePerYear  int64 `json:"average_per_year"`
	AveragePerMonth int64 `json:"average_per_month"`
	AveragePerWeek  int64 `json:"average_per_week"`
}

type TicketStats struct {
	TopTicketsByUser      []TicketCountByAuthor    `json:"top_tickets_by_user"`
	TopTicketsByStructure []TicketCountByStructure `json:"top_tickets_by_structure"`
	AverageTicketsCreated TicketAverages           `json:"average_tickets_created"`
	TicketsByCategory     []CategoryCount          `json:"tickets_count_by_category"`
	TicketsByPriority     []PriorityCount          `json:"tickets_count_by_priority"`
}
