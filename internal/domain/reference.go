package domain

// Reference tables for ticket classification. Values are free strings on the
// ticket itself; these tables only drive the selection lists in the UI.

type Category struct {
	ID       int64  `json:"id" db:"id"`
	Category string `json:"category" db:"category"`
}

type Priority struct {
	ID       int64  `json:"id" db:"id"`
	Priority string `json:"priority" db:"priority"`
}

type Status struct {
	ID     int64  `json:"id" db:"id"`
	Status string `json:"status" db:"status"`
}

type CreateCategoryInput struct {
	Category string `json:"category" validate:"required,max=50"`
}

type CreatePriorityInput struct {
	Priority string `json:"priority" validate:"required,max=50"`
}

type CreateStatusInput struct {
	Status string `json:"status" validate:"required,max=50"`
}
