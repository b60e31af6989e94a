package domain

import "time"

// AuditLog is one recorded mutation of a linked entity. Field-level before and
// after values live in audit_log_values and are loaded into Values on read.
type AuditLog struct {
	ID               int64           `json:"id" db:"id"`
	UserID           int64           `json:"user_id" db:"user_id"`
	UserName         *string         `json:"user_name,omitempty" db:"user_name"`
	LinkedID         int64           `json:"linked_id" db:"linked_id"`
	LinkedTable      string          `json:"linked_table" db:"linked_table"`
	Action           string          `json:"action" db:"action"`
	ModificationDate time.Time       `json:"modification_date" db:"modification_date"`
	Values           []AuditLogValue `json:"values" db:"-"`
}

type AuditLogValue struct {
	ID            int64   `json:"id" db:"id"`
	AuditLogID    int64   `json:"audit_log_id" db:"audit_log_id"`
	Field         string  `json:"field" db:"field"`
	PreviousValue *string `json:"previous_value" db:"previous_value"`
	NewValue      *string `json:"new_value" db:"new_value"`
}

// FieldChange is a candidate before/after pair handed to the change tracker.
// Values are already stringified by the caller; nil means the attribute was
// absent on that side.
type FieldChange struct {
	Field         string
	PreviousValue *string
	NewValue      *string
}

const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionAssignUser   = "ASSIGN_USER"
	ActionUnassignUser = "UNASSIGN_USER"
	ActionAddUser      = "ADD_USER"
	ActionRemoveUser   = "REMOVE_USER"
)

// Linked table names used as the entity-type half of the audit key.
const (
	TableTicket    = "TICKET"
	TableStructure = "STRUCTURE"
	TableUser      = "USER"
)
