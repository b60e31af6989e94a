package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrStructureNotFound = errors.New("structure not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrMediaNotFound     = errors.New("media not found")

	ErrLoginTaken          = errors.New("login already in use")
	ErrUserAlreadyAssigned = errors.New("user is already assigned to this ticket")

	ErrAddressRequired    = errors.New("address is required")
	ErrStructureRequired  = errors.New("employee users must belong to at least one structure")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrNotCommentAuthor   = errors.New("only the comment author can modify it")

	// ErrInvalidSort is returned when a sort parameter is not of the form
	// "<field> <asc|desc>" or names a field outside the sortable whitelist.
	ErrInvalidSort = errors.New("invalid sort parameter")
)
