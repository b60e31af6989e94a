package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User      UserRepository
	Structure StructureRepository
	Ticket    TicketRepository
	Comment   CommentRepository
	Address   AddressRepository
	Category  CategoryRepository
	Priority  PriorityRepository
	Status    StatusRepository
	Media     MediaRepository
	AuditLog  AuditLogRepository

	db *sqlx.DB
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return newRepositories(db, db)
}

func newRepositories(root *sqlx.DB, ext sqlx.ExtContext) *Repositories {
	return &Repositories{
		User:      NewUserRepository(ext),
		Structure: NewStructureRepository(ext),
		Ticket:    NewTicketRepository(ext),
		Comment:   NewCommentRepository(ext),
		Address:   NewAddressRepository(ext),
		Category:  NewCategoryRepository(ext),
		Priority:  NewPriorityRepository(ext),
		Status:    NewStatusRepository(ext),
		Media:     NewMediaRepository(ext),
		AuditLog:  NewAuditLogRepository(ext),
		db:        root,
	}
}

// WithTx runs fn against a transaction-scoped copy of the repositories, so a
// multi-table write (entity mutation plus its audit entry) commits or rolls
// back as a unit. A Repositories assembled without a database handle (unit
// tests with mocks) runs fn on the receiver directly.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(newRepositories(nil, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
