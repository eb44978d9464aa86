package unitofwork

import (
	"context"

	"ai-bookwriting-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BookRepository() contract.BookRepository
	ChapterRepository() contract.ChapterRepository
	NotificationRepository() contract.NotificationRepository
}
