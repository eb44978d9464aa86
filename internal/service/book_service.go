package service

import (
	"context"
	"errors"
	"time"

	"ai-bookwriting-be/internal/dto"
	"ai-bookwriting-be/internal/entity"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IBookService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookRequest) (*dto.CreateBookResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowBookResponse, error)
	List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.ListBooksResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBookRequest) (*dto.UpdateBookResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type bookService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewBookService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IBookService {
	return &bookService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *bookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookRequest) (*dto.CreateBookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book := &entity.Book{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.BookRepository().Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("BookService", "Book created", map[string]interface{}{"book_id": book.Id, "user_id": userId})
	return &dto.CreateBookResponse{Id: book.Id}, nil
}

func (s *bookService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowBookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book not found")
	}

	chapters, err := uow.ChapterRepository().FindAll(ctx,
		specification.ByBookID{BookID: id},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ChapterSummary, len(chapters))
	for i, c := range chapters {
		summaries[i] = dto.ChapterSummary{
			Id:         c.Id,
			Title:      c.Title,
			Position:   c.Position,
			WordCount:  c.WordCount,
			BlockCount: c.BlockCount,
		}
	}

	return &dto.ShowBookResponse{
		Id:          book.Id,
		Title:       book.Title,
		Description: book.Description,
		Chapters:    summaries,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}, nil
}

func (s *bookService) List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.ListBooksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if search != "" {
		specs = append(specs, specification.TitleSearch{Query: search})
	}

	books, err := uow.BookRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ListBooksResponse, len(books))
	for i, b := range books {
		out[i] = &dto.ListBooksResponse{
			Id:          b.Id,
			Title:       b.Title,
			Description: b.Description,
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		}
	}
	return out, nil
}

func (s *bookService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBookRequest) (*dto.UpdateBookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book not found")
	}

	book.Title = req.Title
	book.Description = req.Description
	now := time.Now()
	book.UpdatedAt = &now

	if err := uow.BookRepository().Update(ctx, book); err != nil {
		return nil, err
	}

	return &dto.UpdateBookResponse{Id: book.Id}, nil
}

func (s *bookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if book == nil {
		return errors.New("book not found")
	}

	// Book and chapters go together, so wrap in a transaction.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChapterRepository().DeleteAllByBookId(ctx, id); err != nil {
		return err
	}
	if err := uow.BookRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
