package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-bookwriting-be/internal/dto"
	"ai-bookwriting-be/internal/entity"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IChapterService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChapterRequest) (*dto.CreateChapterResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowChapterResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateChapterRequest) (*dto.UpdateChapterResponse, error)
	Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveRequest) (*dto.AutosaveResponse, error)
	Move(ctx context.Context, userId uuid.UUID, req *dto.MoveChapterRequest) (*dto.MoveChapterResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExportChapterResponse, error)
	ExportBook(ctx context.Context, userId uuid.UUID, bookId uuid.UUID) (*dto.ExportBookResponse, error)
}

type chapterService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	statsTopic string
	logger     logger.ILogger
}

func NewChapterService(uowFactory unitofwork.RepositoryFactory, pubSub *gochannel.GoChannel, statsTopic string, log logger.ILogger) IChapterService {
	return &chapterService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		statsTopic: statsTopic,
		logger:     log,
	}
}

func (s *chapterService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChapterRequest) (*dto.CreateChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: req.BookId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book not found")
	}

	position, err := uow.ChapterRepository().Count(ctx, specification.ByBookID{BookID: req.BookId})
	if err != nil {
		return nil, err
	}

	// New chapters start as the minimal document.
	content, err := richtext.EncodeJSON(richtext.New())
	if err != nil {
		return nil, err
	}

	chapter := &entity.Chapter{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    content,
		Position:   int(position),
		BlockCount: 1,
		BookId:     req.BookId,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}

	if err := uow.ChapterRepository().Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("ChapterService", "Chapter created", map[string]interface{}{"chapter_id": chapter.Id, "book_id": req.BookId})
	return &dto.CreateChapterResponse{Id: chapter.Id}, nil
}

func (s *chapterService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowChapterResponse, error) {
	chapter, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	return &dto.ShowChapterResponse{
		Id:         chapter.Id,
		Title:      chapter.Title,
		Content:    json.RawMessage(chapter.Content),
		Position:   chapter.Position,
		WordCount:  chapter.WordCount,
		BlockCount: chapter.BlockCount,
		BookId:     chapter.BookId,
		CreatedAt:  chapter.CreatedAt,
		UpdatedAt:  chapter.UpdatedAt,
	}, nil
}

func (s *chapterService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateChapterRequest) (*dto.UpdateChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	chapter.Title = req.Title
	now := time.Now()
	chapter.UpdatedAt = &now

	if err := uow.ChapterRepository().Update(ctx, chapter); err != nil {
		return nil, err
	}

	return &dto.UpdateChapterResponse{Id: chapter.Id}, nil
}

func (s *chapterService) Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveRequest) (*dto.AutosaveResponse, error) {
	chapter, err := s.findOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	// Reject malformed documents before they reach the database.
	doc, err := richtext.DecodeJSON(req.Content)
	if err != nil {
		return nil, fmt.Errorf("invalid chapter content: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChapterRepository().UpdateContent(ctx, chapter.Id, req.Content); err != nil {
		return nil, err
	}

	words, blocks := DocumentStats(doc)

	s.publishStats(chapter.Id)

	return &dto.AutosaveResponse{
		Id:         chapter.Id,
		WordCount:  words,
		BlockCount: blocks,
		SavedAt:    time.Now(),
	}, nil
}

func (s *chapterService) Move(ctx context.Context, userId uuid.UUID, req *dto.MoveChapterRequest) (*dto.MoveChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChapterRepository().ShiftPositions(ctx, chapter.BookId, req.Position); err != nil {
		return nil, err
	}

	chapter.Position = req.Position
	now := time.Now()
	chapter.UpdatedAt = &now
	if err := uow.ChapterRepository().Update(ctx, chapter); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.MoveChapterResponse{Id: chapter.Id}, nil
}

func (s *chapterService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return err
	}

	return uow.ChapterRepository().Delete(ctx, chapter.Id)
}

func (s *chapterService) Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExportChapterResponse, error) {
	chapter, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	doc, err := richtext.DecodeJSON(chapter.Content)
	if err != nil {
		return nil, fmt.Errorf("stored content is corrupt: %w", err)
	}

	return &dto.ExportChapterResponse{
		Id:    chapter.Id,
		Title: chapter.Title,
		Text:  richtext.Serialize(doc),
	}, nil
}

func (s *chapterService) ExportBook(ctx context.Context, userId uuid.UUID, bookId uuid.UUID) (*dto.ExportBookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: bookId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book not found")
	}

	chapters, err := uow.ChapterRepository().FindAll(ctx,
		specification.ByBookID{BookID: bookId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}

	out := &dto.ExportBookResponse{
		Id:    book.Id,
		Title: book.Title,
	}
	for _, c := range chapters {
		doc, err := richtext.DecodeJSON(c.Content)
		if err != nil {
			s.logger.Warn("ChapterService", "Skipping chapter with corrupt content", map[string]interface{}{"chapter_id": c.Id, "error": err.Error()})
			continue
		}
		out.Chapters = append(out.Chapters, dto.ExportChapterResponse{
			Id:    c.Id,
			Title: c.Title,
			Text:  richtext.Serialize(doc),
		})
	}
	return out, nil
}

func (s *chapterService) findOwned(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Chapter, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chapter, err := uow.ChapterRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, errors.New("chapter not found")
	}
	return chapter, nil
}

func (s *chapterService) publishStats(chapterId uuid.UUID) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishChapterStatsMessage{ChapterId: chapterId})
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(s.statsTopic, msg); err != nil {
		s.logger.Error("ChapterService", "Failed to queue stats message", map[string]interface{}{"chapter_id": chapterId, "error": err})
	}
}

// DocumentStats counts words and top-level blocks for a chapter document.
func DocumentStats(doc *richtext.Document) (words, blocks int) {
	blocks = len(doc.Roots)
	for _, id := range doc.Roots {
		words += richtext.WordCount(doc, id)
	}
	return words, blocks
}
