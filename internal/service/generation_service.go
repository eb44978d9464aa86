package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-bookwriting-be/internal/dto"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/pkg/mailer"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/pkg/events"
	"ai-bookwriting-be/pkg/llm"
	pktNats "ai-bookwriting-be/pkg/nats"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/google/uuid"
)

type IGenerationService interface {
	DraftChapter(ctx context.Context, userId uuid.UUID, req *dto.DraftChapterRequest) (*dto.DraftChapterResponse, error)
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       llm.LLMProvider
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	logger         logger.ILogger
}

func NewGenerationService(uowFactory unitofwork.RepositoryFactory, provider llm.LLMProvider, eventPublisher *pktNats.Publisher, emailService mailer.IEmailService, log logger.ILogger) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		logger:         log,
	}
}

const draftSystemPrompt = `You are a book-writing assistant. Write prose for the requested chapter.
Format rules:
- Separate paragraphs with a blank line.
- Use "# ", "## " or "### " at line start for headings.
- Use "> " at line start for quotes.
- Use "- " at line start for list items.
Return only the chapter text, no commentary.`

// DraftChapter projects the chapter to plain text for the model prompt,
// then parses the model output back into the document schema. The text
// round trip drops inline marks: generated drafts come back as clean
// prose for the author to style.
func (s *generationService) DraftChapter(ctx context.Context, userId uuid.UUID, req *dto.DraftChapterRequest) (*dto.DraftChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := uow.ChapterRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, errors.New("chapter not found")
	}

	current, err := richtext.DecodeJSON(chapter.Content)
	if err != nil {
		return nil, fmt.Errorf("stored content is corrupt: %w", err)
	}
	currentText := richtext.Serialize(current)

	history := []llm.Message{
		{Role: "system", Content: draftSystemPrompt},
	}
	if currentText != "" {
		history = append(history, llm.Message{
			Role:    "user",
			Content: fmt.Sprintf("Chapter so far:\n\n%s", currentText),
		})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Prompt})

	output, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.8))
	if err != nil {
		s.logger.Error("GenerationService", "LLM call failed", map[string]interface{}{"chapter_id": req.Id, "error": err})
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	draft := richtext.Deserialize(output)

	final := draft
	if req.Append {
		current.Append(draft)
		final = current
	}

	content, err := richtext.EncodeJSON(final)
	if err != nil {
		return nil, err
	}

	if err := uow.ChapterRepository().UpdateContent(ctx, chapter.Id, content); err != nil {
		return nil, err
	}

	go s.notifyDraftReady(userId, chapter.BookId, chapter.Title)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DRAFT_READY",
			Data: map[string]interface{}{
				"user_id":       userId.String(),
				"chapter_id":    chapter.Id.String(),
				"chapter_title": chapter.Title,
				"book_id":       chapter.BookId.String(),
			},
			OccurredAt: time.Now(),
		}
		if pubErr := s.eventPublisher.Publish(ctx, evt); pubErr != nil {
			s.logger.Warn("GenerationService", "Failed to publish DRAFT_READY", map[string]interface{}{"error": pubErr.Error()})
		}
	}

	return &dto.DraftChapterResponse{
		Id:      chapter.Id,
		Content: json.RawMessage(content),
	}, nil
}

func (s *generationService) notifyDraftReady(userId, bookId uuid.UUID, chapterTitle string) {
	uow := s.uowFactory.NewUnitOfWork(context.Background())

	user, err := uow.UserRepository().FindOne(context.Background(), specification.ByID{ID: userId})
	if err != nil || user == nil {
		return
	}
	book, err := uow.BookRepository().FindOne(context.Background(), specification.ByID{ID: bookId})
	if err != nil || book == nil {
		return
	}

	if emailErr := s.emailService.SendDraftReady(user.Email, book.Title, chapterTitle); emailErr != nil {
		fmt.Printf("Error sending draft-ready email: %v\n", emailErr)
	}
}
