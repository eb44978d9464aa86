package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai-bookwriting-be/internal/dto"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/pkg/serverutils"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/google/uuid"
)

type IEditorService interface {
	ApplyCommand(ctx context.Context, userId uuid.UUID, req *dto.EditorCommandRequest) (*dto.EditorCommandResponse, error)
	SelectionState(ctx context.Context, userId uuid.UUID, req *dto.SelectionStateRequest) (*dto.SelectionStateResponse, error)
}

type editorService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewEditorService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IEditorService {
	return &editorService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// ApplyCommand loads the chapter document, runs one toggle against it and
// persists the result. Selection violations surface from the document
// core as panics; they are translated to a 422 here so one bad request
// cannot take the server down.
func (s *editorService) ApplyCommand(ctx context.Context, userId uuid.UUID, req *dto.EditorCommandRequest) (resp *dto.EditorCommandResponse, err error) {
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

	doc, err := richtext.DecodeJSON(chapter.Content)
	if err != nil {
		return nil, fmt.Errorf("stored content is corrupt: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("EditorService", "Rejected command", map[string]interface{}{"chapter_id": req.Id, "reason": fmt.Sprint(r)})
			resp = nil
			err = serverutils.NewAppError(422, fmt.Sprintf("invalid selection or command: %v", r))
		}
	}()

	sel := toRange(req.Selection)

	switch req.Kind {
	case "toggle_mark":
		mark, perr := richtext.ParseMark(req.Mark)
		if perr != nil {
			return nil, serverutils.NewAppError(422, perr.Error())
		}
		richtext.ToggleMark(doc, sel, mark)
	case "toggle_block":
		block, perr := richtext.ParseBlockType(req.Block)
		if perr != nil {
			return nil, serverutils.NewAppError(422, perr.Error())
		}
		richtext.ToggleBlock(doc, sel, block)
	default:
		return nil, serverutils.NewAppError(422, "unknown command kind")
	}

	content, err := richtext.EncodeJSON(doc)
	if err != nil {
		return nil, err
	}

	if err := uow.ChapterRepository().UpdateContent(ctx, chapter.Id, content); err != nil {
		return nil, err
	}

	words, blocks := DocumentStats(doc)

	return &dto.EditorCommandResponse{
		Id:         chapter.Id,
		Content:    json.RawMessage(content),
		WordCount:  words,
		BlockCount: blocks,
	}, nil
}

func (s *editorService) SelectionState(ctx context.Context, userId uuid.UUID, req *dto.SelectionStateRequest) (resp *dto.SelectionStateResponse, err error) {
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

	doc, err := richtext.DecodeJSON(chapter.Content)
	if err != nil {
		return nil, fmt.Errorf("stored content is corrupt: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = serverutils.NewAppError(422, fmt.Sprintf("invalid selection: %v", r))
		}
	}()

	sel := toRange(req.Selection)

	out := &dto.SelectionStateResponse{
		ActiveMarks:  []string{},
		ActiveBlocks: []string{},
	}
	for _, m := range []richtext.Mark{richtext.Bold, richtext.Italic, richtext.Underline} {
		if richtext.IsMarkActive(doc, sel, m) {
			out.ActiveMarks = append(out.ActiveMarks, m.String())
		}
	}
	blockTypes := []richtext.BlockType{
		richtext.BlockParagraph,
		richtext.BlockHeading1,
		richtext.BlockHeading2,
		richtext.BlockHeading3,
		richtext.BlockQuote,
		richtext.BlockBulleted,
		richtext.BlockNumbered,
	}
	for _, b := range blockTypes {
		if richtext.IsBlockActive(doc, sel, b) {
			out.ActiveBlocks = append(out.ActiveBlocks, b.String())
		}
	}
	return out, nil
}

func toRange(sel dto.Selection) richtext.Range {
	return richtext.Range{
		Anchor: richtext.Point{Node: richtext.NodeID(sel.Anchor.Node), Offset: sel.Anchor.Offset},
		Focus:  richtext.Point{Node: richtext.NodeID(sel.Focus.Node), Offset: sel.Focus.Offset},
	}
}
