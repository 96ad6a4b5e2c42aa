package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
	"github.com/jkuschner/Document-Storage-App/internal/server/config"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/repomanager"
)

const summarySystemPrompt = "You are a helpful assistant that summarizes documents. " +
	"Provide a concise summary of the key points in the document."

// createMessage is a seam for tests.
var createMessage = func(ctx context.Context, client *anthropic.Client, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return client.Messages.New(ctx, params)
}

// SummaryResult is the outcome of summarizing one document.
type SummaryResult struct {
	FileID        string
	FileName      string
	Summary       string
	ContentLength int
	Model         string
}

// SummaryService reads a stored document and asks a language model for a
// summary. Document content is truncated to a configured cap before it is
// sent to the model.
type SummaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStorage
	logger      logging.Logger
	client      anthropic.Client
	model       string
	maxLength   int
}

func NewSummaryService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStorage, cfg *config.Config, l logging.Logger) *SummaryService {
	return &SummaryService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("module", "summary"),
		client:      anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:       cfg.SummaryModel,
		maxLength:   cfg.MaxSummaryContentLength,
	}
}

// Summarize fetches the owner's file from object storage and returns a model
// generated summary of its content.
func (s *SummaryService) Summarize(ctx context.Context, userID, fileID string) (*SummaryResult, error) {
	file, err := s.repomanager.Files(s.db).GetByID(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	// Read a little past the cap so truncation is detectable.
	content, err := s.store.ReadObject(ctx, file.StorageKey, int64(s.maxLength)*4+1)
	if err != nil {
		s.logger.Error(ctx, "object read failed", "key", file.StorageKey, "error", err)
		return nil, common.ErrorInternal
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: file is not text", common.ErrorValidation)
	}

	text := truncateRunes(string(content), s.maxLength)

	prompt := fmt.Sprintf("Please summarize the following document titled %q:\n\n%s", file.FileName, text)
	message, err := createMessage(ctx, &s.client, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: summarySystemPrompt}},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
		}},
	})
	if err != nil {
		s.logger.Error(ctx, "summary request failed", "error", err)
		return nil, common.ErrorInternal
	}

	summary := ""
	if len(message.Content) > 0 {
		if block, ok := message.Content[0].AsAny().(anthropic.TextBlock); ok {
			summary = block.Text
		}
	}

	return &SummaryResult{
		FileID:        file.ID,
		FileName:      file.FileName,
		Summary:       summary,
		ContentLength: len([]rune(text)),
		Model:         string(message.Model),
	}, nil
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
