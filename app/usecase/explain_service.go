package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"interpreter/internal/domain/entity"
	"interpreter/internal/domain/repository"
	"interpreter/internal/infrastructure/metrics"
)

// ErrNotConfigured is returned when no provider credential was supplied.
// The transport layer maps it to the fixed 500 body without a traceback.
var ErrNotConfigured = errors.New("OpenAI API key is not configured")

type ExplainUsecase interface {
	ExplainLine(ctx context.Context, codeLine, language string) (string, error)
	ExplainLines(ctx context.Context, codeLines []string, language string) ([]entity.LineExplanation, error)
}

var _ ExplainUsecase = (*ExplainService)(nil)

type ExplainService struct {
	llm     repository.LLMInvoker
	history HistoryUsecase
	logger  *slog.Logger
}

func NewExplainService(
	llm repository.LLMInvoker,
	history HistoryUsecase,
	logger *slog.Logger,
) *ExplainService {
	return &ExplainService{
		llm:     llm,
		history: history,
		logger:  logger,
	}
}

// ExplainLine explains one code line in the requested language.
func (s *ExplainService) ExplainLine(ctx context.Context, codeLine, language string) (string, error) {
	start := time.Now()
	if s.llm == nil {
		return "", ErrNotConfigured
	}

	languageName := entity.ResolveLanguage(language)
	metrics.IncExplainRequest(string(entity.ModeSingle), languageName)

	text, err := s.llm.Invoke(ctx, entity.SingleLinePrompt(codeLine, languageName))
	if err != nil {
		s.record(entity.ModeSingle, language, 1, entity.RecordStatusError, false, time.Since(start))
		return "", fmt.Errorf("explain line: %w", err)
	}
	if text == "" {
		text = "No explanation returned"
	}

	metrics.ObserveExplainDuration(string(entity.ModeSingle), time.Since(start))
	s.record(entity.ModeSingle, language, 1, entity.RecordStatusOK, false, time.Since(start))
	return text, nil
}

// ExplainLines explains an ordered batch of code lines. One batch call
// is attempted first; if its output cannot be recovered as a
// well-formed array, every line is explained individually. A provider
// failure on the batch call itself is a hard error; a failure on an
// individual fallback call only marks that line.
func (s *ExplainService) ExplainLines(ctx context.Context, codeLines []string, language string) ([]entity.LineExplanation, error) {
	start := time.Now()
	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	languageName := entity.ResolveLanguage(language)
	metrics.IncExplainRequest(string(entity.ModeMulti), languageName)

	raw, err := s.llm.Invoke(ctx, entity.MultiLinePrompt(codeLines, languageName))
	if err != nil {
		s.record(entity.ModeMulti, language, len(codeLines), entity.RecordStatusError, false, time.Since(start))
		return nil, fmt.Errorf("explain lines: %w", err)
	}

	explanations, ok := parseBatchExplanations(raw, len(codeLines))
	if !ok {
		metrics.IncFallbackRun()
		s.logger.Warn("failed to parse batch response, explaining lines individually",
			"lines", len(codeLines), "language", languageName)
		explanations = s.explainIndividually(ctx, codeLines, languageName)
	}

	metrics.ObserveExplainDuration(string(entity.ModeMulti), time.Since(start))
	s.record(entity.ModeMulti, language, len(codeLines), entity.RecordStatusOK, !ok, time.Since(start))
	return explanations, nil
}

func (s *ExplainService) explainIndividually(ctx context.Context, codeLines []string, languageName string) []entity.LineExplanation {
	explanations := make([]entity.LineExplanation, 0, len(codeLines))
	for i, line := range codeLines {
		text, err := s.llm.Invoke(ctx, entity.SingleLinePrompt(line, languageName))
		if err != nil {
			metrics.IncFallbackLineError()
			s.logger.Error("line explanation failed", "line", i+1, "err", err)
			explanations = append(explanations, entity.LineExplanation{
				LineNumber:  i + 1,
				Explanation: "Error: " + err.Error(),
			})
			continue
		}
		if text == "" {
			text = "No explanation"
		}
		explanations = append(explanations, entity.LineExplanation{
			LineNumber:  i + 1,
			Explanation: text,
		})
	}
	return explanations
}

func (s *ExplainService) record(mode entity.ExplanationMode, language string, lineCount int, status entity.RecordStatus, fallback bool, d time.Duration) {
	if s.history == nil {
		return
	}
	rec := entity.NewExplanationRecord(mode, language, lineCount)
	rec.Finish(status, fallback, d)
	s.history.Record(rec)
}
