package strategy

import (
	"context"
	"strconv"
	"strings"
	"time"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/repository"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/utils"
)

// ClassificationJudge sends every candidate to the model and has it label
// each line BAD, GOOD or IGNORE. Keyword categories only gate which items
// become candidates, the model decides both directions.
type ClassificationJudge struct {
	cfg    *config.Config
	logger *logger.Logger
	aiRepo repository.AIRepository
}

// NewClassificationJudge creates a new ClassificationJudge.
func NewClassificationJudge(cfg *config.Config, log *logger.Logger, aiRepo repository.AIRepository) *ClassificationJudge {
	return &ClassificationJudge{
		cfg:    cfg,
		logger: log,
		aiRepo: aiRepo,
	}
}

// GetMode returns the judge mode this strategy implements.
func (s *ClassificationJudge) GetMode() entity.JudgeMode {
	return entity.JudgeModeClassification
}

// Judge batches all candidates through the model. A failed batch is
// dropped, never resent.
func (s *ClassificationJudge) Judge(ctx context.Context, candidates []entity.NewsItem) ([]entity.NewsItem, []entity.NewsItem, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	variant := s.cfg.Judge.Classification
	if variant.BatchSize <= 0 {
		variant.BatchSize = len(candidates)
	}
	var bad, good []entity.NewsItem
	for start := 0; start < len(candidates); start += variant.BatchSize {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		end := start + variant.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]

		prompt := repository.BuildClassificationPrompt(chunk)
		text, err := s.aiRepo.GenerateText(ctx, variant.Model, prompt)
		if err != nil {
			s.logger.Error("Classification request failed, dropping batch",
				logger.ErrorField(err),
				logger.IntField("batch_start", start))
			continue
		}

		chunkBad, chunkGood := parseLabelLines(text, chunk)
		bad = append(bad, chunkBad...)
		good = append(good, chunkGood...)

		if variant.BatchDelay > 0 && end < len(candidates) {
			time.Sleep(variant.BatchDelay)
		}
	}

	s.logger.Info("Classification judge finished",
		logger.IntField("candidates", len(candidates)),
		logger.IntField("confirmed_bad", len(bad)),
		logger.IntField("confirmed_good", len(good)))
	return bad, good, nil
}

// parseLabelLines maps "No.<n>: LABEL" response lines back onto chunk
// items. BAD wins when a line carries both labels, lines without a
// parseable in-range index are skipped.
func parseLabelLines(text string, chunk []entity.NewsItem) (bad, good []entity.NewsItem) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		idx, ok := parseLineIndex(line)
		if !ok || idx < 0 || idx >= len(chunk) {
			continue
		}
		switch {
		case strings.Contains(line, "BAD"):
			bad = append(bad, chunk[idx])
		case strings.Contains(line, "GOOD"):
			good = append(good, chunk[idx])
		}
	}
	return bad, good
}

func parseLineIndex(line string) (int, bool) {
	head, _, found := strings.Cut(line, ":")
	if !found {
		return 0, false
	}
	numStr := strings.TrimPrefix(strings.TrimSpace(head), "No.")
	idx, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return 0, false
	}
	return idx, true
}
