package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/repository"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/utils"
)

// ExtractionJudge confirms candidates by asking the model to extract the
// IDs of the fatal ones from each batch as a JSON array. Keyword-matched
// good news is trusted without a model call unless configured otherwise.
type ExtractionJudge struct {
	cfg         *config.Config
	logger      *logger.Logger
	aiRepo      repository.AIRepository
	articleRepo repository.ArticleRepository
}

// NewExtractionJudge creates a new ExtractionJudge. articleRepo may be nil
// when prompt enrichment is disabled.
func NewExtractionJudge(cfg *config.Config, log *logger.Logger, aiRepo repository.AIRepository, articleRepo repository.ArticleRepository) *ExtractionJudge {
	return &ExtractionJudge{
		cfg:         cfg,
		logger:      log,
		aiRepo:      aiRepo,
		articleRepo: articleRepo,
	}
}

// GetMode returns the judge mode this strategy implements.
func (s *ExtractionJudge) GetMode() entity.JudgeMode {
	return entity.JudgeModeExtraction
}

// Judge splits candidates by keyword category and confirms the bad side
// with the model. A failed batch is dropped, never resent.
func (s *ExtractionJudge) Judge(ctx context.Context, candidates []entity.NewsItem) ([]entity.NewsItem, []entity.NewsItem, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	var potentialBad, potentialGood []entity.NewsItem
	for _, c := range candidates {
		switch c.Category {
		case entity.CategoryBad:
			potentialBad = append(potentialBad, c)
		case entity.CategoryGood:
			potentialGood = append(potentialGood, c)
		}
	}

	bad := s.extract(ctx, potentialBad, repository.BuildExtractionPrompt)

	var good []entity.NewsItem
	if s.cfg.Judge.TrustKeywordGood {
		good = potentialGood
	} else {
		good = s.extract(ctx, potentialGood, repository.BuildGoodExtractionPrompt)
	}

	s.logger.Info("Extraction judge finished",
		logger.IntField("candidates", len(candidates)),
		logger.IntField("confirmed_bad", len(bad)),
		logger.IntField("confirmed_good", len(good)))
	return bad, good, nil
}

func (s *ExtractionJudge) extract(ctx context.Context, candidates []entity.NewsItem, buildPrompt func([]entity.NewsItem, map[int]string) string) []entity.NewsItem {
	if len(candidates) == 0 {
		return nil
	}

	variant := s.cfg.Judge.Extraction
	if variant.BatchSize <= 0 {
		variant.BatchSize = len(candidates)
	}
	var confirmed []entity.NewsItem
	for start := 0; start < len(candidates); start += variant.BatchSize {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		end := start + variant.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]

		prompt := buildPrompt(chunk, s.fetchContents(ctx, chunk))
		text, err := s.aiRepo.GenerateText(ctx, variant.Model, prompt)
		if err != nil {
			s.logger.Error("Extraction request failed, dropping batch",
				logger.ErrorField(err),
				logger.IntField("batch_start", start))
			continue
		}

		indices, err := parseIndexList(text, len(chunk))
		if err != nil {
			s.logger.Error("Failed to parse extraction response, dropping batch",
				logger.ErrorField(err),
				logger.StringField("response", text))
			continue
		}
		for _, idx := range indices {
			confirmed = append(confirmed, chunk[idx])
		}

		if variant.BatchDelay > 0 && end < len(candidates) {
			time.Sleep(variant.BatchDelay)
		}
	}
	return confirmed
}

// fetchContents pulls article excerpts for a chunk when prompt enrichment
// is enabled. Fetch failures leave the entry out, the title still judges.
func (s *ExtractionJudge) fetchContents(ctx context.Context, chunk []entity.NewsItem) map[int]string {
	if !s.cfg.Judge.FetchContent || s.articleRepo == nil {
		return nil
	}

	contents := make(map[int]string, len(chunk))
	for i, item := range chunk {
		content, err := s.articleRepo.GetContent(ctx, item.Link)
		if err != nil {
			s.logger.Warn("Failed to fetch article content",
				logger.ErrorField(err),
				logger.StringField("link", item.Link))
			continue
		}
		contents[i] = content
	}
	return contents
}

// parseIndexList parses a model response expected to hold a JSON array of
// integer indices. Non-integer elements and out-of-range indices are
// skipped, a response that is not an array at all is an error.
func parseIndexList(text string, size int) ([]int, error) {
	dec := json.NewDecoder(strings.NewReader(stripCodeFence(text)))
	dec.UseNumber()

	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode index list: %w", err)
	}

	indices := make([]int, 0, len(raw))
	for _, el := range raw {
		num, ok := el.(json.Number)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(num.String())
		if err != nil || idx < 0 || idx >= size {
			continue
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// stripCodeFence removes Markdown code fences the model sometimes wraps
// around its JSON.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
		text = strings.TrimSpace(text)
	}
	return text
}
