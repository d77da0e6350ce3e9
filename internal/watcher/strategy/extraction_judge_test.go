package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
)

// fakeAIRepository replays canned responses and records every prompt.
type fakeAIRepository struct {
	responses []string
	errs      []error
	prompts   []string
	models    []string
}

func (f *fakeAIRepository) GenerateText(_ context.Context, model, prompt string) (string, error) {
	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if call < len(f.errs) && f.errs[call] != nil {
		return "", f.errs[call]
	}
	if call < len(f.responses) {
		return f.responses[call], nil
	}
	return "[]", nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func newJudgeTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Judge.Mode = "extraction"
	cfg.Judge.TrustKeywordGood = true
	cfg.Judge.Extraction.Model = "gemini-2.5-flash"
	cfg.Judge.Extraction.BatchSize = 30
	cfg.Judge.Classification.Model = "gemini-1.5-flash"
	cfg.Judge.Classification.BatchSize = 10
	return cfg
}

func newsItem(ticker, title string, category entity.Category) entity.NewsItem {
	return entity.NewsItem{Ticker: ticker, Title: title, Link: "https://example.com/" + ticker, Category: category}
}

func TestExtractionJudgeConfirmsBad(t *testing.T) {
	ai := &fakeAIRepository{responses: []string{"[1]"}}
	judge := NewExtractionJudge(newJudgeTestConfig(), newTestLogger(t), ai, nil)

	candidates := []entity.NewsItem{
		newsItem("7203.T", "軽微な減益", entity.CategoryBad),
		newsItem("9984.T", "巨額損失で赤字転落", entity.CategoryBad),
		newsItem("6758.T", "上方修正を発表", entity.CategoryGood),
	}

	bad, good, err := judge.Judge(context.Background(), candidates)
	require.NoError(t, err)

	require.Len(t, bad, 1)
	assert.Equal(t, "9984.T", bad[0].Ticker)

	require.Len(t, good, 1, "keyword-matched good news is trusted without a model call")
	assert.Equal(t, "6758.T", good[0].Ticker)

	require.Len(t, ai.prompts, 1)
	assert.Equal(t, "gemini-2.5-flash", ai.models[0])
	assert.Contains(t, ai.prompts[0], "ID:0 [銘柄:7203.T] 軽微な減益")
	assert.Contains(t, ai.prompts[0], "ID:1 [銘柄:9984.T] 巨額損失で赤字転落")
	assert.NotContains(t, ai.prompts[0], "上方修正", "good candidates stay out of the bad prompt")
}

func TestExtractionJudgeCodeFence(t *testing.T) {
	ai := &fakeAIRepository{responses: []string{"```json\n[0]\n```"}}
	judge := NewExtractionJudge(newJudgeTestConfig(), newTestLogger(t), ai, nil)

	bad, _, err := judge.Judge(context.Background(), []entity.NewsItem{
		newsItem("7203.T", "下方修正を発表", entity.CategoryBad),
	})
	require.NoError(t, err)
	require.Len(t, bad, 1)
}

func TestExtractionJudgeBatches(t *testing.T) {
	cfg := newJudgeTestConfig()
	cfg.Judge.Extraction.BatchSize = 2

	ai := &fakeAIRepository{responses: []string{"[0]", "[0]"}}
	judge := NewExtractionJudge(cfg, newTestLogger(t), ai, nil)

	candidates := []entity.NewsItem{
		newsItem("1111.T", "赤字転落", entity.CategoryBad),
		newsItem("2222.T", "減益見通し", entity.CategoryBad),
		newsItem("3333.T", "不正発覚", entity.CategoryBad),
	}

	bad, _, err := judge.Judge(context.Background(), candidates)
	require.NoError(t, err)

	require.Len(t, ai.prompts, 2)
	assert.Contains(t, ai.prompts[1], "ID:0 [銘柄:3333.T]", "indices restart per batch")

	require.Len(t, bad, 2)
	assert.Equal(t, "1111.T", bad[0].Ticker)
	assert.Equal(t, "3333.T", bad[1].Ticker)
}

func TestExtractionJudgeDropsFailedBatch(t *testing.T) {
	cfg := newJudgeTestConfig()
	cfg.Judge.Extraction.BatchSize = 1

	ai := &fakeAIRepository{
		responses: []string{"", "[0]"},
		errs:      []error{errors.New("quota exceeded"), nil},
	}
	judge := NewExtractionJudge(cfg, newTestLogger(t), ai, nil)

	bad, _, err := judge.Judge(context.Background(), []entity.NewsItem{
		newsItem("1111.T", "赤字転落", entity.CategoryBad),
		newsItem("2222.T", "訴訟リスク", entity.CategoryBad),
	})
	require.NoError(t, err, "a failed batch is dropped, not escalated")

	require.Len(t, bad, 1)
	assert.Equal(t, "2222.T", bad[0].Ticker)
}

func TestExtractionJudgeMalformedResponseDropsBatch(t *testing.T) {
	ai := &fakeAIRepository{responses: []string{"該当なしです"}}
	judge := NewExtractionJudge(newJudgeTestConfig(), newTestLogger(t), ai, nil)

	bad, _, err := judge.Judge(context.Background(), []entity.NewsItem{
		newsItem("7203.T", "下方修正を発表", entity.CategoryBad),
	})
	require.NoError(t, err)
	assert.Empty(t, bad)
}

func TestExtractionJudgeEmptyCandidates(t *testing.T) {
	ai := &fakeAIRepository{}
	judge := NewExtractionJudge(newJudgeTestConfig(), newTestLogger(t), ai, nil)

	bad, good, err := judge.Judge(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, bad)
	assert.Empty(t, good)
	assert.Empty(t, ai.prompts, "no model calls without candidates")
}

func TestExtractionJudgeReviewsGoodWhenNotTrusted(t *testing.T) {
	cfg := newJudgeTestConfig()
	cfg.Judge.TrustKeywordGood = false

	ai := &fakeAIRepository{responses: []string{"[]", "[0]"}}
	judge := NewExtractionJudge(cfg, newTestLogger(t), ai, nil)

	candidates := []entity.NewsItem{
		newsItem("7203.T", "軽微な減益", entity.CategoryBad),
		newsItem("6758.T", "大型買収を発表", entity.CategoryGood),
	}

	bad, good, err := judge.Judge(context.Background(), candidates)
	require.NoError(t, err)

	assert.Empty(t, bad)
	require.Len(t, good, 1)
	assert.Equal(t, "6758.T", good[0].Ticker)

	require.Len(t, ai.prompts, 2)
	assert.Contains(t, ai.prompts[1], "好材料候補ニュース")
}

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		want    []int
		wantErr bool
	}{
		{name: "plain array", text: "[0, 2, 5]", size: 6, want: []int{0, 2, 5}},
		{name: "fenced array", text: "```json\n[1]\n```", size: 3, want: []int{1}},
		{name: "empty array", text: "[]", size: 3, want: []int{}},
		{name: "out of range skipped", text: "[0, 9]", size: 3, want: []int{0}},
		{name: "negative skipped", text: "[-1, 1]", size: 3, want: []int{1}},
		{name: "float skipped", text: "[1.5, 2]", size: 3, want: []int{2}},
		{name: "strings skipped", text: `["1", 2]`, size: 3, want: []int{2}},
		{name: "not an array", text: "該当なし", size: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndexList(tt.text, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
