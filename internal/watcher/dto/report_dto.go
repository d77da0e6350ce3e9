package dto

import (
	"time"

	"stock-news-watcher/internal/entity"
)

// StageStatus is the outcome of one pipeline stage.
type StageStatus string

const (
	StageSuccess StageStatus = "SUCCESS"
	StageFailed  StageStatus = "FAILED"
	StageSkipped StageStatus = "SKIPPED"
)

// StageResult carries the status of a stage and its error, if any.
type StageResult struct {
	Status StageStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// RunReport summarizes a single watcher run. A run always produces a
// report; stage failures are recorded here instead of aborting the run.
type RunReport struct {
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Mode        entity.CheckMode `json:"mode,omitempty"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`

	TickerCount    int `json:"ticker_count"`
	CandidateCount int `json:"candidate_count"`
	ConfirmedBad   int `json:"confirmed_bad"`
	ConfirmedGood  int `json:"confirmed_good"`
	MailsSent      int `json:"mails_sent"`

	Watchlist StageResult `json:"watchlist"`
	Collect   StageResult `json:"collect"`
	Judge     StageResult `json:"judge"`
	Notify    StageResult `json:"notify"`
}
