package repository

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
)

// sheetsWatchlistRepository reads the watched tickers from a Google Sheets
// worksheet, one code per row in the first column.
type sheetsWatchlistRepository struct {
	cfg     *config.Config
	logger  *logger.Logger
	service *sheets.Service
}

// NewSheetsWatchlistRepository creates a Google Sheets backed watchlist
// repository. The API client is built lazily on first use so credential
// problems surface as a failed load, not a crash at startup.
func NewSheetsWatchlistRepository(cfg *config.Config, log *logger.Logger) WatchlistRepository {
	return &sheetsWatchlistRepository{cfg: cfg, logger: log}
}

func (r *sheetsWatchlistRepository) GetTickers(ctx context.Context) ([]string, error) {
	srv, err := r.sheetsService(ctx)
	if err != nil {
		return nil, err
	}

	readRange := fmt.Sprintf("'%s'!A2:A", r.cfg.Sheets.WorksheetName)
	resp, err := srv.Spreadsheets.Values.Get(r.cfg.Sheets.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist range: %w", err)
	}

	tickers := normalizeTickers(resp.Values, r.cfg.Sheets.MarketSuffix)
	r.logger.DebugContext(ctx, "Watchlist rows read",
		logger.IntField("rows", len(resp.Values)),
		logger.IntField("tickers", len(tickers)))
	return tickers, nil
}

func (r *sheetsWatchlistRepository) sheetsService(ctx context.Context) (*sheets.Service, error) {
	if r.service != nil {
		return r.service, nil
	}

	if r.cfg.Sheets.CredentialsJSON == "" {
		return nil, fmt.Errorf("google service account credentials are not configured")
	}
	jwtCfg, err := google.JWTConfigFromJSON([]byte(r.cfg.Sheets.CredentialsJSON), sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	r.service = srv
	return srv, nil
}

// normalizeTickers turns raw sheet rows into exchange-qualified ticker
// codes. Blank rows are skipped, codes missing the market suffix get it
// appended and duplicates keep their first position.
func normalizeTickers(rows [][]interface{}, marketSuffix string) []string {
	seen := make(map[string]struct{}, len(rows))
	tickers := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(fmt.Sprintf("%v", row[0]))
		if code == "" {
			continue
		}
		if marketSuffix != "" && !strings.HasSuffix(code, marketSuffix) {
			code += marketSuffix
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		tickers = append(tickers, code)
	}
	return tickers
}
