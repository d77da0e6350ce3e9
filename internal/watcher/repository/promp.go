package repository

import (
	"fmt"
	"strings"

	"stock-news-watcher/internal/entity"
)

// BuildExtractionPrompt lists bad news candidates and asks the model to
// return the IDs of the fatal ones as a JSON array. The optional contents
// map carries article excerpts keyed by candidate index.
func BuildExtractionPrompt(items []entity.NewsItem, contents map[int]string) string {
	var newsBuilder strings.Builder
	for i, item := range items {
		newsBuilder.WriteString(fmt.Sprintf("ID:%d [銘柄:%s] %s\n", i, item.Ticker, item.Title))
		if excerpt := contents[i]; excerpt != "" {
			newsBuilder.WriteString(fmt.Sprintf("  本文抜粋: %s\n", excerpt))
		}
	}

	promptTemplate := `あなたはプロの機関投資家です。
以下の「悪材料候補ニュース」の中から、株価暴落につながる**致命的な悪材料**のIDのみを抽出してください。

【ニュースリスト】
%s
【指示】
- 決算の赤字転落、下方修正、不祥事、訴訟など、インパクトが大きいものを選んでください。
- 軽微な減益や、よくある定型的なマイナスニュースは無視してください。
- **該当するニュースのID（整数）をJSONのリスト形式**で回答してください。該当なしの場合は空リスト [] を返してください。

出力例:
[0, 2, 5]`

	return fmt.Sprintf(promptTemplate, newsBuilder.String())
}

// BuildGoodExtractionPrompt is the positive mirror of BuildExtractionPrompt,
// used when keyword-matched good news also needs model confirmation.
func BuildGoodExtractionPrompt(items []entity.NewsItem, contents map[int]string) string {
	var newsBuilder strings.Builder
	for i, item := range items {
		newsBuilder.WriteString(fmt.Sprintf("ID:%d [銘柄:%s] %s\n", i, item.Ticker, item.Title))
		if excerpt := contents[i]; excerpt != "" {
			newsBuilder.WriteString(fmt.Sprintf("  本文抜粋: %s\n", excerpt))
		}
	}

	promptTemplate := `あなたはプロの機関投資家です。
以下の「好材料候補ニュース」の中から、株価暴騰につながる**強い好材料（福音）**のIDのみを抽出してください。

【ニュースリスト】
%s
【指示】
- 上方修正、増配、自社株買い、大型提携など、インパクトが大きいものを選んでください。
- 軽微な増益や、よくある定型的なプラスニュースは無視してください。
- **該当するニュースのID（整数）をJSONのリスト形式**で回答してください。該当なしの場合は空リスト [] を返してください。

出力例:
[0, 2, 5]`

	return fmt.Sprintf(promptTemplate, newsBuilder.String())
}

// BuildClassificationPrompt lists every candidate and asks the model to
// label each line BAD, GOOD or IGNORE.
func BuildClassificationPrompt(items []entity.NewsItem) string {
	var builder strings.Builder
	builder.WriteString("あなたはプロの機関投資家です。以下の日本株ニュースについて判定してください。\n\n")
	for i, item := range items {
		builder.WriteString(fmt.Sprintf("No.%d [銘柄:%s] タイトル: %s\n", i, item.Ticker, item.Title))
	}
	builder.WriteString(`
【指示】
各ニュースについて、以下の基準で判定し、結果のみを回答してください。
・株価が暴落する致命的な悪材料なら「BAD」
・株価が暴騰する強い好材料（福音）なら「GOOD」
・どちらでもない、または影響が軽微なら「IGNORE」

回答フォーマット:
No.0: BAD
No.1: IGNORE
`)
	return builder.String()
}
