package common

// Keyword lists used to triage headlines before the AI confirmation pass.
// Config may override each list; these are the shipped defaults.
var (
	// DefaultIgnoreKeywords mark promotional noise that is dropped outright.
	DefaultIgnoreKeywords = []string{
		"PR TIMES",
		"キャンペーン",
		"開催",
		"お知らせ",
		"募集",
		"オープン",
		"記念",
		"発売",
	}

	// DefaultBadKeywords flag potential crash-risk news.
	DefaultBadKeywords = []string{
		"下方修正",
		"減益",
		"赤字",
		"損失",
		"暴落",
		"ストップ安",
		"提訴",
		"訴訟",
		"疑義",
		"監理",
		"廃止",
		"売却",
		"不祥事",
		"不正",
		"リコール",
	}

	// DefaultGoodKeywords flag potential surge news.
	DefaultGoodKeywords = []string{
		"上方修正",
		"増益",
		"復配",
		"増配",
		"自社株買い",
		"株式分割",
		"提携",
		"買収",
		"ストップ高",
		"最高益",
		"黒字化",
		"承認",
	}
)
