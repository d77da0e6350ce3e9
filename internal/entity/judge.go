package entity

// JudgeMode selects which AI confirmation strategy a run uses.
type JudgeMode string

const (
	// JudgeModeExtraction sends only BAD-keyword candidates and asks the
	// model to extract the fatal ones; GOOD candidates can skip review.
	JudgeModeExtraction JudgeMode = "extraction"
	// JudgeModeClassification sends every candidate and asks the model to
	// label each one BAD, GOOD or IGNORE.
	JudgeModeClassification JudgeMode = "classification"
)
