package domain

import "errors"

// InvalidAnswer is the fixed reply for anything the safety filter rejects.
const InvalidAnswer = "INVALID"

var (
	ErrInvalidQuery       = errors.New("invalid query")
	ErrModelNotConfigured = errors.New("model not configured")
	ErrModelTimeout       = errors.New("model timeout")
	ErrModelUnavailable   = errors.New("model unavailable")
)

// AnswerPath records which branch of the answer pipeline produced the answer.
type AnswerPath string

const (
	PathFiltered AnswerPath = "filtered"
	PathModel    AnswerPath = "model"
	PathFallback AnswerPath = "fallback"
	PathFreeTier AnswerPath = "free_tier"
)

// QueryResult is the envelope returned for every query. The JSON shape is part
// of the public contract; Path is internal bookkeeping only.
type QueryResult struct {
	Query       string  `json:"query"`
	User        string  `json:"user"`
	ClientCount int     `json:"clientCount"`
	Answer      string  `json:"answer"`
	ModelUsed   bool    `json:"modelUsed"`
	Error       *string `json:"error"`

	Path AnswerPath `json:"-"`
}
