package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a model call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// StageMeta holds operational metadata for one generation stage.
type StageMeta struct {
	Stage   string
	Usage   TokenUsage
	Latency time.Duration
}
