package domain

// MatchResult is the verdict of one pattern against one input.
type MatchResult struct {
	Pattern string `json:"pattern"`
	Input   string `json:"input"`
	Matched bool   `json:"matched"`
	States  int    `json:"states"`
}
