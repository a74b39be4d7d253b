package model

// NewsSummary is the compact news verdict attached to a scan match.
type NewsSummary struct {
	SafetyScore      int        `json:"safety_score"`
	Assessment       Assessment `json:"assessment"`
	Message          string     `json:"message"`
	OverallSentiment float64    `json:"overall_sentiment"`
	CriticalIssues   bool       `json:"critical_issues"`
	CriticalKeywords []string   `json:"critical_keywords"`
	NewsCount        int        `json:"news_count"`
}

// Summarize reduces an assessment to its summary.
func (a SafetyAssessment) Summarize() *NewsSummary {
	return &NewsSummary{
		SafetyScore:      a.SafetyScore,
		Assessment:       a.Assessment,
		Message:          a.Message,
		OverallSentiment: a.OverallSentiment,
		CriticalIssues:   a.CriticalIssues,
		CriticalKeywords: a.CriticalKeywordsFound,
		NewsCount:        len(a.News),
	}
}

// AnalyzedMatch is a scan match joined with its news verdict. NewsAnalysis
// and IsSafe are nil when news was not analysed.
type AnalyzedMatch struct {
	ScreenMatch
	NewsAnalysis *NewsSummary `json:"news_analysis"`
	IsSafe       *bool        `json:"is_safe"`
}
