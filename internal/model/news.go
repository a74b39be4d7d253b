package model

// Assessment is the categorical verdict on a ticker's recent news.
type Assessment string

const (
	AssessmentSafe    Assessment = "safe"
	AssessmentCaution Assessment = "caution"
	AssessmentAvoid   Assessment = "avoid"
	AssessmentUnknown Assessment = "unknown"
)

// Headline is a raw feed entry before scoring.
type Headline struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Link    string `json:"link"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// Text is the string the scorer analyses.
func (h Headline) Text() string {
	return h.Title + " " + h.Summary
}

// Sentiment is the polarity of one headline after keyword overrides.
type Sentiment struct {
	Polarity       float64 `json:"polarity"`
	Subjectivity   float64 `json:"subjectivity"`
	Interpretation string  `json:"interpretation"`
}

// NewsItem is a scored headline.
type NewsItem struct {
	Headline
	Sentiment           Sentiment `json:"sentiment"`
	HasCriticalKeywords bool      `json:"has_critical_keywords"`
	CriticalKeywords    []string  `json:"critical_keywords"`
	HasModerateKeywords bool      `json:"has_moderate_keywords"`
	ModerateKeywords    []string  `json:"moderate_keywords"`
	PriceMoveOnly       bool      `json:"price_move_only"`
}

// SafetyAssessment aggregates the scored news of one ticker.
type SafetyAssessment struct {
	Ticker                string     `json:"ticker"`
	News                  []NewsItem `json:"news"`
	OverallSentiment      float64    `json:"overall_sentiment"`
	CriticalIssues        bool       `json:"critical_issues"`
	CriticalKeywordsFound []string   `json:"critical_keywords_found"`
	ModerateIssues        bool       `json:"moderate_issues"`
	ModerateKeywordsFound []string   `json:"moderate_keywords_found"`
	SafetyScore           int        `json:"safety_score"`
	Assessment            Assessment `json:"assessment"`
	Message               string     `json:"message"`
}
