package safety

import "github.com/jonreiter/govader"

// SentimentModel scores free text. Polarity is in [-1,1], subjectivity in [0,1].
type SentimentModel interface {
	Score(text string) (polarity, subjectivity float64)
}

// VaderModel is the default lexicon-based model.
type VaderModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderModel creates a VADER model.
func NewVaderModel() *VaderModel {
	return &VaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score maps the compound score to polarity and the non-neutral share to subjectivity.
func (m *VaderModel) Score(text string) (float64, float64) {
	s := m.analyzer.PolarityScores(text)
	return s.Compound, 1 - s.Neutral
}
