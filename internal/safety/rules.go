package safety

import "math"

// Rule overrides a model polarity when its keyword precondition holds.
type Rule struct {
	Name    string
	Applies func(Evidence) bool
	Clamp   func(polarity float64) float64
}

func floorAt(v float64) func(float64) float64 {
	return func(p float64) float64 { return math.Max(p, v) }
}

func capAt(v float64) func(float64) float64 {
	return func(p float64) float64 { return math.Min(p, v) }
}

// DefaultRules in precedence order: critical, positive, moderate.
var DefaultRules = []Rule{
	{
		Name:    "critical",
		Applies: func(ev Evidence) bool { return len(ev.Critical) > 0 },
		Clamp:   capAt(-0.5),
	},
	{
		Name:    "positive",
		Applies: func(ev Evidence) bool { return len(ev.Positive) > 0 && len(ev.Critical) == 0 },
		Clamp:   floorAt(0.5),
	},
	{
		Name:    "moderate",
		Applies: func(ev Evidence) bool { return len(ev.Moderate) > 0 && len(ev.Positive) == 0 },
		Clamp:   capAt(-0.2),
	},
}

// ApplyRules clamps polarity with the first rule whose precondition holds.
func ApplyRules(rules []Rule, polarity float64, ev Evidence) float64 {
	for _, r := range rules {
		if r.Applies(ev) {
			return r.Clamp(polarity)
		}
	}
	return polarity
}

// Interpret labels a polarity.
func Interpret(polarity float64) string {
	switch {
	case polarity > 0.1:
		return "positive"
	case polarity < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}
