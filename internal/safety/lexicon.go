package safety

import "strings"

// CriticalKeywords indicate legal, financial, safety or leadership trouble.
var CriticalKeywords = []string{
	// legal / regulatory
	"fraud", "fraudulent", "sec investigation", "doj investigation", "fbi investigation",
	"securities fraud", "accounting fraud", "lawsuit", "class action", "indictment",
	"charged", "criminal", "violation", "penalty", "fine", "settlement",

	// financial distress
	"bankruptcy", "chapter 11", "chapter 7", "insolvent", "insolvency",
	"default", "debt crisis", "liquidity crisis", "going concern",
	"delisting", "delisted",

	// scandals
	"scandal", "misconduct", "corruption", "bribery", "embezzlement",
	"whistleblower", "cover-up", "falsified",

	// product / safety
	"recall", "safety issue", "defect", "fatality", "death", "injury",
	"contamination", "toxic",

	// leadership
	"ceo arrested", "cfo arrested", "executive arrested", "resignation scandal",
	"fired for cause",

	// business
	"data breach", "hack", "ransomware", "customer data stolen",
	"major contract loss", "lost contract", "terminated partnership",
}

// ModerateKeywords are concerns that weigh less than critical ones.
var ModerateKeywords = []string{
	"downgrade", "underperform", "sell rating", "price target cut",
	"earnings miss", "revenue miss", "guidance cut", "layoffs",
	"restructuring", "cost cutting", "margin pressure",
}

// PositiveKeywords mark good news a general sentiment model tends to underrate.
var PositiveKeywords = []string{
	// analyst upgrades
	"upgraded to buy", "upgrade to buy", "upgraded to outperform", "upgrade to outperform",
	"upgraded to overweight", "upgrade to overweight", "upgraded to strong buy",
	"buy rating", "outperform rating", "overweight rating", "strong buy",
	"price target raised", "price target increased", "raises price target",
	"increases price target", "bullish", "bull case",

	// earnings / revenue
	"earnings beat", "beat earnings", "beats earnings", "revenue beat", "beat revenue",
	"beats revenue", "exceeds expectations", "exceeded expectations", "beat expectations",
	"beats expectations", "better than expected", "above expectations",
	"record revenue", "record earnings", "record profit", "strong earnings",
	"strong revenue", "guidance raised", "raises guidance", "raised guidance",

	// business
	"fda approval", "fda approved", "receives approval", "granted approval",
	"contract win", "wins contract", "won contract", "new contract",
	"partnership", "strategic partnership", "acquisition", "merger approved",
	"dividend increase", "raises dividend", "special dividend", "buyback",
	"share repurchase", "stock buyback",
}

// PriceMoveTerms and PriceMoveVerbs together describe a bare price decline.
var (
	PriceMoveTerms = []string{
		"stock", "stocks", "share", "shares", "price", "prices", "equity",
	}
	PriceMoveVerbs = []string{
		"down", "lower", "fall", "fell", "falls", "drop", "dropped", "drops", "decline",
		"declined", "slump", "slumped", "plunge", "plunged", "tumble", "tumbled",
		"sink", "sank", "slide", "slid", "plummet", "plummeted", "crash", "crashed",
		"tank", "tanked", "selloff", "sell-off",
	}
)

// Match returns the keywords contained in lowered text, in lexicon order.
// Matching is by substring.
func Match(lowered string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Evidence is the keyword hits of one text.
type Evidence struct {
	Critical []string
	Moderate []string
	Positive []string
}

// Inspect collects the keyword evidence of text.
func Inspect(text string) Evidence {
	lowered := strings.ToLower(text)
	return Evidence{
		Critical: Match(lowered, CriticalKeywords),
		Moderate: Match(lowered, ModerateKeywords),
		Positive: Match(lowered, PositiveKeywords),
	}
}

// PriceMoveOnly reports whether text only describes a price decline: it names
// a price term and a decline verb but no critical or moderate keyword.
func PriceMoveOnly(text string, ev Evidence) bool {
	lowered := strings.ToLower(text)
	if !containsAny(lowered, PriceMoveTerms) || !containsAny(lowered, PriceMoveVerbs) {
		return false
	}
	return len(ev.Critical) == 0 && len(ev.Moderate) == 0
}
