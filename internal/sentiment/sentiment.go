package sentiment

import (
	"github.com/jonreiter/govader"

	"dugout/internal/core"
)

// Label is the discrete sentiment category for a compound score.
type Label string

const (
	StronglyNegative   Label = "Strongly negative"
	ModeratelyNegative Label = "Moderately negative"
	SlightlyNegative   Label = "Slightly negative"
	Neutral            Label = "Neutral"
	SlightlyPositive   Label = "Slightly positive"
	ModeratelyPositive Label = "Moderately positive"
	StronglyPositive   Label = "Strongly positive"
)

// Analyzer scores article text with the VADER lexicon model.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates a new sentiment analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		sia: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the compound polarity of text in [-1, 1]. Empty text
// is a valid input and scores as exactly zero.
func (a *Analyzer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	return a.sia.PolarityScores(text).Compound
}

// ScoreArticles attaches a compound score and category label to every
// article. The scored text is the description field only; articles
// without one score as neutral. Already-scored articles are left as
// they are.
func (a *Analyzer) ScoreArticles(articles []core.Article) []core.Article {
	for i := range articles {
		if articles[i].Scored {
			continue
		}
		score := a.Score(articles[i].Description)
		articles[i].SentimentScore = score
		articles[i].SentimentLabel = string(Categorize(score))
		articles[i].Scored = true
	}
	return articles
}

// Categorize maps a compound score onto the fixed seven-bucket scale.
// Boundaries are inclusive on the lower end of each bucket above:
// exactly -0.667 is still "Strongly negative".
func Categorize(score float64) Label {
	switch {
	case score <= -0.667:
		return StronglyNegative
	case score <= -0.334:
		return ModeratelyNegative
	case score < 0:
		return SlightlyNegative
	case score == 0:
		return Neutral
	case score <= 0.333:
		return SlightlyPositive
	case score <= 0.666:
		return ModeratelyPositive
	default:
		return StronglyPositive
	}
}
