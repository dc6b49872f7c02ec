package sentiment

import (
	"testing"

	"dugout/internal/core"
)

func TestCategorizeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Label
	}{
		{-1.0, StronglyNegative},
		{-0.6669, StronglyNegative},
		{-0.667, StronglyNegative},
		{-0.6, ModeratelyNegative},
		{-0.334, ModeratelyNegative},
		{-0.3339, SlightlyNegative},
		{-0.0001, SlightlyNegative},
		{0, Neutral},
		{0.0001, SlightlyPositive},
		{0.333, SlightlyPositive},
		{0.334, ModeratelyPositive},
		{0.666, ModeratelyPositive},
		{0.667, StronglyPositive},
		{1.0, StronglyPositive},
	}

	for _, tc := range cases {
		if got := Categorize(tc.score); got != tc.want {
			t.Errorf("Categorize(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoreEmptyTextIsNeutral(t *testing.T) {
	analyzer := NewAnalyzer()

	score := analyzer.Score("")
	if score != 0 {
		t.Errorf("empty text should score 0, got %v", score)
	}
	if Categorize(score) != Neutral {
		t.Errorf("empty text should categorize as Neutral, got %q", Categorize(score))
	}
}

func TestScoreSigns(t *testing.T) {
	analyzer := NewAnalyzer()

	positive := analyzer.Score("An amazing, wonderful win - truly great performance")
	if positive <= 0 {
		t.Errorf("positive text should score above 0, got %v", positive)
	}

	negative := analyzer.Score("A terrible, awful loss - truly horrible performance")
	if negative >= 0 {
		t.Errorf("negative text should score below 0, got %v", negative)
	}

	if positive < -1 || positive > 1 || negative < -1 || negative > 1 {
		t.Errorf("compound scores must stay in [-1,1], got %v and %v", positive, negative)
	}
}

func TestScoreArticles(t *testing.T) {
	analyzer := NewAnalyzer()

	articles := []core.Article{
		{Title: "one", Description: "A fantastic win for the team"},
		{Title: "two", Description: ""},
		{Title: "three", Description: "ignored", Content: "ignored too", Scored: true, SentimentScore: 0.5, SentimentLabel: string(ModeratelyPositive)},
	}

	scored := analyzer.ScoreArticles(articles)

	if !scored[0].Scored || scored[0].SentimentScore <= 0 {
		t.Errorf("first article should be scored positive, got %+v", scored[0])
	}
	if scored[0].SentimentLabel != string(Categorize(scored[0].SentimentScore)) {
		t.Errorf("label %q does not match score %v", scored[0].SentimentLabel, scored[0].SentimentScore)
	}

	// Articles without a description score as neutral text input
	if scored[1].SentimentScore != 0 || scored[1].SentimentLabel != string(Neutral) {
		t.Errorf("empty description should score neutral, got %+v", scored[1])
	}

	// Already-scored articles are never recomputed
	if scored[2].SentimentScore != 0.5 || scored[2].SentimentLabel != string(ModeratelyPositive) {
		t.Errorf("scored article should be left alone, got %+v", scored[2])
	}
}

func TestScoreArticlesNeverUsesContent(t *testing.T) {
	analyzer := NewAnalyzer()

	// Description absent but content present: content must not be scored.
	articles := analyzer.ScoreArticles([]core.Article{
		{Title: "one", Content: "An absolutely amazing spectacular wonderful triumph"},
	})
	if articles[0].SentimentScore != 0 {
		t.Errorf("content must never be scored, got %v", articles[0].SentimentScore)
	}
}
