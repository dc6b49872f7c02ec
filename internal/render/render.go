package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dugout/internal/core"
	"dugout/internal/enrich"
	"dugout/internal/mlb"
	"dugout/internal/sentiment"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	posStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ruleStyle    = lipgloss.NewStyle().Faint(true)
)

const snippetWidth = 76

// Result renders a full enrichment result: the stats block followed
// by the scored article listing and sentiment summary.
func Result(result enrich.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %s (%s)", result.Entity.Name, result.Entity.Kind)))
	b.WriteString("\n\n")
	b.WriteString(Stats(result.Entity, result.Stats, result.StatsOutcome))
	b.WriteString("\n")
	b.WriteString(Articles(result))
	return b.String()
}

// Stats renders the statistics block for an entity.
func Stats(entity core.Entity, payload mlb.StatsPayload, outcome enrich.Outcome) string {
	switch outcome {
	case enrich.OutcomeUpstreamFailure:
		return faintStyle.Render("No statistical data available (statistics fetch failed).") + "\n"
	case enrich.OutcomeNoData:
		return faintStyle.Render("No statistical data available.") + "\n"
	}

	split, ok := payload.FirstSplit()
	if !ok {
		return faintStyle.Render("No seasonal splits found.") + "\n"
	}

	switch entity.Kind {
	case core.KindPlayer:
		return playerStats(entity.Name, split)
	case core.KindTeam:
		return teamStats(entity.Name, split)
	default:
		return faintStyle.Render("No statistical data available.") + "\n"
	}
}

func playerStats(name string, split mlb.Split) string {
	var b strings.Builder

	team := "Unknown Team"
	if split.Team != nil && split.Team.Name != "" {
		team = split.Team.Name
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Season stats for %s (%s)", name, team)))
	b.WriteString("\n")

	// Hitting vs. pitching is inferred from which keys are present.
	if _, hitting := split.StatString("avg"); hitting {
		writeStatLine(&b, split, "Batting Average", "avg")
		writeStatLine(&b, split, "Hits", "hits")
		writeStatLine(&b, split, "Home Runs", "homeRuns")
		writeStatLine(&b, split, "RBIs", "rbi")
		writeStatLine(&b, split, "OPS", "ops")
	} else if _, pitching := split.StatString("era"); pitching {
		writeStatLine(&b, split, "ERA", "era")
		writeStatLine(&b, split, "Wins", "wins")
		writeStatLine(&b, split, "Losses", "losses")
		writeStatLine(&b, split, "Strikeouts", "strikeOuts")
		writeStatLine(&b, split, "WHIP", "whip")
	} else {
		for key := range split.Stat {
			writeStatLine(&b, split, key, key)
		}
	}
	return b.String()
}

func teamStats(name string, split mlb.Split) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Season stats for %s", name)))
	b.WriteString("\n")

	wins, _ := split.StatString("wins")
	losses, _ := split.StatString("losses")
	pct, _ := split.StatString("winPct")
	b.WriteString(fmt.Sprintf("  %-16s: %s-%s (%s)\n", "Record", orNA(wins), orNA(losses), orNA(pct)))
	writeStatLine(&b, split, "Runs Scored", "runsScored")
	writeStatLine(&b, split, "Runs Against", "runsAgainst")
	writeStatLine(&b, split, "Home Wins", "homeWins")
	writeStatLine(&b, split, "Away Wins", "awayWins")
	return b.String()
}

func writeStatLine(b *strings.Builder, split mlb.Split, label, key string) {
	value, ok := split.StatString(key)
	if !ok {
		value = "N/A"
	}
	b.WriteString(fmt.Sprintf("  %-16s: %s\n", label, value))
}

// Articles renders the scored article listing with a sentiment
// summary header and per-label distribution.
func Articles(result enrich.Result) string {
	if len(result.Articles) == 0 {
		if result.NewsOutcome == enrich.OutcomeUpstreamFailure {
			return faintStyle.Render("News could not be fetched.") + "\n"
		}
		return faintStyle.Render(fmt.Sprintf("No news articles found for %q (%s).",
			result.Entity.Name, result.Window)) + "\n"
	}

	var b strings.Builder
	rule := ruleStyle.Render(strings.Repeat("─", snippetWidth+4))

	avg := averageScore(result.Articles)
	b.WriteString(sectionStyle.Render(fmt.Sprintf("News for %s (%d articles)", result.Entity.Name, len(result.Articles))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Date window       : %s\n", result.Window))
	b.WriteString(fmt.Sprintf("  Average sentiment : %s (%s)\n", scoreText(avg), sentiment.Categorize(avg)))
	b.WriteString(rule + "\n")

	for i, article := range result.Articles {
		date := "N/A"
		if !article.PublishedAt.IsZero() {
			date = article.PublishedAt.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, article.Title))
		b.WriteString(fmt.Sprintf("   Date: %s    Sentiment: %s (%s)\n", date, scoreText(article.SentimentScore), article.SentimentLabel))

		if snip := snippet(article); snip != "" {
			b.WriteString("   Snippet:\n")
			for _, line := range wrap(snip, snippetWidth) {
				b.WriteString("     " + line + "\n")
			}
		}
		if article.URL != "" {
			b.WriteString("   Read more: " + faintStyle.Render(article.URL) + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString(distribution(result.Articles))
	return b.String()
}

// distribution prints a small per-label histogram in place of the
// original's score chart.
func distribution(articles []core.Article) string {
	order := []sentiment.Label{
		sentiment.StronglyNegative,
		sentiment.ModeratelyNegative,
		sentiment.SlightlyNegative,
		sentiment.Neutral,
		sentiment.SlightlyPositive,
		sentiment.ModeratelyPositive,
		sentiment.StronglyPositive,
	}
	counts := make(map[sentiment.Label]int)
	for _, a := range articles {
		counts[sentiment.Label(a.SentimentLabel)]++
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Sentiment distribution"))
	b.WriteString("\n")
	for _, label := range order {
		count := counts[label]
		if count == 0 {
			continue
		}
		bar := strings.Repeat("█", count)
		if strings.Contains(string(label), "negative") {
			bar = negStyle.Render(bar)
		} else if strings.Contains(string(label), "positive") {
			bar = posStyle.Render(bar)
		}
		b.WriteString(fmt.Sprintf("  %-20s %s %d\n", label, bar, count))
	}
	return b.String()
}

func averageScore(articles []core.Article) float64 {
	if len(articles) == 0 {
		return 0
	}
	var total float64
	for _, a := range articles {
		total += a.SentimentScore
	}
	return total / float64(len(articles))
}

func scoreText(score float64) string {
	text := fmt.Sprintf("%+.3f", score)
	if score > 0 {
		return posStyle.Render(text)
	}
	if score < 0 {
		return negStyle.Render(text)
	}
	return text
}

// snippet is the first 30 words of the description, falling back to
// content for display only (scoring never uses content).
func snippet(article core.Article) string {
	text := article.Description
	if text == "" {
		text = article.Content
	}
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	if len(words) > 30 {
		words = words[:30]
		return strings.Join(words, " ") + "..."
	}
	return strings.Join(words, " ")
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	var current string
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
