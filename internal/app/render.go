package app

import (
	"fmt"
	"strings"

	"quizcast/internal/domain"
)

// RenderReport formats a daily report for the channel and the report command.
// A nil report renders the explicit no-activity notice.
func RenderReport(report *domain.Report) string {
	if report == nil {
		return "📭 No activity recorded today. Nothing to report."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 DAILY RESULTS — %s\n", report.Date.Format("02/01/2006"))
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	for _, g := range report.Groups {
		fmt.Fprintf(&b, "%s %s: %d/%d (%.0f%%)\n", labelIcon(g.Label), g.Topic, g.Correct, g.Total, g.Accuracy)
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "🎯 Overall accuracy: %.0f%% (%d/%d)", report.Accuracy, report.Correct, report.Total)
	return b.String()
}

func labelIcon(label string) string {
	switch label {
	case "good":
		return "✅"
	case "warning":
		return "⚠️"
	default:
		return "❌"
	}
}

// RenderRanking formats the top standings with the medal row used by the
// ranking command.
func RenderRanking(entries []domain.RankingEntry) string {
	if len(entries) == 0 {
		return "📭 The honor roll is empty."
	}

	medals := []string{"🥇", "🥈", "🥉", "🎖️", "🎖️"}
	var b strings.Builder
	b.WriteString("🏆 HONOR ROLL 🏆\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	for i, e := range entries {
		medal := "🎖️"
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(&b, "%s %s: %d pts\n", medal, e.DisplayName, e.Points)
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("Keep fighting for first place! 🪖")
	return b.String()
}

// RenderParticipantStats formats one participant's record sheet.
func RenderParticipantStats(name string, stats domain.ParticipantStats) string {
	if stats.Attempts == 0 {
		return "❌ No records for this participant."
	}
	effectiveness := int(float64(stats.Points) / float64(stats.Attempts) * 100)
	var b strings.Builder
	fmt.Fprintf(&b, "📊 SERVICE RECORD — %s\n", name)
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "✅ Correct: %d\n", stats.Points)
	fmt.Fprintf(&b, "❌ Wrong: %d\n", stats.Attempts-stats.Points)
	fmt.Fprintf(&b, "📝 Answered: %d\n", stats.Attempts)
	fmt.Fprintf(&b, "🎯 Effectiveness: %d%%\n", effectiveness)
	b.WriteString("━━━━━━━━━━━━━━━━━━")
	return b.String()
}
