package analytics

import (
	"fmt"
	"strings"
)

// Report is a rendered daily summary ready to email.
type Report struct {
	Subject string
	Text    string
	HTML    string
}

// BuildReport renders the daily email for the given stats. minViews is the
// threshold below which the day is not worth a report; callers should skip
// sending when ok is false.
func BuildReport(stats DayStats, minViews int64) (Report, bool) {
	if stats.Views < minViews {
		return Report{}, false
	}

	views := FormatNumber(stats.Views)
	visitors := FormatNumber(stats.UniqueVisitors)

	text := fmt.Sprintf("Portfolio stats for %s\n\nPage views: %s\nUnique visitors: %s\n",
		stats.Day, views, visitors)

	html := fmt.Sprintf(`<h2>Portfolio stats for %s</h2>
<p><strong>Page views:</strong> %s<br>
<strong>Unique visitors:</strong> %s</p>`, stats.Day, views, visitors)

	return Report{
		Subject: fmt.Sprintf("Daily Portfolio Analytics - %s", stats.Day),
		Text:    text,
		HTML:    html,
	}, true
}

// FormatNumber renders n with thousands separators (1234567 -> "1,234,567").
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
