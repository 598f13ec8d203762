package alert

import (
	"strings"
	"testing"
	"time"
)

func TestFormatReport(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	report := Report{
		ContentKind: "post",
		ContentID:   "post-1",
		ReporterID:  "user-9",
		Reason:      "spam",
		ReportedAt:  now.Add(-5 * time.Minute),
	}

	got := FormatReport(report, now)
	for _, want := range []string{"post post-1", "user-9", "spam", "5 minutes ago"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}
