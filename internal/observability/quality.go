package observability

import (
	"context"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

const maxSampleIssues = 3

// ReportQualityIssues logs the quality issues found at stage with the request
// correlation ids and counts them. Empty strings are ignored.
func ReportQualityIssues(ctx context.Context, log *logger.Logger, stage string, issues []string) {
	samples := make([]string, 0, maxSampleIssues)
	n := 0
	for _, issue := range issues {
		issue = strings.TrimSpace(issue)
		if issue == "" {
			continue
		}
		n++
		if len(samples) < maxSampleIssues {
			samples = append(samples, issue)
		}
	}
	if n == 0 {
		return
	}
	fields := []interface{}{"stage", orUnknown(stage), "issue_count", n, "sample_issues", samples}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		if td.TraceID != "" {
			fields = append(fields, "trace_id", td.TraceID)
		}
		if td.RequestID != "" {
			fields = append(fields, "request_id", td.RequestID)
		}
	}
	logger.OrNop(log).Warn("plan quality issues", fields...)
	if m := Current(); m != nil {
		m.qualityIssue.Add(float64(n))
	}
}
