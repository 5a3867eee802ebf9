package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wodwise/wodwise/internal/analysis"
	"github.com/wodwise/wodwise/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/codes"
)

const noticesSystemPrompt = `You are an experienced strength-and-conditioning coach.
You receive program-level statistics of a training program as JSON.
Write 5 to 8 short, concrete coaching observations about balance, recovery and variety.
Respond with one observation per line, plain text, no numbering, no markdown.`

// NoticeWriter asks a chat model for free-form coaching notices on top
// of a finished analysis. It only ever appends; the deterministic
// notices are not shown to it.
type NoticeWriter struct {
	client *Client
}

func NewNoticeWriter(client *Client) *NoticeWriter {
	return &NoticeWriter{client: client}
}

func (nw *NoticeWriter) WriteNotices(ctx context.Context, result *analysis.AnalysisResult) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "llm.noticeWriter.writeNotices")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	stats := *result
	stats.Notices = nil
	statsJson, err := json.Marshal(&stats)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis stats: %w", err)
	}

	reply, err := nw.client.SimpleChat(ctx, noticesSystemPrompt, string(statsJson))
	if err != nil {
		return nil, fmt.Errorf("chat notices: %w", err)
	}

	var notices []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		notices = append(notices, line)
	}
	if len(notices) == 0 {
		return nil, fmt.Errorf("chat notices reply was empty")
	}
	return notices, nil
}
