package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/common/metrics"
	"radbytes.org/pulse/internal/model"
)

type FindingsResponse struct {
	Findings []string `json:"findings" jsonschema_description:"Between 2 and 6 short findings, each starting with 'Employee expressed/mentioned/indicated/shared'"`
}

var findingsSchema = llm.GenerateSchema[FindingsResponse]()

// FindingExtractor turns an employee's messages into short literal observations.
type FindingExtractor struct {
	llm        Completer
	structured bool
}

// NewFindingExtractor returns an extractor. With structured set and a client that
// implements StructuredCompleter, findings are requested as JSON instead of marker lines.
func NewFindingExtractor(client Completer, structured bool) *FindingExtractor {
	return &FindingExtractor{llm: client, structured: structured}
}

// EmployeeMessages keeps the employee-authored turns of a conversation, in order.
func EmployeeMessages(conversation []model.ChatMessage) []string {
	out := make([]string, 0, len(conversation))
	for _, m := range conversation {
		if !m.IsAI {
			out = append(out, m.Message)
		}
	}
	return out
}

// Extract never fails: a completion error or an unparseable reply yields the single
// FallbackFinding.
func (e *FindingExtractor) Extract(ctx context.Context, messages []string) []Finding {
	prompt := buildFindingsPrompt(messages)

	var (
		raw []string
		err error
	)
	if sc, ok := e.llm.(StructuredCompleter); ok && e.structured {
		raw, err = e.extractStructured(ctx, sc, prompt)
	} else {
		raw, err = e.extractMarked(ctx, prompt)
	}

	if err != nil {
		slog.WarnContext(ctx, "finding extraction failed, using fallback", "error", err)
		metrics.RecordFallback(StageExtract)
		return []Finding{FallbackFinding}
	}
	if len(raw) == 0 {
		slog.WarnContext(ctx, "no findings parsed, using fallback", "message_count", len(messages))
		metrics.RecordFallback(StageExtract)
		return []Finding{FallbackFinding}
	}

	findings := make([]Finding, len(raw))
	for i, f := range raw {
		findings[i] = Finding(f)
	}

	slog.InfoContext(ctx, "findings extracted",
		"message_count", len(messages),
		"finding_count", len(findings))
	return findings
}

func (e *FindingExtractor) extractMarked(ctx context.Context, prompt string) ([]string, error) {
	text, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete findings: %w", err)
	}
	return parseFindings(text), nil
}

func (e *FindingExtractor) extractStructured(ctx context.Context, sc StructuredCompleter, prompt string) ([]string, error) {
	var resp FindingsResponse
	if _, err := sc.Chat(ctx, llm.Request{
		UserPrompt:  prompt + findingsStructuredSuffix,
		SchemaName:  "findings_response",
		Schema:      findingsSchema,
		Temperature: llm.Temp(0.2),
	}, &resp); err != nil {
		return nil, fmt.Errorf("structured findings: %w", err)
	}

	out := make([]string, 0, len(resp.Findings))
	for _, f := range resp.Findings {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

// Findings strips the newtype for stages that work on plain strings.
func Findings(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = string(f)
	}
	return out
}

func buildFindingsPrompt(messages []string) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(m)
	}
	return fmt.Sprintf(findingsPrompt, sb.String())
}

const findingsStructuredSuffix = `

Return the findings as the "findings" array instead of FINDING: lines.`

const findingsPrompt = `As a feedback analyst, review these employee messages and provide key findings.
Follow these strict guidelines:

1. Start each finding with "Employee expressed/mentioned/indicated/shared"
2. Focus only on what was directly expressed, not implications
3. Keep each finding to a single, clear point
4. Be concise and specific
5. Avoid speculation or extrapolation
6. Use simple, direct language
7. If the employee has made any rude or unreasonable comments, do not include them in the key findings.
8. Do not include any key points that may make the employee look incompetent.
9. Try not to have multiple key findings that are essentially the same.
10. Keep each key finding to about 10 words. Split a compound observation into several findings.
For example, 'Employee suggested a more systematic approach to scheduling and a collaborative tool for better task visibility.'
becomes 'Employee suggested implementing a systematic scheduling approach' and 'Employee requested a collaborative tool for task visibility'.

Employee Feedback:
%s

Provide between 2 and 6 key findings. Format each as:
FINDING: [Direct, concise observation of what was expressed]

Example good findings:
- Employee expressed concern over lack of clear task ownership
- Employee mentioned difficulties with current project management tools
- Employee indicated interest in more challenging assignments

Example bad findings (too interpretative/speculative):
- Lack of clear task ownership is causing efficiency issues
- Project management tools need to be upgraded
- Team would benefit from more challenging assignments

Focus on capturing what was actually expressed by the employee.`
