package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"radbytes.org/pulse/common/metrics"
)

// Categorizer assigns routed findings to one category of a fixed taxonomy.
// Each finding lands in at most one category; findings that cannot be placed are
// dropped.
type Categorizer struct {
	llm      Completer
	taxonomy *Taxonomy
}

func NewCategorizer(client Completer, taxonomy *Taxonomy) *Categorizer {
	return &Categorizer{llm: client, taxonomy: taxonomy}
}

func (c *Categorizer) Role() Role {
	return c.taxonomy.Role
}

// Categorize never fails. An empty input returns an empty result without a
// completion call; a completion error or an empty parse falls back to keywords.
func (c *Categorizer) Categorize(ctx context.Context, findings []string) Categorized {
	result := Categorized{Role: c.taxonomy.Role}
	if len(findings) == 0 {
		return result
	}

	text, err := c.llm.Complete(ctx, c.buildPrompt(findings))
	if err != nil {
		slog.WarnContext(ctx, "categorization failed, using keyword fallback", "error", err)
		result.Categories = c.fallback(findings)
		metrics.RecordFallback(c.stage())
		return result
	}

	result.Categories = c.parse(text, findings)
	if len(result.Categories) == 0 {
		slog.WarnContext(ctx, "no categories parsed, using keyword fallback",
			"finding_count", len(findings))
		result.Categories = c.fallback(findings)
		metrics.RecordFallback(c.stage())
		return result
	}

	slog.InfoContext(ctx, "findings categorized",
		"finding_count", len(findings),
		"categorized_count", result.Count(),
		"category_count", len(result.Categories))
	return result
}

func (c *Categorizer) parse(text string, findings []string) []CategoryFindings {
	byCategory := make(map[string][]string)
	committed := make(map[string]bool)

	for _, pair := range parseCategoryPairs(text, c.taxonomy.Has) {
		finding, ok := resolveItem(pair.item, findings)
		if !ok || committed[finding] {
			continue
		}
		committed[finding] = true
		byCategory[pair.category] = append(byCategory[pair.category], finding)
	}
	return c.taxonomy.ordered(byCategory)
}

func (c *Categorizer) fallback(findings []string) []CategoryFindings {
	byCategory := make(map[string][]string)
	for _, f := range findings {
		if category, ok := c.taxonomy.Match(f); ok {
			byCategory[category] = append(byCategory[category], f)
		}
	}
	return c.taxonomy.ordered(byCategory)
}

func (c *Categorizer) stage() string {
	if c.taxonomy.Role == RoleManager {
		return StageCategorizeManager
	}
	return StageCategorizeEmployee
}

func (c *Categorizer) buildPrompt(findings []string) string {
	var items strings.Builder
	for i, f := range findings {
		if i > 0 {
			items.WriteString("\n")
		}
		fmt.Fprintf(&items, "Item %d: %s", i+1, f)
	}

	return fmt.Sprintf(categorizePrompt,
		c.taxonomy.Analyst,
		c.taxonomy.Instruction,
		c.taxonomy.describe(),
		c.taxonomy.rules(),
		items.String(),
		c.taxonomy.Closing)
}

const categorizePrompt = `As a %s, %s

Categories and their themes:
%s

Classification Rules:
%s

Feedback items to categorize:
%s

Provide classification in this format:
ITEM: [exact feedback text]
CATEGORY: [exact category name]

%s`
