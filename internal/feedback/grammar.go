package feedback

import (
	"strconv"
	"strings"
)

// Completions are read as line-oriented micro-formats. Each line is trimmed, and
// only lines starting with a known marker carry data; everything else is ignored.
//
//	FINDING: <text>
//	ROUTING: <MANAGER_ONLY|EMPLOYEE_ONLY|BOTH>: <text>
//	ITEM: <text>
//	CATEGORY: <category name>
//	ACTION: <step>
const (
	markerFinding  = "FINDING:"
	markerRouting  = "ROUTING:"
	markerItem     = "ITEM:"
	markerCategory = "CATEGORY:"
	markerAction   = "ACTION:"
)

const (
	tagManagerOnly  = "MANAGER_ONLY"
	tagEmployeeOnly = "EMPLOYEE_ONLY"
	tagBoth         = "BOTH"
)

// markedValues returns the trimmed, non-empty payloads of every line carrying marker.
func markedValues(text, marker string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		value, ok := strings.CutPrefix(line, marker)
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func parseFindings(text string) []string {
	return markedValues(text, markerFinding)
}

func parseActions(text string) []string {
	return markedValues(text, markerAction)
}

// parseTitle strips whitespace and surrounding quote characters.
func parseTitle(text string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `'"`))
}

// parseRouting splits ROUTING lines into manager and employee lists. routed counts
// lines with a recognised tag; a line without a second colon is skipped.
func parseRouting(text string) (manager, employee []string, routed int) {
	for _, content := range markedValues(text, markerRouting) {
		tag, item, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		switch strings.TrimSpace(tag) {
		case tagManagerOnly:
			manager = append(manager, item)
		case tagEmployeeOnly:
			employee = append(employee, item)
		case tagBoth:
			manager = append(manager, item)
			employee = append(employee, item)
		default:
			continue
		}
		routed++
	}
	return manager, employee, routed
}

// categoryPair is one committed ITEM/CATEGORY pair.
type categoryPair struct {
	item     string
	category string
}

// parseCategoryPairs runs the strict pairwise state machine: ITEM sets the pending
// item, the next CATEGORY line commits it when known is true for the category, and
// any CATEGORY line clears the pending item. A second ITEM before a CATEGORY
// replaces the first.
func parseCategoryPairs(text string, known func(string) bool) []categoryPair {
	var (
		pairs   []categoryPair
		pending string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if value, ok := strings.CutPrefix(line, markerItem); ok {
			pending = strings.TrimSpace(value)
			continue
		}
		if value, ok := strings.CutPrefix(line, markerCategory); ok {
			category := strings.TrimSpace(value)
			if pending != "" && known(category) {
				pairs = append(pairs, categoryPair{item: pending, category: category})
			}
			pending = ""
		}
	}
	return pairs
}

// resolveItem maps an ITEM payload back to one of the input findings. The model is
// asked to echo the exact text, so an exact match wins; otherwise a case-insensitive
// match or an "Item N" reference is accepted.
func resolveItem(item string, findings []string) (string, bool) {
	for _, f := range findings {
		if f == item {
			return f, true
		}
	}

	ref, rest, hasRest := strings.Cut(item, ":")
	if n, found := itemIndex(ref); found {
		if n >= 1 && n <= len(findings) {
			return findings[n-1], true
		}
		if hasRest {
			item = strings.TrimSpace(rest)
		}
	}

	for _, f := range findings {
		if strings.EqualFold(strings.TrimSpace(f), item) {
			return f, true
		}
	}
	return "", false
}

func itemIndex(ref string) (int, bool) {
	num, ok := strings.CutPrefix(strings.TrimSpace(ref), "Item ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, false
	}
	return n, true
}
