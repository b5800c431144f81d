package filter

import (
	"strings"

	"github.com/metaminer/metaminer/internal/model"
)

// Keywords splits comma-separated search text into lower-case terms
func Keywords(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if kw := strings.ToLower(strings.TrimSpace(part)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// MatchKeywords returns the distinct values containing any keyword,
// case-insensitively, in first-appearance order.
func MatchKeywords(values []string, text string) []string {
	keywords := Keywords(text)
	if len(keywords) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		lower := strings.ToLower(v)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				seen[v] = true
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// ResolveSelection computes the multi-select value after an update.
//
//   - EditText: previous selection plus every match
//   - EditDropdown: the selection as the user left it
//   - EditExternal: the previous selection minus values no longer available
//
// In every case values missing from available are dropped, so the selection
// always stays a subset of the options offered.
func ResolveSelection(ctl KeywordControl, matches, available []string) []string {
	offered := toSet(available)

	var candidates []string
	switch ctl.Edit {
	case EditText:
		candidates = append(cloneStrings(ctl.Selected), matches...)
	case EditDropdown:
		candidates = ctl.Selected
	default:
		previous := toSet(ctl.Selected)
		for _, v := range available {
			if previous[v] {
				candidates = append(candidates, v)
			}
		}
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] || !offered[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// KeywordResult is the outcome of one keyword facet
type KeywordResult struct {
	View     *model.Table
	Options  []string // values offered before this facet filtered
	Matches  []string
	Selected []string
}

// Keyword applies a keyword-search multi-select to a free-text field. An empty
// effective selection passes the table through.
func Keyword(t *model.Table, field model.Field, ctl KeywordControl) KeywordResult {
	options := t.Distinct(field)
	matches := MatchKeywords(options, ctl.Text)
	selected := ResolveSelection(ctl, matches, options)

	view := t
	if len(selected) > 0 {
		view = Membership(t, field, selected)
	}
	return KeywordResult{
		View:     view,
		Options:  options,
		Matches:  matches,
		Selected: selected,
	}
}
