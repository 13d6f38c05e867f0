package migrate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Metadata is the typed view of a body's front-matter. Every field is
// optional; unrecognized keys are ignored. The raw attribute map is kept
// verbatim for traceability.
type Metadata struct {
	Title           string
	Overview        string
	CurrentProblems string
	Requirements    string

	// Priority as written ("high"). A bare number lands in PriorityRank
	// instead and is bucketed into a tier on the UI/UX path.
	Priority     string
	PriorityRank *int

	Estimate  *float64 // days
	Status    string
	Requestor string

	// Product reference: a human-readable name or a numeric source issue
	// id, resolved by ProductResolver.
	ProductRef string

	Platforms     []string
	Tags          []string
	GitlabTickets []int64

	Step                 string
	Assignee             string
	DueDate              *time.Time
	CompletionPercentage *int

	Raw map[string]interface{}
}

// ParseMetadata validates an untyped attribute map into a Metadata struct.
// Key aliases: overview|description, requestor|by, productName|product.
func ParseMetadata(attrs map[string]interface{}) *Metadata {
	m := &Metadata{Raw: attrs}

	m.Title = asString(attrs["title"])
	m.Overview = firstString(attrs, "overview", "description")
	m.CurrentProblems = asString(attrs["currentProblems"])
	m.Requirements = asString(attrs["requirements"])
	m.Status = asString(attrs["status"])
	m.Requestor = firstString(attrs, "requestor", "by")
	m.ProductRef = firstString(attrs, "productName", "product")
	m.Step = asString(attrs["step"])
	m.Assignee = asString(attrs["assignee"])

	switch v := attrs["priority"].(type) {
	case int:
		m.PriorityRank = &v
	case int64:
		rank := int(v)
		m.PriorityRank = &rank
	case float64:
		rank := int(v)
		m.PriorityRank = &rank
	default:
		m.Priority = asString(v)
	}

	if est, ok := asFloat(attrs["estimate"]); ok {
		m.Estimate = &est
	}
	if pct, ok := asInt(attrs["completionPercentage"]); ok {
		m.CompletionPercentage = &pct
	}

	m.Platforms = asStringList(attrs["platforms"])
	m.Tags = asStringList(attrs["tags"])
	m.GitlabTickets = asInt64List(attrs["gitlabTickets"])

	if due, ok := asTime(attrs["dueDate"]); ok {
		m.DueDate = &due
	}

	return m
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

func firstString(attrs map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := asString(attrs[key]); s != "" {
			return s
		}
	}
	return ""
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	f, ok := asFloat(v)
	return int(f), ok
}

func asStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		// A bare scalar is accepted as a single-element list
		if s := asString(v); s != "" {
			return []string{s}
		}
		return nil
	}

	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInt64List(v interface{}) []int64 {
	items, ok := v.([]interface{})
	if !ok {
		if n, scalarOK := asFloat(v); scalarOK {
			return []int64{int64(n)}
		}
		return nil
	}

	var out []int64
	for _, item := range items {
		if n, itemOK := asFloat(item); itemOK {
			out = append(out, int64(n))
		}
	}
	return out
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
