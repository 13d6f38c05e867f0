package migrate

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/prodboard/prodboard/internal/models"
	"github.com/prodboard/prodboard/internal/services/gitlab"
)

// Fallback titles when neither the metadata nor the source record names one
const (
	untitledFeature = "Untitled Feature"
	untitledRequest = "Untitled Request"
)

// FeatureFromNote maps a ticket note and its parsed metadata into a Feature
// row. Pure transformation: inputs are never mutated, the product FK is
// resolved separately.
func FeatureFromNote(note gitlab.Note, ticketIID, projectID int64, meta *Metadata) models.Feature {
	f := models.Feature{
		Title:           meta.Title,
		Overview:        meta.Overview,
		CurrentProblems: meta.CurrentProblems,
		Requirements:    meta.Requirements,
		Priority:        meta.Priority,
		Estimate:        meta.Estimate,
		Status:          meta.Status,
		Requestor:       requestor(meta, note.Author),
		GitlabIssueIID:  ptr(ticketIID),
		GitlabProjectID: ptr(projectID),
		GitlabNoteID:    ptr(note.ID),
		RawMetadata:     rawJSON(meta.Raw),
	}

	if f.Title == "" {
		f.Title = untitledFeature
	}
	if f.Priority == "" {
		f.Priority = "medium"
	}
	if f.Status == "" {
		f.Status = "pending"
	}
	return f
}

// FeatureFromIssue maps a labeled issue (fenced-yaml convention) into a
// Feature row. Falls back to the issue's own title before the literal default.
func FeatureFromIssue(issue gitlab.Issue, meta *Metadata) models.Feature {
	f := models.Feature{
		Title:           meta.Title,
		Overview:        meta.Overview,
		CurrentProblems: meta.CurrentProblems,
		Requirements:    meta.Requirements,
		Priority:        meta.Priority,
		Estimate:        meta.Estimate,
		Status:          meta.Status,
		Requestor:       requestor(meta, issue.Author),
		GitlabIssueID:   ptr(issue.ID),
		GitlabIssueIID:  ptr(issue.IID),
		GitlabProjectID: ptr(issue.ProjectID),
		RawMetadata:     rawJSON(meta.Raw),
	}

	if f.Title == "" {
		f.Title = issue.Title
	}
	if f.Title == "" {
		f.Title = untitledFeature
	}
	if f.Priority == "" {
		f.Priority = "medium"
	}
	if f.Status == "" {
		f.Status = "pending"
	}
	return f
}

// RequestFromNote maps a ticket note into a UiUxRequest row
func RequestFromNote(note gitlab.Note, meta *Metadata) models.UiUxRequest {
	r := models.UiUxRequest{
		Title:         meta.Title,
		Description:   meta.Overview,
		Status:        meta.Status,
		Step:          meta.Step,
		Assignee:      meta.Assignee,
		Requestor:     requestor(meta, note.Author),
		DueDate:       meta.DueDate,
		Tags:          listJSON(meta.Tags),
		GitlabTickets: ticketsJSON(meta.GitlabTickets),
		GitlabNoteID:  ptr(note.ID),
		CreatedBy:     "gitlab-migration",
	}

	if r.Title == "" {
		r.Title = untitledRequest
	}
	if r.Status == "" {
		r.Status = "todo"
	}
	if meta.CompletionPercentage != nil {
		r.CompletionPercentage = *meta.CompletionPercentage
	}

	// Priority stays null unless given. A bare number is bucketed into a
	// tier here, before storage, never at read time.
	if meta.Priority != "" {
		p := meta.Priority
		r.Priority = &p
	} else if meta.PriorityRank != nil {
		tier := PriorityTier(*meta.PriorityRank)
		r.Priority = &tier
	}

	return r
}

// PriorityTier buckets a numeric priority into a named tier. One-way,
// informational conversion.
func PriorityTier(rank int) string {
	switch {
	case rank <= 2:
		return "critical"
	case rank <= 4:
		return "high"
	case rank <= 7:
		return "medium"
	default:
		return "low"
	}
}

// requestor picks the requestor in preference order: explicit metadata,
// author email, author username, author display name.
func requestor(meta *Metadata, author gitlab.Author) string {
	if meta.Requestor != "" {
		return meta.Requestor
	}
	if author.Email != "" {
		return author.Email
	}
	if author.Username != "" {
		return author.Username
	}
	return author.Name
}

func rawJSON(raw map[string]interface{}) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func listJSON(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

func ticketsJSON(ids []int64) datatypes.JSON {
	if ids == nil {
		ids = []int64{}
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

func ptr[T any](v T) *T {
	return &v
}
