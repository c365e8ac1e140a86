package task

import (
	"strings"
	"time"
)

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if req.Priority != "" {
		if err := ValidatePriority(req.Priority); err != nil {
			return err
		}
	}
	if req.Weight != nil && *req.Weight < 0 {
		return ErrInvalidInput
	}
	return nil
}

// ValidatePriority rejects values outside the known set.
func ValidatePriority(p Priority) error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return ErrInvalidPriority
}

// New builds a task from a validated request, applying defaults.
func New(id string, req CreateRequest, now time.Time) *Task {
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	weight := 1
	if req.Weight != nil {
		weight = *req.Weight
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Task{
		ID:          id,
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Tags:        tags,
		Weight:      weight,
		Completed:   req.Completed,
		AssigneeIDs: dedupeStrings(req.AssigneeIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply copies the set fields of req onto t and reports newly added assignees.
func Apply(t *Task, req UpdateRequest, now time.Time) (added []string, err error) {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.ClearDue {
		t.DueDate = nil
	} else if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Priority != nil {
		if err := ValidatePriority(*req.Priority); err != nil {
			return nil, err
		}
		t.Priority = *req.Priority
	}
	if req.Tags != nil {
		t.Tags = req.Tags
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, ErrInvalidInput
		}
		t.Weight = *req.Weight
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	if req.AssigneeIDs != nil {
		next := dedupeStrings(req.AssigneeIDs)
		previous := make(map[string]struct{}, len(t.AssigneeIDs))
		for _, id := range t.AssigneeIDs {
			previous[id] = struct{}{}
		}
		for _, id := range next {
			if _, ok := previous[id]; !ok {
				added = append(added, id)
			}
		}
		t.AssigneeIDs = next
	}
	t.UpdatedAt = now
	return added, nil
}

func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
