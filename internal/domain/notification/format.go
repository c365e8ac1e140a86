package notification

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format renders a human readable title and body for n. actorName may be
// empty when the actor is unknown.
func Format(n *Notification, actorName string) (title, body string) {
	verbKey := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(n.Verb), " ", "_"))
	verbText := strings.TrimSpace(strings.ReplaceAll(n.Verb, "_", " "))

	taskTitle := stringField(n.Data, "taskTitle")
	projectName := stringField(n.Data, "projectName")

	who := actorName
	if who == "" {
		who = "Someone"
	}

	if verbKey == VerbTaskAssigned {
		title = fmt.Sprintf("You've been assigned to a task by %s", who)
		taskPart := `("task")`
		if taskTitle != "" {
			taskPart = fmt.Sprintf("%q", taskTitle)
		}
		if projectName != "" {
			body = fmt.Sprintf("%q assigned you to the task %s in %q", who, taskPart, projectName)
		} else {
			body = fmt.Sprintf("%q assigned you to a task %s", who, taskPart)
		}
		return title, body
	}

	switch {
	case actorName != "":
		title = actorName + " " + capitalize(verbText)
	case verbText != "":
		title = capitalize(verbText)
	default:
		title = "Notification"
	}

	if msg := stringField(n.Data, "message"); msg != "" {
		return title, msg
	}

	var parts []string
	if taskTitle != "" {
		parts = append(parts, taskTitle)
	}
	if projectName != "" {
		parts = append(parts, "in "+projectName)
	}
	for _, key := range []string{"due", "dueDate", "due_at"} {
		if due := stringField(n.Data, key); due != "" {
			parts = append(parts, "Due "+due)
			break
		}
	}
	if len(parts) > 0 {
		return title, strings.Join(parts, " - ")
	}

	if len(n.Data) == 0 {
		return title, ""
	}
	preview, err := json.Marshal(n.Data)
	if err != nil {
		return title, fmt.Sprint(n.Data)
	}
	return title, string(preview)
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
