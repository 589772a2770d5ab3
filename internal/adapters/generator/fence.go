// Package generator implements the scenario and bug report drafting ports,
// either from a fixed catalog or from a language model's text response.
package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

const fence = "```"

// StripFences returns the body of the first fenced block in text, dropping an
// optional json tag after the opening marker. A block left open runs to the end
// of the text, and a lone closing marker at the end is dropped. Text without a
// fence is returned trimmed, for the JSON decoder to accept or reject.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	open := strings.Index(s, fence)
	if open < 0 {
		return s
	}

	body := s[open+len(fence):]
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	closing := strings.Index(body, fence)
	if closing < 0 {
		if strings.TrimSpace(body) == "" {
			return strings.TrimSpace(s[:open])
		}
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(body[:closing])
}

type scenarioEnvelope struct {
	TestScenarios []rawScenario `json:"test_scenarios"`
}

// rawScenario keeps steps as raw JSON so required keys can be told apart from empty ones.
type rawScenario struct {
	Title       *string         `json:"title"`
	Description string          `json:"description"`
	Steps       json.RawMessage `json:"steps"`
	Priority    string          `json:"priority"`
}

// ParseScenarios decodes a model response into drafts. Every draft needs a
// title and a steps array. Unknown priorities fall back to medium.
func ParseScenarios(text string) ([]secondary.ScenarioDraft, error) {
	body := StripFences(text)
	if body == "" {
		return nil, apperrors.Generation("generator returned an empty response")
	}

	var env scenarioEnvelope
	if err := decodeStrict(body, &env); err != nil {
		return nil, apperrors.Generation("could not parse generated scenarios: %v", err)
	}
	if env.TestScenarios == nil {
		return nil, apperrors.Generation("generated output has no test_scenarios list")
	}

	drafts := make([]secondary.ScenarioDraft, 0, len(env.TestScenarios))
	for i, raw := range env.TestScenarios {
		if raw.Title == nil || strings.TrimSpace(*raw.Title) == "" {
			return nil, apperrors.Generation("generated scenario %d has no title", i+1)
		}
		if len(raw.Steps) == 0 || string(raw.Steps) == "null" {
			return nil, apperrors.Generation("generated scenario %d has no steps", i+1)
		}
		var steps []string
		if err := json.Unmarshal(raw.Steps, &steps); err != nil {
			return nil, apperrors.Generation("generated scenario %d has malformed steps: %v", i+1, err)
		}
		drafts = append(drafts, secondary.ScenarioDraft{
			Title:       strings.TrimSpace(*raw.Title),
			Description: raw.Description,
			Steps:       steps,
			Priority:    normalizeLevel(raw.Priority),
		})
	}
	return drafts, nil
}

// ParseBugReport decodes a model response into a bug report draft.
// Title is required; unknown severities fall back to medium.
func ParseBugReport(text string) (*secondary.BugReportDraft, error) {
	body := StripFences(text)
	if body == "" {
		return nil, apperrors.Generation("generator returned an empty response")
	}

	var draft secondary.BugReportDraft
	if err := decodeStrict(body, &draft); err != nil {
		return nil, apperrors.Generation("could not parse generated bug report: %v", err)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, apperrors.Generation("generated bug report has no title")
	}
	draft.Severity = normalizeLevel(draft.Severity)
	return &draft, nil
}

// decodeStrict decodes exactly one JSON value; trailing text is an error.
func decodeStrict(body string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errTrailing
	}
	return nil
}

var errTrailing = errors.New("unexpected text after JSON value")

// normalizeLevel maps a priority or severity onto the known set.
func normalizeLevel(v string) string {
	switch l := strings.ToLower(strings.TrimSpace(v)); l {
	case "critical", "high", "medium", "low":
		return l
	}
	return "medium"
}
