package jira

import (
	"strings"

	"github.com/example/smartqa/internal/ports/secondary"
)

// ADF is an Atlassian document format body.
type ADF struct {
	Version int          `json:"version"`
	Type    string       `json:"type"`
	Content []ADFContent `json:"content"`
}

type ADFContent struct {
	Type    string             `json:"type"`
	Text    string             `json:"text,omitempty"`
	Marks   []ADFMark          `json:"marks,omitempty"`
	Content []ADFContent       `json:"content,omitempty"`
	Attrs   *ADFMarkAttributes `json:"attrs,omitempty"`
}

type ADFMark struct {
	Type string `json:"type"`
}

type ADFMarkAttributes struct {
	Level int `json:"level,omitempty"`
}

// issueDescription lays out the bug report sections as headed paragraphs.
func issueDescription(req secondary.IssueRequest) ADF {
	adf := ADF{Version: 1, Type: "doc"}
	if req.ProjectName != "" {
		adf.Content = append(adf.Content, ADFContent{
			Type: "paragraph",
			Content: []ADFContent{
				{Type: "text", Text: "Project: ", Marks: []ADFMark{{Type: "strong"}}},
				{Type: "text", Text: req.ProjectName},
			},
		})
	}
	section(&adf, "Description", req.Description)
	section(&adf, "Steps to Reproduce", req.StepsToReproduce)
	section(&adf, "Expected Result", req.ExpectedResult)
	section(&adf, "Actual Result", req.ActualResult)
	return adf
}

func section(adf *ADF, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	adf.Content = append(adf.Content,
		ADFContent{
			Type:    "heading",
			Attrs:   &ADFMarkAttributes{Level: 3},
			Content: []ADFContent{{Type: "text", Text: heading}},
		},
		ADFContent{
			Type:    "paragraph",
			Content: lines(body),
		},
	)
}

// lines keeps line breaks by interleaving hardBreak nodes.
func lines(body string) []ADFContent {
	var out []ADFContent
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			out = append(out, ADFContent{Type: "hardBreak"})
		}
		if line != "" {
			out = append(out, ADFContent{Type: "text", Text: line})
		}
	}
	return out
}
