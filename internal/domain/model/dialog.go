package model

import "strings"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySerious Severity = "serious"
)

// Dialog is rendered by the view's open_dialog function. Message is HTML.
type Dialog struct {
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
	Buttons  [][2]string `json:"buttons"`
	Width    string      `json:"width"`
	Height   string      `json:"height"`
}

func NewDialog(title, message string, severity Severity) Dialog {
	return Dialog{
		Title:    title,
		Message:  strings.ReplaceAll(message, "\n", "<br>"),
		Severity: severity,
		Buttons:  [][2]string{{"OK", ""}},
		Width:    "40em",
		Height:   "80em",
	}
}
