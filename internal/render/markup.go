package render

import (
	"github.com/microcosm-cc/bluemonday"
)

const (
	AuthPromptText   = "Veuillez vous connecter."
	LoadErrorText    = "Erreur lors du chargement des PR."
	NetworkErrorText = "Erreur réseau, veuillez réessayer."
	MissingFieldText = "Champs manquants"
)

// server messages end up inside the page body
var messagePolicy = bluemonday.UGCPolicy()

func AuthPrompt() string {
	return paragraph(AuthPromptText)
}

func LoadError() string {
	return paragraph(LoadErrorText)
}

// Message wraps a server provided message, stripped of anything unsafe.
func Message(msg string) string {
	return paragraph(messagePolicy.Sanitize(msg))
}

func paragraph(text string) string {
	return "<p>" + text + "</p>"
}
