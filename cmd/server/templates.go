package main

import (
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/http/web"
)

// LoadTemplates parses the embedded page templates
func LoadTemplates() *template.Template {
	tmpl, err := web.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}
	return tmpl
}
