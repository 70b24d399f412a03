package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names. Each file under templates/ defines "subject", "text" and "html".
const (
	TemplateLoginOTP             = "login_otp"
	TemplateAccountApproved      = "account_approved"
	TemplateAccountRejected      = "account_rejected"
	TemplateOpportunityApproved  = "opportunity_approved"
	TemplateOpportunityRejected  = "opportunity_rejected"
	TemplateOpportunityConverted = "opportunity_converted"
	TemplateApplicationReceived  = "application_received"
	TemplateApplicationStatus    = "application_status"
	TemplateAnnouncement         = "announcement"
)

// Data carries every field any template reads; unused fields stay empty.
type Data struct {
	AppName          string
	Name             string
	Code             string
	ExpiresInMinutes int
	OpportunityTitle string
	ApplicantName    string
	Status           string
	Reason           string
	ActionURL        string
	Subject          string
	BodyText         string
	BodyHTML         htmpl.HTML // must already be sanitized
}

var funcs = map[string]any{
	"lower": strings.ToLower,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		s = strings.ToLower(s)
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// Render produces a Message for the named template.
func Render(name, to string, data Data) (Message, error) {
	if data.AppName == "" {
		data.AppName = "UroCareerz"
	}
	file := "templates/" + name + ".tmpl"

	textTpl, err := texttpl.New(name).Funcs(texttpl.FuncMap(funcs)).ParseFS(templateFS, file)
	if err != nil {
		return Message{}, fmt.Errorf("parse text %q: %w", name, err)
	}
	htmlTpl, err := htmpl.New(name).Funcs(htmpl.FuncMap(funcs)).ParseFS(templateFS, file)
	if err != nil {
		return Message{}, fmt.Errorf("parse html %q: %w", name, err)
	}

	subject, err := executeText(textTpl, "subject", data)
	if err != nil {
		return Message{}, err
	}
	text, err := executeText(textTpl, "text", data)
	if err != nil {
		return Message{}, err
	}
	var htmlBuf bytes.Buffer
	if err := htmlTpl.ExecuteTemplate(&htmlBuf, "html", data); err != nil {
		return Message{}, fmt.Errorf("exec html %q: %w", name, err)
	}

	return Message{
		To:       to,
		Subject:  strings.TrimSpace(subject),
		Text:     strings.TrimSpace(text),
		HTML:     strings.TrimSpace(htmlBuf.String()),
		Template: name,
	}, nil
}

func executeText(tpl *texttpl.Template, block string, data Data) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, block, data); err != nil {
		return "", fmt.Errorf("exec %s %q: %w", block, tpl.Name(), err)
	}
	return buf.String(), nil
}
