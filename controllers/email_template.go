package controllers

import (
	"fmt"
	"html/template"
	"strings"
)

type emailMetaItem struct {
	Label string
	Value string
}

// buildEmailTemplate renders a single-card HTML mail. Paragraph text is
// escaped and newlines become <br />; empty meta rows are skipped.
func buildEmailTemplate(subject string, paragraphs []string, meta []emailMetaItem) string {
	var content strings.Builder
	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		escaped := template.HTMLEscapeString(trimmed)
		escaped = strings.ReplaceAll(strings.ReplaceAll(escaped, "\r\n", "\n"), "\n", "<br />")
		content.WriteString(`<p style="margin:0 0 18px 0;line-height:1.7;">`)
		content.WriteString(escaped)
		content.WriteString(`</p>`)
	}

	var rows strings.Builder
	for _, item := range meta {
		label, value := strings.TrimSpace(item.Label), strings.TrimSpace(item.Value)
		if label == "" || value == "" {
			continue
		}
		rows.WriteString(fmt.Sprintf(`<tr>
<td style="padding:10px 16px;font-size:13px;color:#6b7280;width:38%%;border-bottom:1px solid #e5e7eb;">%s</td>
<td style="padding:10px 16px;font-size:15px;color:#111827;font-weight:600;border-bottom:1px solid #e5e7eb;">%s</td>
</tr>
`, template.HTMLEscapeString(label), template.HTMLEscapeString(value)))
	}
	metaSection := ""
	if rows.Len() > 0 {
		metaSection = `<table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="border:1px solid #e5e7eb;border-radius:12px;background-color:#f9fafb;margin-bottom:24px;">
<tbody>
` + rows.String() + `</tbody>
</table>`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
<div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
<h1 style="margin:0 0 20px 0;font-size:22px;color:#111827;">%s</h1>
<div style="color:#1f2937;font-size:16px;">
%s
</div>
%s
</div>
</div>
</body>
</html>`, template.HTMLEscapeString(subject), template.HTMLEscapeString(subject), content.String(), metaSection)
}
