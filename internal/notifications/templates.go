package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var bookingRequestedHTML = htmltemplate.Must(htmltemplate.New("booking_requested").Parse(`
<h2>New booking request</h2>
<p><strong>{{.name}}</strong> ({{.email}}) would like to stay at {{.site_name}}.</p>
<ul>
  <li>Check-in: <strong>{{.check_in}}</strong></li>
  <li>Check-out: <strong>{{.check_out}}</strong></li>
  <li>Guests: {{.guests}}</li>
  {{- if .estimated_price}}
  <li>Estimated price: {{.estimated_price}}</li>
  {{- end}}
</ul>
{{- if .message}}
<p>Message from the guest:</p>
<blockquote>{{.message}}</blockquote>
{{- end}}
<p>Reference: {{.booking_id}}</p>
`))

var bookingRequestedText = texttemplate.Must(texttemplate.New("booking_requested").Parse(
	`New booking request for {{.site_name}}

Name: {{.name}}
Email: {{.email}}
Check-in: {{.check_in}}
Check-out: {{.check_out}}
Guests: {{.guests}}
{{- if .estimated_price}}
Estimated price: {{.estimated_price}}
{{- end}}
{{- if .message}}

Message:
{{.message}}
{{- end}}

Reference: {{.booking_id}}
`))

// renderNotification returns the html and plain text bodies
func renderNotification(n *EmailNotification) (string, string, error) {
	if n.CustomMessage != "" {
		escaped := htmltemplate.HTMLEscapeString(n.CustomMessage)
		htmlBody := "<p>" + strings.ReplaceAll(escaped, "\n", "<br>\n") + "</p>"
		return htmlBody, n.CustomMessage, nil
	}

	switch n.Type {
	case NotificationTypeBookingRequested:
		var htmlBuf, textBuf bytes.Buffer
		if err := bookingRequestedHTML.Execute(&htmlBuf, n.TemplateData); err != nil {
			return "", "", fmt.Errorf("failed to execute HTML template: %w", err)
		}
		if err := bookingRequestedText.Execute(&textBuf, n.TemplateData); err != nil {
			return "", "", fmt.Errorf("failed to execute text template: %w", err)
		}
		return htmlBuf.String(), textBuf.String(), nil

	default:
		return "", "", fmt.Errorf("no template for notification type %s", n.Type)
	}
}
