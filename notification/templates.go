package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = template.Must(template.New("notifications").Parse(`
{{define "gig.created.subject"}}New gig logged: {{.Platform}}{{end}}
{{define "gig.created.body"}}Hi {{.Name}},

Your {{.Platform}} gig on {{.Date}} was logged{{if .Pay}} with ${{.Pay}} in pay{{end}}.

— GigFlow Ledger{{end}}

{{define "gig.updated.subject"}}Gig updated: {{.Platform}}{{end}}
{{define "gig.updated.body"}}Hi {{.Name}},

Your {{.Platform}} gig was updated.

— GigFlow Ledger{{end}}

{{define "expense.created.subject"}}Expense recorded{{end}}
{{define "expense.created.body"}}Hi {{.Name}},

An expense of ${{.Amount}} ({{.Category}}) was recorded.

— GigFlow Ledger{{end}}

{{define "backup.completed.subject"}}Nightly backup completed{{end}}
{{define "backup.completed.body"}}Backup archive {{.Archive}} written; {{.Pruned}} old archive(s) pruned.{{end}}
`))

// Render fills the subject and body templates registered for the given
// event type.
func Render(eventType string, data any) (subject, body string, err error) {

	var buf bytes.Buffer
	if err = templates.ExecuteTemplate(&buf, eventType+".subject", data); err != nil {
		return "", "", fmt.Errorf("no subject template for %s: %w", eventType, err)
	}
	subject = buf.String()

	buf.Reset()
	if err = templates.ExecuteTemplate(&buf, eventType+".body", data); err != nil {
		return "", "", fmt.Errorf("no body template for %s: %w", eventType, err)
	}

	return subject, buf.String(), nil
}
