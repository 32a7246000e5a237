package notify

import (
	"bytes"
	htmltmpl "html/template"
	texttmpl "text/template"

	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

const subjectTmpl = `Application update for tuition {{.Tuition.Code}}: {{.NewLabel}}`

const textTmpl = `Hello {{.TutorName}},

The status of your application for tuition {{.Tuition.Code}} has changed
from "{{.OldLabel}}" to "{{.NewLabel}}".

Class:    {{.Tuition.Class}}
Subject:  {{.Tuition.Subject}}
Location: {{.Tuition.Location}}
Salary:   {{.Tuition.Salary}}
{{if .Message}}
Message from the team:
{{.Message}}
{{end}}
You can follow your applications at {{.DashboardURL}}.
`

const htmlTmpl = `<p>Hello {{.TutorName}},</p>
<p>The status of your application for tuition <strong>{{.Tuition.Code}}</strong> has changed
from <em>{{.OldLabel}}</em> to <strong>{{.NewLabel}}</strong>.</p>
<ul>
<li>Class: {{.Tuition.Class}}</li>
<li>Subject: {{.Tuition.Subject}}</li>
<li>Location: {{.Tuition.Location}}</li>
<li>Salary: {{.Tuition.Salary}}</li>
</ul>
{{if .Message}}<p>Message from the team:<br>{{.Message}}</p>{{end}}
<p><a href="{{.DashboardURL}}">View your applications</a></p>
`

var (
	subjectT = texttmpl.Must(texttmpl.New("subject").Parse(subjectTmpl))
	textT    = texttmpl.Must(texttmpl.New("text").Option("missingkey=error").Parse(textTmpl))
	htmlT    = htmltmpl.Must(htmltmpl.New("html").Parse(htmlTmpl))
)

type templateData struct {
	models.StatusChangePayload
	OldLabel     string
	NewLabel     string
	DashboardURL string
}

// Render builds the status-update email for task.
func Render(task *models.NotificationTask, frontendBaseURL string) (Message, error) {
	p := task.Payload.Data()
	data := templateData{
		StatusChangePayload: p,
		OldLabel:            domain.Status(p.OldStatus).Label(),
		NewLabel:            domain.Status(p.NewStatus).Label(),
		DashboardURL:        frontendBaseURL + "/dashboard/applications",
	}

	var subject, text, html bytes.Buffer
	if err := subjectT.Execute(&subject, data); err != nil {
		return Message{}, err
	}
	if err := textT.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := htmlT.Execute(&html, data); err != nil {
		return Message{}, err
	}

	return Message{
		ToName:  task.RecipientName,
		ToEmail: task.Recipient,
		Subject: subject.String(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
