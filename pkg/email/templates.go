package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// ApplicationReceivedData fills the new-application email sent to the job owner
type ApplicationReceivedData struct {
	EmployerName  string
	CandidateName string
	JobTitle      string
	BoardURL      string
}

// MeetingEvent selects the wording of a meeting email.
type MeetingEvent string

const (
	MeetingScheduled   MeetingEvent = "scheduled"
	MeetingRescheduled MeetingEvent = "rescheduled"
	MeetingCancelled   MeetingEvent = "cancelled"
)

// MeetingData fills the meeting email sent to the candidate
type MeetingData struct {
	Event         MeetingEvent
	CandidateName string
	JobTitle      string
	Date          string
	StartTime     string
	EndTime       string
	MeetingURL    string
}

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 10px 18px; background: #0066cc; color: white; text-decoration: none; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{template "title" .}}</h1></div>
        <div class="content">{{template "body" .}}</div>
        <div class="footer"><p>You are receiving this email because of activity on your job portal account.</p></div>
    </div>
</body>
</html>{{end}}`

const applicationReceivedTemplate = `{{define "title"}}New application received{{end}}
{{define "body"}}
<p>Hi {{.EmployerName}},</p>
<p><strong>{{.CandidateName}}</strong> has applied for your job <strong>{{.JobTitle}}</strong>.</p>
{{if .BoardURL}}<p><a class="button" href="{{.BoardURL}}">Open the board</a></p>{{end}}
{{end}}`

const meetingTemplate = `{{define "title"}}Interview {{.Event}}{{end}}
{{define "body"}}
<p>Hi {{.CandidateName}},</p>
{{if eq .Event "cancelled"}}
<p>Your meeting for <strong>{{.JobTitle}}</strong> on {{.Date}} has been cancelled.</p>
{{else if eq .Event "rescheduled"}}
<p>Your meeting for <strong>{{.JobTitle}}</strong> has been rescheduled to {{.Date}} from {{.StartTime}} to {{.EndTime}}.</p>
{{else}}
<p>A meeting has been scheduled for the job <strong>{{.JobTitle}}</strong> on {{.Date}} from {{.StartTime}} to {{.EndTime}}.</p>
{{end}}
{{if and .MeetingURL (ne .Event "cancelled")}}<p><a class="button" href="{{.MeetingURL}}">Join the meeting</a></p>{{end}}
{{end}}`

var (
	applicationReceivedTmpl = template.Must(template.Must(template.New("application").Parse(layoutTemplate)).Parse(applicationReceivedTemplate))
	meetingTmpl             = template.Must(template.Must(template.New("meeting").Parse(layoutTemplate)).Parse(meetingTemplate))
)

// RenderApplicationReceived returns the subject and HTML body
func RenderApplicationReceived(data ApplicationReceivedData) (string, string, error) {
	body, err := render(applicationReceivedTmpl, data)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("New application for %s", data.JobTitle), body, nil
}

// RenderMeeting returns the subject and HTML body
func RenderMeeting(data MeetingData) (string, string, error) {
	body, err := render(meetingTmpl, data)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Interview %s: %s", data.Event, data.JobTitle), body, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}
