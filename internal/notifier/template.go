package notifier

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// TimestampLayout is how the notification dates the submission.
const TimestampLayout = "January 02, 2006 at 3:04 PM MST"

const textBody = `New Contact Form Submission

From: {{.Name}} ({{.Email}})
Subject: {{.Subject}}

Message:
{{.Message}}

---
Sent from Portfolio Contact Form`

const htmlBody = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 20px auto; padding: 20px; }
        .header { background-color: #FF813F; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f8f9fa; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #FF813F; }
        .message-box { background-color: white; padding: 15px; border-left: 4px solid #FF813F; margin-top: 15px; }
        .footer { text-align: center; margin-top: 20px; font-size: 0.9em; color: #666; }
        .timestamp { text-align: center; color: #666; font-size: 0.9em; margin-bottom: 15px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>New Message from {{.Name}}</h2>
        </div>
        <div class="content">
            <div class="timestamp">{{.Timestamp}}</div>
            <div class="field">
                <span class="label">From:</span><br/>
                {{.Email}}
            </div>
            <div class="field">
                <span class="label">Subject:</span><br/>
                {{.Subject}}
            </div>
            <div class="field">
                <span class="label">Message:</span>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">Sent from Portfolio Contact Form</div>
    </div>
</body>
</html>`

var (
	textTemplate = texttemplate.Must(texttemplate.New("text").Parse(textBody))
	htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(htmlBody))
)

// Renderer produces the plain-text and HTML bodies of a notification.
type Renderer struct {
	location *time.Location
	policy   *bluemonday.Policy
}

// NewRenderer stamps timestamps in loc; nil means UTC.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{location: loc, policy: bluemonday.UGCPolicy()}
}

// Timestamp formats at in the renderer's zone, using that zone's own abbreviation.
func (r *Renderer) Timestamp(at time.Time) string {
	return at.In(r.location).Format(TimestampLayout)
}

// Render returns the text and HTML bodies.
func (r *Renderer) Render(submission Submission, at time.Time) (string, string, error) {
	var text bytes.Buffer
	if err := textTemplate.Execute(&text, submission); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}

	view := struct {
		Name      string
		Email     string
		Subject   string
		Message   htmltemplate.HTML
		Timestamp string
	}{
		Name:      submission.Name,
		Email:     submission.Email,
		Subject:   submission.Subject,
		Message:   r.messageHTML(submission.Message),
		Timestamp: r.Timestamp(at),
	}

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, view); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}

	return text.String(), html.String(), nil
}

// messageHTML escapes the message so angle brackets survive as text, turns
// newlines into <br/>, then runs the result through the UGC policy.
func (r *Renderer) messageHTML(message string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(normalizeNewlines(message))
	return htmltemplate.HTML(r.policy.Sanitize(strings.ReplaceAll(escaped, "\n", "<br/>")))
}

func normalizeNewlines(value string) string {
	return strings.ReplaceAll(value, "\r\n", "\n")
}

// ParseLocation accepts an IANA zone name ("America/New_York") or a fixed
// offset written as "UTC-05:00" / "UTC+02". Fixed offsets keep their literal label.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}

	upper := strings.ToUpper(name)
	if strings.HasPrefix(upper, "UTC+") || strings.HasPrefix(upper, "UTC-") {
		offset, err := parseOffset(name[3:])
		if err != nil {
			return nil, fmt.Errorf("invalid utc offset %q: %w", name, err)
		}
		return time.FixedZone(upper, offset), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func parseOffset(raw string) (int, error) {
	sign := 1
	switch raw[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return 0, fmt.Errorf("missing sign")
	}

	hoursPart, minutesPart, _ := strings.Cut(raw[1:], ":")
	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours > 14 {
		return 0, fmt.Errorf("bad hours")
	}
	minutes := 0
	if minutesPart != "" {
		minutes, err = strconv.Atoi(minutesPart)
		if err != nil || minutes > 59 {
			return 0, fmt.Errorf("bad minutes")
		}
	}
	return sign * (hours*3600 + minutes*60), nil
}
