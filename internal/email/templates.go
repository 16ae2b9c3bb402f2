package email

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/wellandwilde/landing-be/internal/models"
)

type templateData struct {
	Brand       string
	Email       string
	Contact     string
	Year        int
	Subscribers []models.Subscriber
}

var (
	operatorHTML = htmltemplate.Must(htmltemplate.New("operator").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #000; padding-bottom: 10px;">New Newsletter Subscription</h2>
  <p style="font-size: 16px; line-height: 1.6;">A new subscriber has joined the {{.Brand}} newsletter:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <strong>Email:</strong> {{.Email}}
  </div>
  <p style="font-size: 14px; color: #666; margin-top: 30px;">This notification was sent automatically from your {{.Brand}} website.</p>
</div>`))

	operatorText = texttemplate.Must(texttemplate.New("operator").Parse(`New Newsletter Subscription

A new subscriber has joined the {{.Brand}} newsletter:
Email: {{.Email}}

This notification was sent automatically from your {{.Brand}} website.`))

	welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome").Parse(`<div style="font-family: 'Playfair Display', serif; max-width: 600px; margin: 0 auto; color: #333;">
  <div style="text-align: center; padding: 40px 20px; background: #f5f5f5;">
    <h1 style="font-size: 36px; margin-bottom: 10px; letter-spacing: 2px;">{{.Brand}}</h1>
    <p style="font-size: 18px; margin: 0; opacity: 0.8;">Redefining Wellness</p>
  </div>
  <div style="padding: 40px 20px;">
    <h2 style="font-size: 28px; margin-bottom: 20px;">Welcome to Our Community</h2>
    <p style="font-size: 16px; line-height: 1.8;">Thank you for joining the {{.Brand}} community. We're excited to have you on this journey of wellness redefinition.</p>
    <p style="font-size: 16px; line-height: 1.8;">You'll be the first to know about our:</p>
    <ul style="font-size: 16px; line-height: 1.8;">
      <li>Corporate craft workshops and team-building experiences</li>
      <li>Unique wellness retreats in extraordinary locations</li>
      <li>Exclusive brand events and product launches</li>
      <li>Behind-the-scenes content and wellness insights</li>
    </ul>
    <div style="background-color: #000; color: white; padding: 30px; text-align: center; margin: 30px 0;">
      <h3 style="margin: 0 0 10px 0; font-size: 20px;">Coming Soon</h3>
      <p style="margin: 0; opacity: 0.9;">Stay tuned for our official launch</p>
    </div>
    <p style="font-size: 16px; line-height: 1.8;">Have questions or ideas? We'd love to hear from you at {{.Contact}}</p>
    <p style="font-size: 16px; line-height: 1.8;">Welcome aboard,<br><strong>The {{.Brand}} Team</strong></p>
  </div>
  <div style="text-align: center; padding: 20px; background-color: #f8f8f8; border-top: 1px solid #eee;">
    <p style="font-size: 12px; color: #666; margin: 0;">&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
  </div>
</div>`))

	welcomeText = texttemplate.Must(texttemplate.New("welcome").Parse(`Welcome to {{.Brand}} - Redefining Wellness

Thank you for joining the {{.Brand}} community. We're excited to have you on this journey of wellness redefinition.

You'll be the first to know about our:
- Corporate craft workshops and team-building experiences
- Unique wellness retreats in extraordinary locations
- Exclusive brand events and product launches
- Behind-the-scenes content and wellness insights

Coming Soon - Stay tuned for our official launch

Have questions or ideas? We'd love to hear from you at {{.Contact}}

Welcome aboard,
The {{.Brand}} Team

(c) {{.Year}} {{.Brand}}. All rights reserved.`))

	digestHTML = htmltemplate.Must(htmltemplate.New("digest").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #000; padding-bottom: 10px;">Newsletter Digest</h2>
  <p style="font-size: 16px; line-height: 1.6;">{{len .Subscribers}} new subscriber(s) joined the {{.Brand}} newsletter:</p>
  <ul>{{range .Subscribers}}
    <li>{{.Email}} ({{.SubscribedAt.Format "2006-01-02 15:04 MST"}})</li>{{end}}
  </ul>
</div>`))

	digestText = texttemplate.Must(texttemplate.New("digest").Parse(`Newsletter Digest

{{len .Subscribers}} new subscriber(s) joined the {{.Brand}} newsletter:
{{range .Subscribers}}- {{.Email}} ({{.SubscribedAt.Format "2006-01-02 15:04 MST"}})
{{end}}`))
)

// mailTemplate pairs the HTML body with its plain-text alternative.
type mailTemplate struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

var (
	operatorMail = mailTemplate{html: operatorHTML, text: operatorText}
	welcomeMail  = mailTemplate{html: welcomeHTML, text: welcomeText}
	digestMail   = mailTemplate{html: digestHTML, text: digestText}
)

func (t mailTemplate) render(data templateData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := t.text.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func newTemplateData(brand, contact string) templateData {
	return templateData{Brand: brand, Contact: contact, Year: time.Now().Year()}
}
