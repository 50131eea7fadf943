package contact

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/dmitrymomot/contactdesk/pkg/email"
)

// Notifier is told about every stored contact.
type Notifier interface {
	ContactCreated(ctx context.Context, c Contact) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c Contact) error

func (f NotifierFunc) ContactCreated(ctx context.Context, c Contact) error {
	return f(ctx, c)
}

const notifyTimeout = 30 * time.Second

// MailNotifier emails the team about new contacts. Replies go to the
// visitor who submitted the form.
type MailNotifier struct {
	sender email.EmailSender
	to     string
}

func NewMailNotifier(sender email.EmailSender, to string) *MailNotifier {
	return &MailNotifier{sender: sender, to: to}
}

func (n *MailNotifier) ContactCreated(ctx context.Context, c Contact) error {
	var html, text bytes.Buffer
	if err := notificationHTML.Execute(&html, c); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}
	if err := notificationText.Execute(&text, c); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	return n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   n.to,
		ReplyTo:  c.Email,
		Subject:  notificationSubject(c),
		BodyHTML: html.String(),
		BodyText: text.String(),
		Tag:      "contact-created",
	})
}

func notificationSubject(c Contact) string {
	if c.Subject != "" {
		return "Novo contato: " + c.Subject
	}
	return "Novo contato de " + c.Name
}

const notificationLayout = `Nome: {{.Name}}
E-mail: {{.Email}}
{{- if .Phone}}
Telefone: {{.Phone}}{{end}}
{{- if .Subject}}
Assunto: {{.Subject}}{{end}}
Recebido em: {{.CreatedAt.Format "02/01/2006 15:04"}} UTC

{{.Message}}
`

var (
	notificationText = template.Must(template.New("text").Parse(notificationLayout))
	notificationHTML = htmltemplate.Must(htmltemplate.New("html").Parse(`<h2>Novo contato</h2>
<table>
<tr><th align="left">Nome</th><td>{{.Name}}</td></tr>
<tr><th align="left">E-mail</th><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
{{- if .Phone}}
<tr><th align="left">Telefone</th><td>{{.Phone}}</td></tr>{{end}}
{{- if .Subject}}
<tr><th align="left">Assunto</th><td>{{.Subject}}</td></tr>{{end}}
<tr><th align="left">Recebido em</th><td>{{.CreatedAt.Format "02/01/2006 15:04"}} UTC</td></tr>
</table>
<p style="white-space: pre-wrap">{{.Message}}</p>
`))
)
