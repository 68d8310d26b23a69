package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/auswindowshrouds/awsbackend/config"
	"github.com/resend/resend-go/v2"
)

const quoteEmailTemplate = `<h2>New Quote Request</h2>
<p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{if .CompanyName}}<p><strong>Company:</strong> {{.CompanyName}}</p>{{end}}
{{if .ProjectAddress}}<p><strong>Project Address:</strong> {{.ProjectAddress}}</p>{{end}}
<p><strong>How heard about us:</strong> {{.HowHeardAboutUs}}</p>
<p><strong>Message:</strong></p>
<p>{{.MessageHTML}}</p>
{{if .AttachmentUrls}}<p><strong>Storage Attachments:</strong><br/>{{range .AttachmentUrls}}<code>{{.}}</code><br/>{{end}}</p>{{end}}`

var quoteTmpl = template.Must(template.New("quote").Parse(quoteEmailTemplate))

// ResendDispatcher sends quote notifications through the Resend API to a
// fixed business inbox, with reply-to set to the submitter.
type ResendDispatcher struct {
	client *resend.Client
	from   string
	to     string
}

func NewResendDispatcher(cfg config.MailConfig) *ResendDispatcher {
	return &ResendDispatcher{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.FromAddress,
		to:     cfg.ToAddress,
	}
}

func (d *ResendDispatcher) SendQuoteNotification(ctx context.Context, p QuotePayload) error {
	html, err := renderQuoteHTML(p)
	if err != nil {
		return fmt.Errorf("render quote email: %w", err)
	}

	attachments := make([]*resend.Attachment, 0, len(p.Attachments))
	for _, a := range p.Attachments {
		content, err := base64.StdEncoding.DecodeString(a.Base64)
		if err != nil {
			return fmt.Errorf("decode attachment %s: %w", a.Filename, err)
		}
		attachments = append(attachments, &resend.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Content:     content,
		})
	}

	params := &resend.SendEmailRequest{
		From:        d.from,
		To:          []string{d.to},
		Subject:     fmt.Sprintf("New Quote Request from %s %s", p.FirstName, p.LastName),
		Html:        html,
		ReplyTo:     p.Email,
		Attachments: attachments,
	}

	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

type quoteEmailView struct {
	QuotePayload
	MessageHTML template.HTML
}

func renderQuoteHTML(p QuotePayload) (string, error) {
	escaped := template.HTMLEscapeString(p.Message)
	view := quoteEmailView{
		QuotePayload: p,
		MessageHTML:  template.HTML(strings.ReplaceAll(escaped, "\n", "<br/>")),
	}

	var buf bytes.Buffer
	if err := quoteTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
