// Package mailer notifies the business inbox about new quote requests.
// Dispatch is best effort: callers treat failures as log-only events.
package mailer

import "context"

// Attachment is an inline copy of a submitted file. The mail provider cannot
// read the object store, so content travels base64-encoded in the payload.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Base64      string `json:"base64"`
}

// QuotePayload carries the submitted form fields plus both representations of
// the attachments: stored URLs for reference and inline content for the
// email itself. It is built right before dispatch and not persisted.
type QuotePayload struct {
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	CompanyName     string       `json:"companyName,omitempty"`
	ProjectAddress  string       `json:"projectAddress,omitempty"`
	Message         string       `json:"message"`
	HowHeardAboutUs string       `json:"howHeardAboutUs"`
	AttachmentUrls  []string     `json:"attachmentUrls"`
	Attachments     []Attachment `json:"attachments"`
}

// Dispatcher sends the business-facing notification for a quote request.
type Dispatcher interface {
	SendQuoteNotification(ctx context.Context, p QuotePayload) error
}
