package quotes

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/mailer"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/storage"
	"go.uber.org/zap"
)

const attachmentKeyPrefix = "quote-attachments"

// RecordStore persists quote requests. The Mongo implementation lives in
// this package; tests substitute a fake.
type RecordStore interface {
	InsertQuoteRequest(ctx context.Context, qr *models.QuoteRequest) (string, error)
}

// Pipeline runs one quote submission end to end: validate, upload
// attachments, persist the record, then notify the business inbox.
//
// The stages are strictly ordered. Upload or persist failures abort the
// submission (with best-effort cleanup of objects already stored);
// notification failures are logged and never surfaced to the submitter.
type Pipeline struct {
	gate     *FileGate
	objects  storage.ObjectStore
	records  RecordStore
	notifier mailer.Dispatcher
	logger   *zap.Logger
}

func NewPipeline(gate *FileGate, objects storage.ObjectStore, records RecordStore, notifier mailer.Dispatcher, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		gate:     gate,
		objects:  objects,
		records:  records,
		notifier: notifier,
		logger:   logger,
	}
}

// Result reports a successful submission. RejectedFiles lists candidates
// dropped by the file gate; they were excluded, not fatal.
type Result struct {
	ID             string         `json:"id"`
	AttachmentUrls []string       `json:"attachmentUrls"`
	RejectedFiles  []RejectedFile `json:"rejectedFiles,omitempty"`
}

// uploadedAttachment keeps what later stages need: the stored key for
// cleanup, the public URL for the record, and the raw bytes for the email.
type uploadedAttachment struct {
	key         string
	url         string
	filename    string
	contentType string
	content     []byte
}

func (p *Pipeline) Submit(ctx context.Context, form dto.CreateQuoteRequestDTO, files []File) (*Result, error) {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.CompanyName = strings.TrimSpace(form.CompanyName)
	form.ProjectAddress = strings.TrimSpace(form.ProjectAddress)
	form.Message = strings.TrimSpace(form.Message)
	form.HowHeardAboutUs = strings.TrimSpace(form.HowHeardAboutUs)

	if err := validateRequired(form); err != nil {
		return nil, err
	}

	accepted, rejected := p.gate.Partition(files)

	uploaded, err := p.uploadAll(ctx, accepted)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(uploaded))
	for _, u := range uploaded {
		urls = append(urls, u.url)
	}

	record := &models.QuoteRequest{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Phone:           form.Phone,
		CompanyName:     form.CompanyName,
		ProjectAddress:  form.ProjectAddress,
		Message:         form.Message,
		HowHeardAboutUs: form.HowHeardAboutUs,
		AttachmentUrls:  urls,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := p.records.InsertQuoteRequest(ctx, record)
	if err != nil {
		p.cleanup(ctx, uploaded)
		return nil, &PersistFailedError{Err: err}
	}

	// Best effort from here on: the record is durable, so a failed email
	// must not change the outcome.
	if err := p.notifier.SendQuoteNotification(ctx, buildPayload(form, uploaded)); err != nil {
		p.logger.Warn("quote notification failed",
			zap.String("quoteRequestId", id),
			zap.Error(err))
	}

	return &Result{
		ID:             id,
		AttachmentUrls: urls,
		RejectedFiles:  rejected,
	}, nil
}

func validateRequired(form dto.CreateQuoteRequestDTO) error {
	required := []struct {
		field, value string
	}{
		{"firstName", form.FirstName},
		{"lastName", form.LastName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"message", form.Message},
		{"howHeardAboutUs", form.HowHeardAboutUs},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	if !models.ReferralSource(form.HowHeardAboutUs).Valid() {
		return &ValidationError{Field: "howHeardAboutUs", Reason: "unknown referral source"}
	}
	return nil
}

// uploadAll stores every accepted file, failing fast on the first error so
// the record is never written with a silently partial attachment set.
func (p *Pipeline) uploadAll(ctx context.Context, accepted []File) ([]uploadedAttachment, error) {
	uploaded := make([]uploadedAttachment, 0, len(accepted))

	for _, f := range accepted {
		content, err := readAll(f)
		if err != nil {
			p.cleanup(ctx, uploaded)
			return nil, &UploadFailedError{Filename: f.Name(), Err: err}
		}

		ct := f.ContentType()
		if ct == "" {
			ct = "application/octet-stream"
		}

		key := storage.ObjectKey(attachmentKeyPrefix, f.Name())
		if _, err := p.objects.Upload(ctx, key, bytes.NewReader(content), ct); err != nil {
			p.cleanup(ctx, uploaded)
			return nil, &UploadFailedError{Filename: f.Name(), Err: err}
		}

		uploaded = append(uploaded, uploadedAttachment{
			key:         key,
			url:         p.objects.PublicURL(key),
			filename:    f.Name(),
			contentType: ct,
			content:     content,
		})
	}

	return uploaded, nil
}

func readAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// cleanup deletes objects stored for a submission that later failed, so the
// bucket does not accumulate orphans. Failures are logged only.
func (p *Pipeline) cleanup(ctx context.Context, uploaded []uploadedAttachment) {
	if len(uploaded) == 0 {
		return
	}
	keys := make([]string, 0, len(uploaded))
	for _, u := range uploaded {
		keys = append(keys, u.key)
	}
	if err := p.objects.Delete(ctx, keys); err != nil {
		p.logger.Warn("attachment cleanup failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func buildPayload(form dto.CreateQuoteRequestDTO, uploaded []uploadedAttachment) mailer.QuotePayload {
	urls := make([]string, 0, len(uploaded))
	attachments := make([]mailer.Attachment, 0, len(uploaded))
	for _, u := range uploaded {
		urls = append(urls, u.url)
		attachments = append(attachments, mailer.Attachment{
			Filename:    u.filename,
			ContentType: u.contentType,
			Base64:      base64.StdEncoding.EncodeToString(u.content),
		})
	}

	return mailer.QuotePayload{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Phone:           form.Phone,
		CompanyName:     form.CompanyName,
		ProjectAddress:  form.ProjectAddress,
		Message:         form.Message,
		HowHeardAboutUs: form.HowHeardAboutUs,
		AttachmentUrls:  urls,
		Attachments:     attachments,
	}
}
