package quotes

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/mailer"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubObjects struct {
	keys        []string
	deleted     []string
	failUploads bool
	uploadCalls int
}

func (s *stubObjects) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	s.uploadCalls++
	if s.failUploads {
		return "", errors.New("bucket unavailable")
	}
	s.keys = append(s.keys, key)
	return key, nil
}

func (s *stubObjects) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *stubObjects) KeyFromURL(url string) (string, error) {
	return url, nil
}

func (s *stubObjects) Delete(_ context.Context, keys []string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

type stubRecords struct {
	inserted    []*models.QuoteRequest
	insertCalls int
	err         error
}

func (s *stubRecords) InsertQuoteRequest(_ context.Context, qr *models.QuoteRequest) (string, error) {
	s.insertCalls++
	if s.err != nil {
		return "", s.err
	}
	s.inserted = append(s.inserted, qr)
	return fmt.Sprintf("quote-%d", s.insertCalls), nil
}

type stubNotifier struct {
	payloads  []mailer.QuotePayload
	sendCalls int
	err       error
}

func (s *stubNotifier) SendQuoteNotification(_ context.Context, p mailer.QuotePayload) error {
	s.sendCalls++
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, p)
	return nil
}

func validForm() dto.CreateQuoteRequestDTO {
	return dto.CreateQuoteRequestDTO{
		FirstName:       "Jess",
		LastName:        "Taylor",
		Email:           "jess@example.com",
		Phone:           "0400000000",
		Message:         "Three fixed shrouds for a north facade.",
		HowHeardAboutUs: "google",
	}
}

func newTestPipeline(objects *stubObjects, records *stubRecords, notifier *stubNotifier) *Pipeline {
	return NewPipeline(NewFileGate(10), objects, records, notifier, zap.NewNop())
}

func TestSubmitHappyPathWithAttachments(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	files := []File{
		&memFile{name: "facade.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")},
		&memFile{name: "plan.pdf", contentType: "application/pdf", content: []byte("pdf-bytes")},
	}

	res, err := p.Submit(context.Background(), validForm(), files)
	require.NoError(t, err)

	assert.Equal(t, "quote-1", res.ID)
	assert.Empty(t, res.RejectedFiles)

	// attachment urls match accepted files in cardinality and order
	require.Len(t, res.AttachmentUrls, 2)
	require.Len(t, records.inserted, 1)
	assert.Equal(t, res.AttachmentUrls, records.inserted[0].AttachmentUrls)
	assert.Contains(t, res.AttachmentUrls[0], ".jpg")
	assert.Contains(t, res.AttachmentUrls[1], ".pdf")

	require.Equal(t, 1, notifier.sendCalls)
	payload := notifier.payloads[0]
	assert.Equal(t, "Jess", payload.FirstName)
	assert.Equal(t, res.AttachmentUrls, payload.AttachmentUrls)
	require.Len(t, payload.Attachments, 2)
	assert.Equal(t, "facade.jpg", payload.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pdf-bytes")), payload.Attachments[1].Base64)
}

func TestSubmitNoAttachments(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	res, err := p.Submit(context.Background(), validForm(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.AttachmentUrls)
	assert.Zero(t, objects.uploadCalls)
	assert.Equal(t, 1, records.insertCalls)
	assert.Equal(t, 1, notifier.sendCalls)
}

func TestSubmitMissingFieldMakesNoCalls(t *testing.T) {
	fields := []struct {
		name  string
		strip func(*dto.CreateQuoteRequestDTO)
	}{
		{"firstName", func(f *dto.CreateQuoteRequestDTO) { f.FirstName = "" }},
		{"lastName", func(f *dto.CreateQuoteRequestDTO) { f.LastName = "" }},
		{"email", func(f *dto.CreateQuoteRequestDTO) { f.Email = "" }},
		{"phone", func(f *dto.CreateQuoteRequestDTO) { f.Phone = "   " }},
		{"message", func(f *dto.CreateQuoteRequestDTO) { f.Message = "" }},
		{"howHeardAboutUs", func(f *dto.CreateQuoteRequestDTO) { f.HowHeardAboutUs = "" }},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			objects := &stubObjects{}
			records := &stubRecords{}
			notifier := &stubNotifier{}
			p := newTestPipeline(objects, records, notifier)

			form := validForm()
			tt.strip(&form)

			files := []File{&memFile{name: "facade.jpg", contentType: "image/jpeg", content: []byte("x")}}

			res, err := p.Submit(context.Background(), form, files)
			assert.Nil(t, res)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.name, verr.Field)

			assert.Zero(t, objects.uploadCalls)
			assert.Zero(t, records.insertCalls)
			assert.Zero(t, notifier.sendCalls)
		})
	}
}

func TestSubmitUnknownReferralSourceRejected(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	form := validForm()
	form.HowHeardAboutUs = "carrier-pigeon"

	_, err := p.Submit(context.Background(), form, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "howHeardAboutUs", verr.Field)
	assert.Zero(t, records.insertCalls)
	assert.Zero(t, notifier.sendCalls)
}

func TestSubmitGateRejectionsAreNotFatal(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	files := []File{
		&memFile{name: "ok.pdf", contentType: "application/pdf", content: []byte("pdf")},
		&memFile{name: "bad.zip", contentType: "application/zip", content: []byte("zip")},
	}

	res, err := p.Submit(context.Background(), validForm(), files)
	require.NoError(t, err)

	require.Len(t, res.AttachmentUrls, 1)
	require.Len(t, res.RejectedFiles, 1)
	assert.Equal(t, "bad.zip", res.RejectedFiles[0].Filename)
	assert.Equal(t, 1, objects.uploadCalls)
}

func TestSubmitUploadFailureAbortsBeforeInsert(t *testing.T) {
	objects := &stubObjects{failUploads: true}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	files := []File{&memFile{name: "facade.jpg", contentType: "image/jpeg", content: []byte("x")}}

	res, err := p.Submit(context.Background(), validForm(), files)
	assert.Nil(t, res)

	var uerr *UploadFailedError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "facade.jpg", uerr.Filename)

	assert.Zero(t, records.insertCalls)
	assert.Zero(t, notifier.sendCalls)
}

func TestSubmitPersistFailureCleansUpUploads(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{err: errors.New("write concern timeout")}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	files := []File{
		&memFile{name: "a.jpg", contentType: "image/jpeg", content: []byte("a")},
		&memFile{name: "b.pdf", contentType: "application/pdf", content: []byte("b")},
	}

	res, err := p.Submit(context.Background(), validForm(), files)
	assert.Nil(t, res)

	var perr *PersistFailedError
	require.ErrorAs(t, err, &perr)

	// stored objects are removed and no notification goes out
	assert.ElementsMatch(t, objects.keys, objects.deleted)
	assert.Len(t, objects.deleted, 2)
	assert.Zero(t, notifier.sendCalls)
}

func TestSubmitNotificationFailureDoesNotAffectOutcome(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{err: errors.New("resend 500")}
	p := newTestPipeline(objects, records, notifier)

	files := []File{&memFile{name: "facade.jpg", contentType: "image/jpeg", content: []byte("x")}}

	res, err := p.Submit(context.Background(), validForm(), files)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "quote-1", res.ID)
	assert.Equal(t, 1, notifier.sendCalls)
	assert.Empty(t, objects.deleted) // record stands, nothing rolled back
}

func TestSubmitTrimsWhitespaceBeforePersisting(t *testing.T) {
	objects := &stubObjects{}
	records := &stubRecords{}
	notifier := &stubNotifier{}
	p := newTestPipeline(objects, records, notifier)

	form := validForm()
	form.FirstName = "  Jess "
	form.Email = " jess@example.com "

	_, err := p.Submit(context.Background(), form, nil)
	require.NoError(t, err)

	require.Len(t, records.inserted, 1)
	assert.Equal(t, "Jess", records.inserted[0].FirstName)
	assert.Equal(t, "jess@example.com", records.inserted[0].Email)
}
