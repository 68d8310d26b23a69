package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/auswindowshrouds/awsbackend/mailer"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/quotes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memObjects struct {
	stored  map[string][]byte
	deleted []string
}

func newMemObjects() *memObjects {
	return &memObjects{stored: map[string][]byte{}}
}

func (s *memObjects) Upload(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.stored[key] = b
	return key, nil
}

func (s *memObjects) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (s *memObjects) KeyFromURL(url string) (string, error) {
	return url, nil
}

func (s *memObjects) Delete(_ context.Context, keys []string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

type memRecords struct {
	inserted []*models.QuoteRequest
}

func (s *memRecords) InsertQuoteRequest(_ context.Context, qr *models.QuoteRequest) (string, error) {
	s.inserted = append(s.inserted, qr)
	return "65f000000000000000000001", nil
}

type memNotifier struct {
	sent []mailer.QuotePayload
}

func (s *memNotifier) SendQuoteNotification(_ context.Context, p mailer.QuotePayload) error {
	s.sent = append(s.sent, p)
	return nil
}

func quoteRouter(objects *memObjects, records *memRecords, notifier *memNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pipeline := quotes.NewPipeline(quotes.NewFileGate(10), objects, records, notifier, zap.NewNop())

	r := gin.New()
	r.POST("/quote-requests", CreateQuoteRequest(pipeline))
	r.GET("/referral-sources", GetReferralSources())
	return r
}

func multipartQuoteBody(t *testing.T, data map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("data", string(payload)))

	for name, content := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="attachments"; filename="`+name+`"`)
		switch {
		case strings.HasSuffix(name, ".pdf"):
			h.Set("Content-Type", "application/pdf")
		case strings.HasSuffix(name, ".zip"):
			h.Set("Content-Type", "application/zip")
		default:
			h.Set("Content-Type", "image/jpeg")
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validQuoteData() map[string]string {
	return map[string]string{
		"firstName":       "Jess",
		"lastName":        "Taylor",
		"email":           "jess@example.com",
		"phone":           "0400000000",
		"message":         "Quote for three shrouds please.",
		"howHeardAboutUs": "google",
	}
}

func TestCreateQuoteRequestEndpoint(t *testing.T) {
	objects := newMemObjects()
	records := &memRecords{}
	notifier := &memNotifier{}
	r := quoteRouter(objects, records, notifier)

	body, contentType := multipartQuoteBody(t, validQuoteData(), map[string][]byte{
		"facade.jpg": []byte("jpeg-bytes"),
		"bad.zip":    []byte("zip-bytes"),
	})

	req := httptest.NewRequest(http.MethodPost, "/quote-requests", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID             string   `json:"id"`
		AttachmentUrls []string `json:"attachmentUrls"`
		RejectedFiles  []struct {
			Filename string `json:"filename"`
			Reason   string `json:"reason"`
		} `json:"rejectedFiles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.AttachmentUrls, 1)
	require.Len(t, resp.RejectedFiles, 1)
	assert.Equal(t, "bad.zip", resp.RejectedFiles[0].Filename)

	require.Len(t, records.inserted, 1)
	assert.Equal(t, resp.AttachmentUrls, records.inserted[0].AttachmentUrls)
	require.Len(t, notifier.sent, 1)
}

func TestCreateQuoteRequestMissingField(t *testing.T) {
	objects := newMemObjects()
	records := &memRecords{}
	notifier := &memNotifier{}
	r := quoteRouter(objects, records, notifier)

	data := validQuoteData()
	delete(data, "email")

	body, contentType := multipartQuoteBody(t, data, nil)
	req := httptest.NewRequest(http.MethodPost, "/quote-requests", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
	assert.Empty(t, objects.stored)
	assert.Empty(t, records.inserted)
	assert.Empty(t, notifier.sent)
}

func TestCreateQuoteRequestMissingData(t *testing.T) {
	r := quoteRouter(newMemObjects(), &memRecords{}, &memNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/quote-requests", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReferralSourcesEndpoint(t *testing.T) {
	r := quoteRouter(newMemObjects(), &memRecords{}, &memNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/referral-sources", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, len(models.ReferralSources))
	assert.Contains(t, resp.Items, "google")
	assert.Contains(t, resp.Items, "the-block")
}
