package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/amexan-commerce/services"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(sent *[]sentMail) *Mailer {
	m := NewMailer(MailConfig{
		From:        "shop@amexan.store",
		Host:        "smtp.example.com",
		Address:     "smtp.example.com:587",
		FrontendURL: "https://www.amexan.store",
	})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m
}

func TestMailerVerificationEmail(t *testing.T) {
	var sent []sentMail
	m := newTestMailer(&sent)

	err := m.Notify(context.Background(), services.Notification{
		Kind:  services.NotifyAccountCreated,
		Email: "amina@example.com",
		Name:  "amina",
		Token: "abc 123",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "smtp.example.com:587", sent[0].addr)
	assert.Equal(t, []string{"amina@example.com"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Subject: Account Verification")
	assert.Contains(t, sent[0].msg, "https://www.amexan.store/auth/verify-email?token=abc")
	assert.Contains(t, sent[0].msg, "Hello amina")
}

func TestMailerOrderEmails(t *testing.T) {
	var sent []sentMail
	m := newTestMailer(&sent)

	err := m.Notify(context.Background(), services.Notification{
		Kind:      services.NotifyPaymentCaptured,
		Email:     "amina@example.com",
		Name:      "amina",
		OrderID:   42,
		Amount:    "20.00",
		Status:    "completed",
		Reference: "txn-1",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].msg, "Subject: Payment receipt for order #42")
	assert.Contains(t, sent[0].msg, "20.00")
	assert.Contains(t, sent[0].msg, "txn-1")

	assert.Error(t, m.Notify(context.Background(), services.Notification{Kind: services.NotifyOrderPlaced}))
	assert.Error(t, m.Notify(context.Background(), services.Notification{Kind: "unknown", Email: "x@example.com"}))
	assert.Len(t, sent, 1)
}

func TestMailerWrapsSendFailure(t *testing.T) {
	m := NewMailer(MailConfig{From: "shop@amexan.store"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	err := m.Notify(context.Background(), services.Notification{
		Kind:    services.NotifyOrderStatusChanged,
		Email:   "amina@example.com",
		OrderID: 7,
		Status:  "shipped",
	})
	assert.ErrorContains(t, err, "failed to send email")
}

func TestWebhookNotifier(t *testing.T) {
	var got services.Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, time.Second)
	err := n.Notify(context.Background(), services.Notification{
		Kind:    services.NotifyOrderPlaced,
		Email:   "amina@example.com",
		OrderID: 9,
		Amount:  "12.50",
		Token:   "never-sent",
	})
	require.NoError(t, err)
	assert.Equal(t, services.NotifyOrderPlaced, got.Kind)
	assert.Equal(t, uint(9), got.OrderID)
	assert.Equal(t, "12.50", got.Amount)
	assert.Empty(t, got.Token)
}

func TestWebhookNotifierReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewWebhookNotifier(server.URL, time.Second).Notify(context.Background(), services.Notification{Kind: services.NotifyOrderPlaced})
	assert.ErrorContains(t, err, "status 400")
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) Notify(context.Context, services.Notification) error {
	s.calls++
	return s.err
}

func TestMultiNotifier(t *testing.T) {
	ok := &stubNotifier{}
	failing := &stubNotifier{err: errors.New("down")}
	multi := MultiNotifier{failing, ok}

	err := multi.Notify(context.Background(), services.Notification{})
	assert.ErrorContains(t, err, "down")
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)

	assert.NoError(t, MultiNotifier{ok}.Notify(context.Background(), services.Notification{}))
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	return &manager.UploadOutput{Location: "https://amexan.s3.amazonaws.com/" + *input.Key}, nil
}

func TestS3StoreUpload(t *testing.T) {
	fake := &fakeUploader{}
	store := &S3Store{bucket: "amexan", uploader: fake}

	url, err := store.Upload(context.Background(), "products/1/a.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://amexan.s3.amazonaws.com/products/1/a.png", url)
	assert.Equal(t, "amexan", *fake.input.Bucket)
	assert.Equal(t, "image/png", *fake.input.ContentType)
	assert.Equal(t, "pixels", fake.body)

	fake.err = errors.New("access denied")
	_, err = store.Upload(context.Background(), "products/1/b.png", "image/png", strings.NewReader("x"))
	assert.ErrorContains(t, err, "access denied")
}
