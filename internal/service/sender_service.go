package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"willspark/internal/entities"
)

// EmailSender delivers a plain-text email with optional file attachments.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string, files ...entities.ExportFile) error
}

// SMSSender delivers a single text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

const sendGridHost = "https://api.sendgrid.com"

type SendGridSender struct {
	APIKey    string
	FromEmail string
	FromName  string
	Host      string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{APIKey: apiKey, FromEmail: fromEmail, FromName: fromName, Host: sendGridHost}
}

func (s *SendGridSender) SendEmail(ctx context.Context, to, subject, body string, files ...entities.ExportFile) error {
	if s.APIKey == "" || s.FromEmail == "" {
		return fmt.Errorf("sendgrid is not configured")
	}

	message := mail.NewSingleEmail(mail.NewEmail(s.FromName, s.FromEmail), subject, mail.NewEmail("", to), body, "")
	for _, f := range files {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(f.Body))
		a.SetType(f.ContentType)
		a.SetFilename(f.Filename)
		a.SetDisposition("attachment")
		message.AddAttachment(a)
	}

	request := sendgrid.GetRequest(s.APIKey, "/v3/mail/send", s.Host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)
	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("send email to %s via sendgrid: %w", to, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("sender: email %q sent to %s (status %d)", subject, to, response.StatusCode)
	return nil
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSender{client: client, fromNumber: fromNumber}
}

func (s *TwilioSender) SendSMS(_ context.Context, to, body string) error {
	if !strings.HasPrefix(to, "+") {
		log.Printf("sender: %q is not in E.164 format, the SMS may fail", to)
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send SMS to %s: %w", to, err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("sender: SMS sent to %s (sid %s)", to, *resp.Sid)
	}
	return nil
}
