package notifications

import (
	"fmt"
	"log"
	"strings"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/go-resty/resty/v2"
)

const brevoBaseURL = "https://api.brevo.com"

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string

	client *resty.Client
}

var EmailClient *BrevoService

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func NewBrevoService(baseURL, apiKey, senderEmail, senderName string) *BrevoService {
	if baseURL == "" {
		baseURL = brevoBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetHeader("accept", "application/json").
		SetHeader("api-key", apiKey)

	return &BrevoService{APIKey: apiKey, SenderEmail: senderEmail, SenderName: senderName, client: client}
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.ConfigDefault("EMAIL_SENDER_NAME", "OmniLearn")

	if apiKey == "" || senderEmail == "" {
		log.Println("⚠️ Email service not configured. Missing BREVO_API_KEY or EMAIL_SENDER.")
		EmailClient = nil
		return
	}

	EmailClient = NewBrevoService("", apiKey, senderEmail, senderName)
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) Send(toEmail, toName, subject, htmlContent string) error {
	at := strings.Index(toEmail, "@")
	if at <= 0 {
		return fmt.Errorf("invalid recipient email: %q", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:at]
	}

	resp, err := s.client.R().
		SetBody(brevoPayload{
			Sender:      brevoContact{Email: s.SenderEmail, Name: s.SenderName},
			To:          []brevoContact{{Email: toEmail, Name: recipientName}},
			Subject:     subject,
			HTMLContent: htmlContent,
		}).
		Post("/v3/smtp/email")
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() != 201 {
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// SendEmail is fire-and-forget; callers usually run it in a goroutine.
func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Println("Email client not initialized, skipping email send.")
		return
	}

	if err := EmailClient.Send(toEmail, toName, subject, htmlContent); err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}
	log.Printf("✅ Email sent successfully to %s", toEmail)
}
