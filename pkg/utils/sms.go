package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const defaultSMSBaseURL = "https://api.africastalking.com/version1/messaging"

// SMSClient sends text messages through the Africa's Talking messaging API.
type SMSClient struct {
	Username string
	APIKey   string
	BaseURL  string
	HTTP     *http.Client
	Logger   *zap.Logger
}

// Configured reports whether credentials are present.
func (s *SMSClient) Configured() bool {
	return s != nil && s.Username != "" && s.APIKey != ""
}

func (s *SMSClient) sendSMS(ctx context.Context, message string, recipients []string) error {
	if s.Username == "" {
		return fmt.Errorf("africa's talking username not set")
	}
	if s.APIKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = defaultSMSBaseURL
	}

	data := url.Values{}
	data.Set("username", s.Username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", s.APIKey)
	req.Header.Set("Accept", "application/json")

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	if s.Logger != nil {
		s.Logger.Debug("sms sent", zap.Int("recipients", len(recipients)))
	}
	return nil
}

// SendLoginCode texts a one-time login code.
func (s *SMSClient) SendLoginCode(ctx context.Context, phone, code string) error {
	msg := fmt.Sprintf("Your WODLog login code is %s. It expires in 10 minutes.", code)
	return s.sendSMS(ctx, msg, []string{phone})
}
