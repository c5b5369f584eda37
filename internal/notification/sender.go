package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Sender delivers a due notification to the device owner.
type Sender interface {
	Send(ctx context.Context, title, message string) error
}

// LogSender writes notifications to the application log. Default delivery
// path when no SMS gateway is configured.
type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, title, message string) error {
	s.log.WithFields(logrus.Fields{
		"title": title,
	}).Infof("Notification: %s", message)
	return nil
}

// SMSSender delivers notifications as text messages through a Textbelt-style
// HTTP gateway.
type SMSSender struct {
	gatewayURL string
	gatewayKey string
	phone      string
	httpClient *http.Client
}

func NewSMSSender(gatewayURL, gatewayKey, phone string) *SMSSender {
	return &SMSSender{
		gatewayURL: gatewayURL,
		gatewayKey: gatewayKey,
		phone:      phone,
		httpClient: http.DefaultClient,
	}
}

func (s *SMSSender) Send(ctx context.Context, title, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   s.phone,
		"message": fmt.Sprintf("%s: %s", title, message),
		"key":     s.gatewayKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode SMS gateway response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("SMS gateway rejected message: %s", result.Error)
	}
	return nil
}
