package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"
)

var (
	ErrInvalidPhone   = errs.New("phone number cannot be used for SMS")
	ErrNotConfigured  = errs.New("SMS API key is not configured")
	ErrDeliveryFailed = errs.New("SMS delivery failed")
)

const createPath = "/apiSms/create"

// P1SMSClient sends messages through the P1SMS JSON API.
type P1SMSClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewP1SMSClient(cfg config.SMSConfig) *P1SMSClient {
	return &P1SMSClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

type createRequest struct {
	APIKey string       `json:"apiKey"`
	SMS    []smsMessage `json:"sms"`
}

type smsMessage struct {
	Channel string `json:"channel"`
	Phone   string `json:"phone"`
	Text    string `json:"text"`
}

type createResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (c *P1SMSClient) Send(ctx context.Context, phone, text string) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	to, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	body, err := json.Marshal(createRequest{
		APIKey: c.apiKey,
		SMS:    []smsMessage{{Channel: "digit", Phone: to, Text: text}},
	})
	if err != nil {
		return errs.Wrap(err, "marshal SMS request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "build SMS request")
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "P1SMS request failed"), ErrDeliveryFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.Newf("P1SMS returned HTTP %d", resp.StatusCode), ErrDeliveryFailed)
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errs.Mark(errs.Wrap(err, "decode P1SMS response"), ErrDeliveryFailed)
	}
	if out.Status != "success" {
		msg := out.Message
		if msg == "" {
			msg = "unknown error"
		}
		return errs.Mark(errs.Newf("P1SMS error: %s", msg), ErrDeliveryFailed)
	}
	if len(out.Data) == 0 || (out.Data[0].Status != "sent" && out.Data[0].Status != "queued") {
		status := "missing"
		if len(out.Data) > 0 {
			status = out.Data[0].Status
		}
		return errs.Mark(errs.Newf("P1SMS message status %q", status), ErrDeliveryFailed)
	}

	slog.Info("SMS sent", "phone", maskPhone(to), "duration_ms", time.Since(started).Milliseconds())
	return nil
}

// NormalizePhone keeps digits only and rewrites a leading 8 to 7.
// The result must be an 11-digit Russian number.
func NormalizePhone(phone string) (string, error) {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}
	if len(digits) != 11 || digits[0] != '7' {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

func maskPhone(digits string) string {
	if len(digits) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// LogSender writes messages to the log instead of sending them. Used when SMS is disabled.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, phone, text string) error {
	slog.Info("SMS disabled, message not sent", "phone", phone, "text", text)
	return nil
}
