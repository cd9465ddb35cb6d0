package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// LoopsSender posts to the Loops transactional endpoint.
type LoopsSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLoopsSender(baseURL, apiKey string, timeout time.Duration) *LoopsSender {
	return &LoopsSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type loopsPayload struct {
	TransactionalID string            `json:"transactionalId"`
	Email           string            `json:"email"`
	DataVariables   map[string]string `json:"dataVariables"`
}

// LoopsError carries the provider status and message.
type LoopsError struct {
	Status  int
	Message string
}

func (e *LoopsError) Error() string {
	return fmt.Sprintf("loops transactional error %d: %s", e.Status, e.Message)
}

func (s *LoopsSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(loopsPayload{
		TransactionalID: msg.TemplateID,
		Email:           msg.Email,
		DataVariables:   msg.Variables,
	})
	if err != nil {
		return fmt.Errorf("encode loops payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transactional", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("loops request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 400 {
		message := gjson.GetBytes(respBody, "message").String()
		if message == "" {
			message = strings.TrimSpace(string(respBody))
		}
		return &LoopsError{Status: resp.StatusCode, Message: message}
	}
	if r := gjson.GetBytes(respBody, "success"); r.Exists() && !r.Bool() {
		return &LoopsError{Status: resp.StatusCode, Message: gjson.GetBytes(respBody, "message").String()}
	}
	return nil
}
