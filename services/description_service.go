package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/smart-pos/utils"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.5-flash"

	// DescriptionFailed is shown in place of a description whenever the
	// generator cannot produce one.
	DescriptionFailed = "เกิดข้อผิดพลาดในการสร้างคำอธิบายด้วย AI"
)

var errMissingAPIKey = errors.New("gemini API key not configured")

// DescriptionService writes short marketing copy for a product through the
// Gemini generateContent API.
type DescriptionService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewDescriptionService(apiKey, baseURL, model string) *DescriptionService {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &DescriptionService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// DescriptionPrompt is the instruction sent for a product.
func DescriptionPrompt(name, category string) string {
	return fmt.Sprintf("ช่วยเขียนคำอธิบายสินค้าที่น่าสนใจและดึงดูดลูกค้าสำหรับ \"%s\" ซึ่งอยู่ในหมวดหมู่ \"%s\" ความยาวไม่เกิน 2-3 ประโยค สั้นๆ กระชับ และใช้ภาษาที่เป็นกันเอง", name, category)
}

// Describe returns generated copy, or DescriptionFailed on any error.
func (s *DescriptionService) Describe(ctx context.Context, name, category string) string {
	text, err := s.Generate(ctx, name, category)
	if err != nil {
		utils.ErrorLogger.Errorf("Error generating description for %q: %v", name, err)
		return DescriptionFailed
	}
	return text
}

// Generate is Describe with the underlying error.
func (s *DescriptionService) Generate(ctx context.Context, name, category string) (string, error) {
	if s.apiKey == "" {
		return "", errMissingAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: DescriptionPrompt(name, category)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned an empty description")
	}
	return text, nil
}
