package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"studypal_backend/internal/config"
	"time"
)

var (
	ErrAIMissingKey = errors.New("AI API key is not configured")
	ErrAINoInput    = errors.New("no text content provided")
	ErrAIRateLimit  = errors.New("AI provider rate limit exceeded")
	ErrAIQuota      = errors.New("AI provider quota exhausted")
)

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateContentRequest 文本与图片二选一，图片走 OCR
type GenerateContentRequest struct {
	Content     string `json:"content"`
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
}

type GeneratedFlashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type GeneratedContent struct {
	ExtractedText string               `json:"extractedText"`
	Summary       string               `json:"summary"`
	Flashcards    []GeneratedFlashcard `json:"flashcards"`
	Questions     []GeneratedQuestion  `json:"questions"`
}

// GenerateContent 三步生成：OCR（仅图片）→ 摘要 → 卡片与题目
func (s *AIService) GenerateContent(req GenerateContentRequest) (*GeneratedContent, error) {
	if s.config.APIKey == "" {
		return nil, ErrAIMissingKey
	}

	extractedText := req.Content

	if extractedText == "" && req.ImageBase64 != "" && req.MimeType != "" {
		var ocr struct {
			ExtractedText string `json:"extractedText"`
		}
		parts := []geminiPart{
			{Text: "Extract ALL readable text from this image.\n\nReturn ONLY valid JSON:\n{\n  \"extractedText\": \"full text\"\n}"},
			{InlineData: &geminiInlineData{MimeType: req.MimeType, Data: req.ImageBase64}},
		}
		if err := s.callModel(parts, &ocr); err != nil {
			return nil, fmt.Errorf("failed to extract text from image: %w", err)
		}
		extractedText = ocr.ExtractedText
	}

	if strings.TrimSpace(extractedText) == "" {
		return nil, ErrAINoInput
	}

	var summary struct {
		Summary string `json:"summary"`
	}
	summaryPrompt := "Summarize the content below.\n\nRULES:\n- 300–500 words\n- Focus on key concepts\n- No markdown\n- No extra text\n\nReturn ONLY valid JSON:\n{\n  \"summary\": \"summary text\"\n}\n\nCONTENT:\n" + extractedText
	if err := s.callModel([]geminiPart{{Text: summaryPrompt}}, &summary); err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	var material struct {
		Flashcards []GeneratedFlashcard `json:"flashcards"`
		Questions  []GeneratedQuestion  `json:"questions"`
	}
	materialPrompt := "Using ONLY the content below, generate study material.\n\nSTRICT RULES:\n- EXACTLY 20 flashcards\n- EXACTLY 30 multiple-choice questions\n- 4 options per question\n- No markdown\n- No extra text\n\nReturn ONLY valid JSON:\n{\n  \"flashcards\": [\n    { \"front\": \"term or question\", \"back\": \"definition or answer\" }\n  ],\n  \"questions\": [\n    {\n      \"question\": \"question text\",\n      \"options\": [\"A\", \"B\", \"C\", \"D\"],\n      \"correct_answer\": \"exact option text\",\n      \"explanation\": \"why it is correct\"\n    }\n  ]\n}\n\nCONTENT:\n" + extractedText
	if err := s.callModel([]geminiPart{{Text: materialPrompt}}, &material); err != nil {
		return nil, fmt.Errorf("failed to generate study materials: %w", err)
	}

	return &GeneratedContent{
		ExtractedText: extractedText,
		Summary:       summary.Summary,
		Flashcards:    material.Flashcards,
		Questions:     material.Questions,
	}, nil
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiRequest struct {
	Contents []struct {
		Role  string       `json:"role"`
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// callModel 单次模型调用，剥离 Markdown 代码围栏后按 JSON 解析
func (s *AIService) callModel(parts []geminiPart, out interface{}) error {
	var body geminiRequest
	body.Contents = append(body.Contents, struct {
		Role  string       `json:"role"`
		Parts []geminiPart `json:"parts"`
	}{Role: "user", Parts: parts})
	body.GenerationConfig.Temperature = 0.6
	body.GenerationConfig.MaxOutputTokens = 4096
	body.GenerationConfig.ResponseMimeType = "application/json"

	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.config.BaseURL, s.config.Model, s.config.APIKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return ErrAIRateLimit
	case http.StatusPaymentRequired:
		return ErrAIQuota
	default:
		return fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("AI returned no candidates")
	}

	text := StripCodeFence(result.Candidates[0].Content.Parts[0].Text)
	return json.Unmarshal([]byte(text), out)
}

// StripCodeFence 去掉模型偶发包裹的 ```json 围栏
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
