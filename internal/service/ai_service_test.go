package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"studypal_backend/internal/config"
	"testing"
)

func aiTestService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func geminiReply(text string) string {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func TestGenerateContent_MissingKey(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	_, err := svc.GenerateContent(GenerateContentRequest{Content: "some notes"})
	if !errors.Is(err, ErrAIMissingKey) {
		t.Fatalf("got %v, want ErrAIMissingKey", err)
	}
}

func TestGenerateContent_NoInput(t *testing.T) {
	svc := aiTestService("http://127.0.0.1:0")
	_, err := svc.GenerateContent(GenerateContentRequest{Content: "   "})
	if !errors.Is(err, ErrAINoInput) {
		t.Fatalf("got %v, want ErrAINoInput", err)
	}
}

func TestGenerateContent_TextHappyPath(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if !strings.Contains(r.URL.Path, "test-model") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not passed in query")
		}

		var body struct {
			GenerationConfig struct {
				Temperature      float64 `json:"temperature"`
				MaxOutputTokens  int     `json:"maxOutputTokens"`
				ResponseMimeType string  `json:"responseMimeType"`
			} `json:"generationConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.GenerationConfig.Temperature != 0.6 || body.GenerationConfig.MaxOutputTokens != 4096 {
			t.Errorf("unexpected generation config: %+v", body.GenerationConfig)
		}

		switch calls {
		case 1:
			w.Write([]byte(geminiReply(`{"summary": "a concise summary"}`)))
		case 2:
			// 模型偶尔会包围栏，客户端需要剥掉
			w.Write([]byte(geminiReply("```json\n" + `{"flashcards": [{"front": "F", "back": "B"}], "questions": [{"question": "Q?", "options": ["A","B","C","D"], "correct_answer": "A", "explanation": "because"}]}` + "\n```")))
		default:
			t.Errorf("unexpected extra call %d", calls)
		}
	}))
	defer srv.Close()

	svc := aiTestService(srv.URL)
	got, err := svc.GenerateContent(GenerateContentRequest{Content: "photosynthesis notes"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if calls != 2 {
		t.Fatalf("made %d calls, want 2 (summary + material)", calls)
	}
	if got.ExtractedText != "photosynthesis notes" {
		t.Errorf("extracted text = %q", got.ExtractedText)
	}
	if got.Summary != "a concise summary" {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.Flashcards) != 1 || got.Flashcards[0].Front != "F" {
		t.Errorf("flashcards = %+v", got.Flashcards)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectAnswer != "A" {
		t.Errorf("questions = %+v", got.Questions)
	}
}

func TestGenerateContent_ImageRunsOCRFirst(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body struct {
			Contents []struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mimeType"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		switch calls {
		case 1:
			if len(body.Contents) == 0 || len(body.Contents[0].Parts) != 2 || body.Contents[0].Parts[1].InlineData == nil {
				t.Errorf("OCR call should carry inline image data")
			}
			w.Write([]byte(geminiReply(`{"extractedText": "text from image"}`)))
		case 2:
			w.Write([]byte(geminiReply(`{"summary": "s"}`)))
		case 3:
			w.Write([]byte(geminiReply(`{"flashcards": [], "questions": []}`)))
		}
	}))
	defer srv.Close()

	svc := aiTestService(srv.URL)
	got, err := svc.GenerateContent(GenerateContentRequest{ImageBase64: "aGVsbG8=", MimeType: "image/png"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if calls != 3 {
		t.Fatalf("made %d calls, want 3 (OCR + summary + material)", calls)
	}
	if got.ExtractedText != "text from image" {
		t.Errorf("extracted text = %q", got.ExtractedText)
	}
}

func TestGenerateContent_ProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrAIRateLimit},
		{"quota exhausted", http.StatusPaymentRequired, ErrAIQuota},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			svc := aiTestService(srv.URL)
			_, err := svc.GenerateContent(GenerateContentRequest{Content: "notes"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.in); got != tt.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
