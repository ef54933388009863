package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/studypal/backend/internal/models"
)

// ErrNotConfigured means no upstream credential is present. Requests fail
// fast instead of reaching the network.
var ErrNotConfigured = errors.New("assistant API key not configured")

// LLMClient is the interface both assistant backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, cfg GenConfig) (*LLMResponse, error)
}

// GenConfig carries the per-operation sampling settings.
type GenConfig struct {
	MaxTokens   int64
	Temperature float64
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Assistant wraps an LLMClient with the three study-aid operations:
// flashcard extraction, summarization, and tutoring explanations.
type Assistant struct {
	llm   LLMClient
	model string
	err   error
}

func NewAssistant() *Assistant {
	if os.Getenv("MOCK_ASSISTANT") == "true" {
		log.Println("Assistant using mock responses")
		return &Assistant{llm: NewMockClient(), model: "mock"}
	}

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Println("Assistant disabled: ANTHROPIC_API_KEY not set")
		return &Assistant{err: ErrNotConfigured}
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-opus-4-5-20251101"
	}
	log.Println("Assistant using Anthropic API:", model)
	return &Assistant{llm: NewAPIClient(model), model: model}
}

func (a *Assistant) ModelName() string {
	return a.model
}

// GenerateFlashcards turns pasted study notes into front/back cards.
func (a *Assistant) GenerateFlashcards(ctx context.Context, notes string, subject models.Subject) ([]models.CardInput, error) {
	if a.err != nil {
		return nil, a.err
	}

	resp, err := a.llm.Generate(ctx, FlashcardSystemPrompt(), BuildFlashcardPrompt(notes, subject), GenConfig{
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	cards, err := ParseFlashcards(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse flashcards response: %w", err)
	}
	return cards, nil
}

// Summarize condenses pasted text in the requested style.
func (a *Assistant) Summarize(ctx context.Context, text, style string) (string, error) {
	if a.err != nil {
		return "", a.err
	}

	resp, err := a.llm.Generate(ctx, SummarySystemPrompt(), BuildSummaryPrompt(text, style), GenConfig{
		MaxTokens:   1024,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// Explain answers a student's question in tutor register.
func (a *Assistant) Explain(ctx context.Context, question string, subject models.Subject) (string, error) {
	if a.err != nil {
		return "", a.err
	}

	resp, err := a.llm.Generate(ctx, ExplainSystemPrompt(subject), BuildExplainPrompt(question), GenConfig{
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("explain: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// ── APIClient — Anthropic SDK ──────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt, userPrompt string, cfg GenConfig) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   cfg.MaxTokens,
		Temperature: param.NewOpt(cfg.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt, userPrompt string, cfg GenConfig) (*LLMResponse, error) {
	content := "[Mock] This is a placeholder response. Set ANTHROPIC_API_KEY to use the real assistant."
	if strings.Contains(systemPrompt, "flashcards") {
		content = mockFlashcardsJSON()
	}
	return &LLMResponse{
		Content:      content,
		PromptTokens: 500,
		OutputTokens: 400,
	}, nil
}

func mockFlashcardsJSON() string {
	pairs := [][2]string{
		{"What is photosynthesis?", "[Mock] The process by which plants convert light energy into chemical energy."},
		{"Mitochondria", "[Mock] The organelle that produces most of the cell's ATP."},
		{"What is the capital of France?", "[Mock] Paris."},
		{"Pythagorean theorem", "[Mock] In a right triangle, a² + b² = c²."},
		{"Who wrote Romeo and Juliet?", "[Mock] William Shakespeare."},
	}

	cards := "["
	for i, p := range pairs {
		if i > 0 {
			cards += ","
		}
		cards += fmt.Sprintf(`{"front":%q,"back":%q}`, p[0], p[1])
	}
	return cards + "]"
}
