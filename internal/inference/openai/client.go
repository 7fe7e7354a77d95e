// Package openai implements the inference client against the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/mcqdeck/mcqdeck/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, maxRetryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const systemPrompt = "You are an educational assistant that creates multiple-choice questions. " +
	"Always respond with questions in the exact pipe-separated format requested, one per line, with no other text."

// GenerateQuestions implements the inference.Client interface.
func (client *Client) GenerateQuestions(
	ctx context.Context,
	params inference.GenerateQuestionsParams,
) (string, error) {
	count := params.Count
	if count <= 0 {
		count = inference.DefaultQuestionCount
	}

	var result string
	if err := retry.Do(
		func() error {
			response, err := client.generateQuestions(ctx, params.Content, count)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) generateQuestions(ctx context.Context, content string, count int) (string, error) {
	prompt := fmt.Sprintf(`Based on the following content, generate %d multiple-choice questions in pipe-separated format. Each line should be: Question | Option A | Option B | Option C | Option D | Answer (A, B, C, or D)

Content:
%s

Generate exactly %d questions, one per line, in the specified format.`, count, content, count)

	request := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	var response ChatCompletionResponse
	res, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.R().Post > %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("response error %d: %s", res.StatusCode(), res.String())
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}
