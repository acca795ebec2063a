package insights

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
)

const (
	completionsPath = "/v1/chat/completions"
	maxBodySize     = 1 << 20

	systemPrompt = "You are an assistant for a restaurant manager. " +
		"Reply with a JSON object {\"insight\": string, \"suggestion\": string}: " +
		"one short observation about today's numbers and one actionable suggestion."
)

// Client клиент OpenAI-совместимого сервиса генерации текста.
// Не повторяет запросы и никогда не возвращает ошибку: при любом сбое
// отдает фиксированную пару insight/suggestion.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента.
// Пустой apiKey допустим - тогда клиент всегда отвечает заглушкой.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// Generate возвращает подсказку для дашборда с graceful degradation
func (c *Client) Generate(ctx context.Context, req Request) Insight {
	raw, err := c.complete(ctx, req)
	switch {
	case err == nil:
		return parseContent(raw)
	case errors.Is(err, ErrMissingAPIKey):
		c.log.Warn("Generate: api key is not configured, returning stub")
		c.fallback("missing_key")
		return unavailableInsight
	case errors.Is(err, ErrUnexpectedStatus):
		c.log.Error("Generate: %v", err)
		c.fallback("bad_status")
		return tryLaterInsight
	case errors.Is(err, ErrInvalidResponse):
		c.log.Warn("Generate: %v, splitting raw body", err)
		c.fallback("malformed")
		return splitText(raw)
	default:
		c.log.Error("Generate: insights service unreachable: %v", err)
		c.fallback("network")
		return connectivityInsight
	}
}

// complete выполняет запрос и возвращает текст ответа модели.
// При ErrInvalidResponse возвращается сырое тело ответа.
func (c *Client) complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	stats, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode stats: %v", ErrTransport, err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Dashboard stats: " + string(stats)},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return string(body), fmt.Errorf("%w: cannot decode chat completion", ErrInvalidResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) fallback(reason string) {
	if c.metrics != nil {
		c.metrics.IncInsightFallback(reason)
	}
}

// parseContent ожидает JSON {insight, suggestion}; модель иногда отвечает
// простым текстом или оборачивает JSON в markdown, тогда делим по строкам
func parseContent(content string) Insight {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	var insight Insight
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &insight); err == nil && insight.Insight != "" {
		return insight
	}

	return splitText(content)
}

// splitText первая непустая строка - insight, остальное - suggestion
func splitText(text string) Insight {
	text = strings.TrimSpace(text)
	if text == "" {
		return tryLaterInsight
	}

	first, rest, _ := strings.Cut(text, "\n")
	return Insight{
		Insight:    strings.TrimSpace(first),
		Suggestion: strings.TrimSpace(rest),
	}
}
