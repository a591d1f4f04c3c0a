// Package advisor wraps the generative-language endpoint used for text
// rewriting, categorization, and trend summaries. The functions here are
// advisory: they never return an error, and on any failure they degrade
// to a safe fallback so the caller cannot tell "the model declined" from
// "the call broke" — by contract, it does not need to.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/models"
)

// Fallback strings for the admin summary. The error variant is fixed so
// the UI can show it verbatim.
const (
	FallbackNoInsights   = "No insights available at the moment."
	FallbackInsightError = "Unable to generate insights due to an error."
)

// Client talks to a generateContent-style endpoint: one text prompt in,
// one text response out, non-streaming.
type Client struct {
	http   *resty.Client
	model  string
	apiKey string
	logger *zap.Logger
}

func NewClient(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: http, model: model, apiKey: apiKey, logger: logger}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var errDisabled = errors.New("advisor disabled: no api key")

// generate issues one request and returns the concatenated response
// text. Empty text on a successful call comes back as "", not an error.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errDisabled
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("call model endpoint: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("model endpoint returned %d", resp.StatusCode())
	}

	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// EnhanceDescription asks for a professional rewrite of a complaint
// description. On any failure, or an empty response, the original text
// comes back unchanged.
func (c *Client) EnhanceDescription(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(`Rewrite the following hostel complaint description to be more professional, clear, and concise, while keeping all key details. Return only the rewritten text.

Original text: %q`, text)

	enhanced, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("enhance description failed", zap.Error(err))
		return text
	}
	if enhanced == "" {
		return text
	}
	return enhanced
}

// Categorize asks the model for exactly one of the six category labels.
// The response is validated by substring match against the allowed set;
// anything else, and any failure, becomes "Other".
func (c *Client) Categorize(ctx context.Context, title, description string) string {
	prompt := fmt.Sprintf(`Analyze the following hostel complaint and categorize it into exactly one of these categories: "Electrical", "Plumbing", "Internet", "Furniture", "Cleaning", "Other". Return ONLY the category name.

Title: %s
Description: %s`, title, description)

	answer, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("categorize failed", zap.Error(err))
		return "Other"
	}

	for _, cat := range models.Categories {
		if strings.Contains(answer, cat) {
			return cat
		}
	}
	return "Other"
}

// SummarizeForAdmin condenses the complaint list to one line per record
// and asks for a short trend summary. A successful-but-empty response
// and a failed call get distinct fixed fallbacks.
func (c *Client) SummarizeForAdmin(ctx context.Context, cs []models.Complaint) string {
	lines := make([]string, 0, len(cs))
	for _, cc := range cs {
		lines = append(lines, fmt.Sprintf("- [%s] %s (%s)", cc.Category, cc.Title, cc.Status))
	}

	prompt := fmt.Sprintf(`You are a smart hostel facility manager assistant. Analyze the following list of recent complaints and provide a short, actionable insight summary (max 100 words). Identify trends (e.g., "Frequent wifi issues on 2nd floor") and suggest a focus area.

Complaints Data:
%s`, strings.Join(lines, "\n"))

	summary, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("admin summary failed", zap.Error(err))
		return FallbackInsightError
	}
	if summary == "" {
		return FallbackNoInsights
	}
	return summary
}
