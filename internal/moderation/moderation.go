package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resty.dev/v3"
)

const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

const prompt = `You are a content moderator for a pet owner community.
Classify the following user text. Respond with a single JSON object of the
form {"decision": "allow" | "block", "reason": "<short reason>"} and nothing
else. Block hate speech, harassment, animal abuse, spam and sexual content.
Text:
`

// Service classifies user text through the Gemini generateContent REST API.
type Service struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

func NewService(client *resty.Client, apiKey, model string) *Service {
	return &Service{
		client:  client,
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

// Verdict is the normalized moderation outcome.
type Verdict struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
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

// ClassifyText asks the model for a verdict on the given text.
func (s *Service) ClassifyText(ctx context.Context, text string) (Verdict, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt + text}}}},
	}

	var result generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(url)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to call moderation model: %w", err)
	}
	if resp.IsError() {
		return Verdict{}, fmt.Errorf("moderation model returned status %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return Verdict{}, fmt.Errorf("moderation model returned no candidates")
	}

	return ParseVerdict(result.Candidates[0].Content.Parts[0].Text)
}

// ParseVerdict extracts the JSON object from a model reply. Replies often
// wrap the object in markdown fences or prose, so it scans for the outermost
// braces instead of unmarshalling the reply as-is.
func ParseVerdict(reply string) (Verdict, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return Verdict{}, fmt.Errorf("no JSON object in model reply")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(reply[start:end+1]), &v); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode model verdict: %w", err)
	}

	v.Decision = normalizeDecision(v.Decision)
	if v.Decision == "" {
		return Verdict{}, fmt.Errorf("model verdict has no usable decision")
	}
	return v, nil
}

func normalizeDecision(decision string) string {
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case DecisionAllow, "ok", "safe", "pass":
		return DecisionAllow
	case DecisionBlock, "deny", "reject", "unsafe", "flag":
		return DecisionBlock
	default:
		return ""
	}
}
