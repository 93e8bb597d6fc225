package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

var ErrMalformedResponse = errors.New("classifier returned no response")

const systemInstruction = `
You are a content moderator for a photo-sharing community.
Classify the user comment you receive against the community guidelines:
no hate speech, no harassment or bullying, no sexually explicit content,
no dangerous or violent content.
Answer with exactly one word: SAFE if the comment respects the guidelines,
UNSAFE otherwise. Do not explain your answer.
`

// SafetySettings flags every moderated category at medium severity and above.
var SafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// Verdict is the interpreted classifier answer.
type Verdict struct {
	Blocked     bool
	BlockReason string
	Text        string
}

// Unsafe rejects only on an explicit signal: a block, or a verdict containing UNSAFE.
// Any other answer, including empty or unexpected text, passes.
func (v Verdict) Unsafe() bool {
	return v.Blocked || strings.Contains(strings.ToUpper(v.Text), "UNSAFE")
}

// GeminiClassifier asks a Gemini model whether a comment is safe.
type GeminiClassifier struct {
	models    *genai.Models
	modelName string
	timeout   time.Duration
}

func NewGeminiClassifier(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClassifier{
		models:    client.Models,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, text string) (Verdict, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(
		ctx,
		g.modelName,
		genai.Text(buildPrompt(text)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			SafetySettings:    SafetySettings,
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return Verdict{}, fmt.Errorf("generate content: %w", err)
	}
	return InterpretResponse(resp)
}

func buildPrompt(text string) string {
	return "Comment:\n\"\"\"\n" + text + "\n\"\"\""
}

// InterpretResponse extracts the block signal and the verdict text.
func InterpretResponse(resp *genai.GenerateContentResponse) (Verdict, error) {
	if resp == nil {
		return Verdict{}, ErrMalformedResponse
	}

	var v Verdict
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		v.Blocked = true
		v.BlockReason = string(fb.BlockReason)
	}
	for _, c := range resp.Candidates {
		if c != nil && c.FinishReason == genai.FinishReasonSafety {
			v.Blocked = true
			if v.BlockReason == "" {
				v.BlockReason = string(c.FinishReason)
			}
		}
	}
	v.Text = strings.TrimSpace(resp.Text())
	return v, nil
}
