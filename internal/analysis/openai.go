package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const analyzePrompt = `Analyze the journal entry and extract structured fields.
Classify it as one of: TIMELINE (a time-bounded activity), CORE_FOCUS (an
intention for the day or a long-term goal), DREAM_TRACK, QUICK_NOTE.
For CORE_FOCUS also pick a focus_kind from: CHANGE, EXTERNAL_EXPECT,
SELF_EXPECT, IMPORTANT, LONG_TERM.
Respond with a single JSON object with keys: kind, focus_kind, content,
description, tags, target_minutes, target_value, target_date (YYYY-MM-DD).
Omit keys you cannot infer.`

// openaiAnalyzer implements Analyzer on the OpenAI chat API.
type openaiAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed analyzer. If apiKey is empty,
// OPENAI_API_KEY is used.
func NewOpenAI(apiKey, model string) Analyzer {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openaiAnalyzer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *openaiAnalyzer) Analyze(ctx context.Context, text string) (*Result, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analyzePrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai analyze: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai analyze: empty response")
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("openai analyze: decode: %w", err)
	}
	if result.Kind == "" {
		result.Kind = "QUICK_NOTE"
	}
	return &result, nil
}
