// Package assistant produces generated text: the daily task summary, diet
// meal extraction and the info views.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/nahar/internal/constants"
)

// Request is one generation call.
type Request struct {
	Prompt string
	// WebSearch grounds the answer with live search results.
	WebSearch bool
	// Schema asks for a JSON response matching it.
	Schema *genai.Schema
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var ErrEmptyResponse = errors.New("model returned an empty response")

// GeminiClient is a Generator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}
	if model == "" {
		model = constants.DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Model() string { return g.model }

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	var config *genai.GenerateContentConfig
	if req.WebSearch || req.Schema != nil {
		config = &genai.GenerateContentConfig{}
	}
	if req.WebSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
