// Package gemini implements the text-improvement service and token counting
// on top of Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/docweaver/docweaver"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const improveSystemInstruction = "You are an expert technical editor refining assembled software documentation. " +
	"Improve structure, formatting, and flow only. Preserve every piece of technical content exactly: " +
	"code blocks, commands, configuration values, numbers, URLs, and API names must pass through unchanged. " +
	"Never summarize away detail and never invent content that is not in the input. " +
	"Keep the table of contents and section anchors intact. Return only the improved markdown."

// Ensure Improver implements docweaver.Improver at compile time.
var _ docweaver.Improver = (*Improver)(nil)

// Improver rewrites an assembled document for readability using Gemini.
// The combined document is always written before improvement runs, so a
// failed or mangled improvement never costs captured content.
type Improver struct {
	client *genai.Client
	model  string
}

// NewImprover creates a new Improver. An empty model selects DefaultModel.
func NewImprover(client *genai.Client, model string) *Improver {
	if model == "" {
		model = DefaultModel
	}
	return &Improver{client: client, model: model}
}

// ImproveText sends the assembled markdown to Gemini and returns the
// improved version.
func (i *Improver) ImproveText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", docweaver.Errorf(docweaver.EINVALID, "nothing to improve")
	}

	result, err := i.client.Models.GenerateContent(ctx, i.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildImprovePrompt(text)}},
		}},
		BuildImproveConfig(),
	)
	if err != nil {
		return "", docweaver.Errorf(docweaver.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return "", docweaver.Errorf(docweaver.EINTERNAL, "gemini returned nil result")
	}

	improved := result.Text()
	if strings.TrimSpace(improved) == "" {
		return "", docweaver.Errorf(docweaver.EINTERNAL, "gemini returned an empty document")
	}
	return improved, nil
}

// BuildImproveConfig returns the GenerateContentConfig for improvement
// calls. Temperature is kept low: this is editing, not writing.
func BuildImproveConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: improveSystemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildImprovePrompt wraps the document for the improvement call.
func BuildImprovePrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Improve the following assembled documentation.\n\n<document>\n")
	sb.WriteString(text)
	sb.WriteString("\n</document>")
	return sb.String()
}
