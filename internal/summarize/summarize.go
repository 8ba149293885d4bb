// Package summarize asks a hosted model to turn a category's ranked
// items into a Japanese Markdown digest section.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"thaidigest/internal/feed"
	"thaidigest/internal/logger"
	"thaidigest/internal/metrics"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	maxOutputTokens  = 1800
	temperature      = 0.2
	summaryBudget    = 800 // runes of item summary fed to the model
)

type Client struct {
	invoker Invoker
	modelID string
}

func NewClient(invoker Invoker, modelID string) *Client {
	return &Client{invoker: invoker, modelID: modelID}
}

// compactItem is the projection of an Item embedded in the prompt.
type compactItem struct {
	No         int    `json:"no"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Published  string `json:"published"`
	URL        string `json:"url"`
	SourceFeed string `json:"source_feed"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	Messages         []message `json:"messages"`
}

// Summarize sends the category's items to the model and returns the
// section body. A response the shape chain cannot decode falls back to
// the raw payload text; only the model call itself failing is an error.
func (c *Client) Summarize(ctx context.Context, categoryTitle string, items []feed.Item) (string, error) {
	prompt, err := BuildPrompt(categoryTitle, items)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(request{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxOutputTokens,
		Temperature:      temperature,
		Messages: []message{
			{
				Role:    "user",
				Content: []contentBlock{{Type: "text", Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	metrics.Global.IncrementModelCalls()
	payload, err := c.invoker.Invoke(ctx, c.modelID, body)
	if err != nil {
		return "", err
	}

	out := ExtractText(payload)
	if out == "" {
		// Debug-visibility fallback: surface the raw payload in the
		// section rather than failing the category.
		logger.Warn("model response shape not recognized", "category", categoryTitle)
		metrics.Global.IncrementModelFallbacks()
		out = string(payload)
	}
	return out, nil
}

// BuildPrompt embeds the compact item list as JSON inside the editor
// instruction. The instruction fixes output language and format, bans
// speculation, and asks for duplicate topics to be grouped visually.
func BuildPrompt(categoryTitle string, items []feed.Item) (string, error) {
	compact := make([]compactItem, 0, len(items))
	for i, it := range items {
		compact = append(compact, compactItem{
			No:         i + 1,
			Title:      it.Title,
			Summary:    truncateRunes(it.Summary, summaryBudget),
			Published:  it.Published,
			URL:        it.Link,
			SourceFeed: it.SourceFeed,
		})
	}
	data, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}

	var b strings.Builder
	b.WriteString("あなたは国際ニュース編集者です。以下はタイのニュース（カテゴリ: ")
	b.WriteString(categoryTitle)
	b.WriteString("）のRSS抜粋です。\n\n")
	b.WriteString("要件:\n")
	b.WriteString("- 出力は日本語\n")
	b.WriteString("- Markdown形式\n")
	b.WriteString("- 最初に「今日の要点（3〜6点）」を箇条書き\n")
	b.WriteString("- 次に「記事一覧」として、各記事を見出し付きで要約（2〜4行）し、最後に必ずURLを記載\n")
	b.WriteString("- 不確かな推測は禁止。与えられた情報（title/summary）から言える範囲で書く\n")
	b.WriteString("- 誇張せず、事実ベースで簡潔に\n")
	b.WriteString("- 同じ話題が複数記事にある場合は、記事一覧は残しつつ「同一トピック」と分かるように表現を揃える\n\n")
	b.WriteString("入力データ(JSON):\n")
	b.Write(data)
	return b.String(), nil
}

// ExtractText tries the known response shapes in priority order and
// returns the first non-empty text, or "" when none matches.
func ExtractText(payload []byte) string {
	// 1) Anthropic-style content block list.
	var blocks struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(payload, &blocks); err == nil {
		var parts []string
		for _, blk := range blocks.Content {
			if blk.Type == "text" && blk.Text != "" {
				parts = append(parts, blk.Text)
			}
		}
		if out := strings.TrimSpace(strings.Join(parts, "\n")); out != "" {
			return out
		}
	}

	// 2) Converse/Nova-style output.message.content.
	var converse struct {
		Output struct {
			Message struct {
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"message"`
		} `json:"output"`
	}
	if err := json.Unmarshal(payload, &converse); err == nil {
		var parts []string
		for _, blk := range converse.Output.Message.Content {
			if blk.Text != "" {
				parts = append(parts, blk.Text)
			}
		}
		if out := strings.TrimSpace(strings.Join(parts, "\n")); out != "" {
			return out
		}
	}

	// 3) Flat completion / output_text string.
	var flat struct {
		Completion string `json:"completion"`
		OutputText string `json:"output_text"`
	}
	if err := json.Unmarshal(payload, &flat); err == nil {
		if out := strings.TrimSpace(flat.Completion); out != "" {
			return out
		}
		if out := strings.TrimSpace(flat.OutputText); out != "" {
			return out
		}
	}

	return ""
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
