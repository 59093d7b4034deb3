// Package assistant generates AI replies about selected news articles.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/newsdesk/newsdesk/internal/model"
)

const systemPrompt = `You are a news assistant. The user has selected one or more news articles and wants to discuss them.

Rules:
1. Answer only from the provided articles; say so when they don't cover the question
2. Be concise: a few sentences unless the user asks for depth
3. Stay neutral; do not editorialize beyond what the articles report
4. When citing, name the article title, not a number`

// maxArticleChars caps how much of each article body goes into the prompt.
const maxArticleChars = 8000

// OpenAIClient answers questions about articles via the chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewOpenAIClient creates a client for the given API key and model name.
func NewOpenAIClient(apiKey, modelName string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(modelName),
	}
}

// Reply produces an assistant answer to question, grounded in the given
// articles and the conversation so far.
func (c *OpenAIClient) Reply(ctx context.Context, articles []*model.Article, history []*model.ChatMessage, question string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}

	if len(articles) > 0 {
		messages = append(messages, openai.SystemMessage(buildArticleContext(articles)))
	}

	for _, msg := range history {
		switch msg.Role {
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	messages = append(messages, openai.UserMessage(question))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildArticleContext renders the selected articles into a prompt block.
func buildArticleContext(articles []*model.Article) string {
	var b strings.Builder
	b.WriteString("Selected articles:\n")

	for _, a := range articles {
		body := a.Content
		if body == "" {
			body = a.Description
		}
		if len(body) > maxArticleChars {
			body = body[:maxArticleChars]
		}

		fmt.Fprintf(&b, "\n---\nTitle: %s\nSource: %s\nPublished: %s\n\n%s\n",
			a.Title, a.Source, a.PublishedAt.Format("January 2, 2006"), body)
	}

	return b.String()
}
