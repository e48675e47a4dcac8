package legal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// systemPrompt instructs the model to answer as a PRC lawyer and cite
// statute numbers, refusing to invent them.
const systemPrompt = "你是一名中华人民共和国执业律师，请在回答中**必须**引用具体的法条编号（如《民法典》第23条）。\n" +
	"如果法律里没有对应条文，请直接回复“暂无相关法条”。\n" +
	"请使用简洁、正式的法律语言，切勿捏造法条内容。"

const fallbackAnswer = "暂无相关法条"

// ErrAdviceUnreachable marks a consultation backend that could not be
// reached at all, as opposed to one that answered badly.
var ErrAdviceUnreachable = errors.New("advice backend unreachable")

// AdviceClient relays consultation questions to a chat-completion endpoint.
// Answers can take a while, so the call timeout is deliberately generous.
type AdviceClient struct {
	url    string
	model  string
	client *http.Client
	logger zerolog.Logger
}

func NewAdviceClient(url, model string, logger zerolog.Logger) *AdviceClient {
	return &AdviceClient{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Ask sends the question and returns the model's answer.
func (c *AdviceClient) Ask(question string) (string, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	c.logger.Info().Str("question", truncate(question, 30)).Msg("sending consultation question")
	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdviceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice backend returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding advice response: %w", err)
	}

	answer := decoded.Message.Content
	if answer == "" {
		answer = fallbackAnswer
	}
	c.logger.Info().Str("answer", truncate(answer, 50)).Msg("consultation answered")
	return answer, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
