package tutor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Nirjal444/MATHBOT/internal/config"
	"github.com/Nirjal444/MATHBOT/internal/model/chat"
)

const systemPrompt = "You are an expert undergraduate mathematics tutor.\n" +
	"When given a user question, respond with a JSON object with two keys: 'explanation' and 'speech'.\n" +
	"- 'explanation' should contain the full detailed explanation. You may include LaTeX delimiters (like $...$ or $$...$$) where appropriate.\n" +
	"- 'speech' should be a concise, clear spoken explanation suitable for text-to-speech (no LaTeX markup).\n" +
	"Always return valid JSON and nothing else. If you must include code or math, ensure the 'speech' field remains plain text.\n"

// Service answers math questions through the configured chat model. Every
// failure path is absorbed here: Answer always returns a well-formed pair and
// never surfaces an error to the websocket layer.
type Service struct {
	cfg     config.AIConfig
	chain   compose.Runnable[map[string]any, *schema.Message]
	initErr error
}

// NewService builds the tutor service. When no credential is configured or
// mock mode is on, the upstream chain is skipped entirely. A failed model
// initialization degrades the service instead of failing startup.
func NewService(ctx context.Context, cfg config.AIConfig) *Service {
	svc := &Service{cfg: cfg}
	if !cfg.Enabled() || cfg.MockMode {
		return svc
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		log.Printf("[tutor] chat model init failed: %v", err)
		svc.initErr = err
		return svc
	}

	if err := svc.bindModel(ctx, chatModel); err != nil {
		log.Printf("[tutor] chat chain compile failed: %v", err)
		svc.initErr = err
	}
	return svc
}

// NewServiceWithModel wires an explicit chat model. Used by tests to inject a
// fake model.
func NewServiceWithModel(ctx context.Context, cfg config.AIConfig, chatModel model.ChatModel) (*Service, error) {
	svc := &Service{cfg: cfg}
	if err := svc.bindModel(ctx, chatModel); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) bindModel(ctx context.Context, chatModel model.ChatModel) error {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return fmt.Errorf("failed to compile chat chain: %w", err)
	}

	s.chain = runnable
	return nil
}

// Answer produces a structured explanation/speech pair for the given prompt.
// Decision order: missing credential, mock mode, then one chain invocation.
func (s *Service) Answer(ctx context.Context, question string) chat.Answer {
	if !s.cfg.Enabled() {
		return missingKeyAnswer()
	}
	if s.cfg.MockMode {
		return mockAnswer()
	}

	msg, err := s.generate(ctx, question)
	if err != nil {
		log.Printf("[tutor] chat completion failed: %v", err)
		return failureAnswer(err)
	}

	answer := parseAnswer(extractContent(msg))
	log.Printf("[tutor] generated answer, explanation length=%d", len(answer.Explanation))
	return answer
}

func (s *Service) generate(ctx context.Context, question string) (*schema.Message, error) {
	if s.chain == nil {
		if s.initErr != nil {
			return nil, s.initErr
		}
		return nil, errors.New("chat chain not initialized")
	}

	return s.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  question,
	})
}

type failureKind int

const (
	failureUpstream failureKind = iota
	failureQuota
)

// quotaTokens flag provider errors caused by exhausted quota or rate limits.
// The Ark client surfaces these as opaque error strings, so classification
// stays a substring match over the error text.
var quotaTokens = []string{"insufficient_quota", "quota", "429"}

func classifyFailure(err error) failureKind {
	msg := err.Error()
	for _, token := range quotaTokens {
		if strings.Contains(msg, token) {
			return failureQuota
		}
	}
	return failureUpstream
}

func missingKeyAnswer() chat.Answer {
	return chat.Answer{
		Explanation: "Ark API key not set on the server. Please set ARK_API_KEY in the environment to enable model responses. Example: export ARK_API_KEY=your_key",
		Speech:      "The model key is not set on the server. Please set it and restart the server.",
	}
}

func mockAnswer() chat.Answer {
	return chat.Answer{
		Explanation: "(Mock) The derivative of x^2 is 2x. In general, d/dx x^n = n x^{n-1}.",
		Speech:      "Mock answer: the derivative of x squared is two x.",
	}
}

func failureAnswer(err error) chat.Answer {
	explanation := fmt.Sprintf("model request failed: %v", err)
	switch classifyFailure(err) {
	case failureQuota:
		return chat.Answer{
			Explanation: explanation,
			Speech:      "The model provider returned a quota error (insufficient quota or rate limit). Check your plan and billing, or set USE_MOCK=true for local testing.",
		}
	default:
		return chat.Answer{
			Explanation: explanation,
			Speech:      "Sorry, I could not reach the language model.",
		}
	}
}
