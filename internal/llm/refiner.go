package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/circuitbreaker"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
)

const rewriteInstruction = `You are an expert prompt engineer. Transform this simple prompt into a highly structured, effective prompt using advanced LLM techniques.

Apply these techniques:
1. XML structure for clear organization
2. Chain-of-thought reasoning framework
3. Role prompting for context
4. Specific output formatting instructions
5. Context and requirements breakdown
6. Clear task definition

Format the response with XML tags like <task>, <context>, <requirements>, <output_format>, etc.

Original prompt: %s

Return ONLY the enhanced prompt with XML structure, no explanations.`

const compressInstruction = `You are an expert at semantic compression. Compress this prompt to reduce token usage while maintaining the exact same meaning and effectiveness.

Guidelines:
1. Remove redundant words and phrases
2. Keep essential instructions and constraints
3. Preserve the original intent exactly

Original prompt: %s

Return ONLY the compressed version, no explanations.`

// Refiner polishes composed prompts through an external model. The
// provider is treated as unreliable: every call runs under a timeout
// and a circuit breaker, and callers are expected to fall back to the
// composed text on any error.
type Refiner struct {
	client  *Client
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
}

func NewRefiner(client *Client, timeout time.Duration) *Refiner {
	return &Refiner{
		client:  client,
		breaker: circuitbreaker.New(5, 30*time.Second),
		timeout: timeout,
	}
}

// Refine asks the model to polish the composed prompt.
func (r *Refiner) Refine(ctx context.Context, composed string, mode models.Mode) (string, error) {
	instruction := rewriteInstruction
	if mode == models.ModeCompress {
		instruction = compressInstruction
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var refined string
	err := r.breaker.Execute(func() error {
		resp, err := r.client.Chat(ctx, []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(instruction, composed)},
		})
		if err != nil {
			return err
		}
		refined = StripFences(strings.TrimSpace(resp.Content()))
		if refined == "" {
			return errors.New("empty completion")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			log.Printf("llm: circuit open, skipping refine")
			return "", domain.ErrProviderUnavailable
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.ErrProviderTimeout
		}
		return "", err
	}
	return refined, nil
}

// StripFences removes a wrapping markdown code fence from a completion.
func StripFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
	}
	if strings.HasSuffix(text, "```") {
		if i := strings.LastIndexByte(strings.TrimSuffix(text, "```"), '\n'); i >= 0 {
			text = text[:i]
		} else {
			text = strings.TrimSuffix(text, "```")
		}
	}
	return strings.TrimSpace(text)
}
