// Package assistant answers free-text scholarship questions through a
// generative-language model. It never fails: upstream problems degrade to a
// fixed apology.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"scholarhub/internal/cache"
)

const (
	NoAnswerReply    = "I apologize, but I couldn't generate a response. Please try rephrasing your question."
	UnavailableReply = "I apologize, but I'm having trouble processing your request right now. Please try again later."
)

const promptTemplate = `You are a helpful scholarship assistant. You can help users with:
1. Finding suitable scholarships based on their criteria
2. Explaining scholarship requirements
3. Providing guidance on application processes
4. Answering general questions about scholarships and education
5. Offering tips for successful scholarship applications

Please provide concise, accurate, and helpful responses. If you don't have specific information about a particular scholarship, you can provide general guidance or suggest where to find more information.

Context: [CONTEXT]
User Query: [QUERY]`

type Options struct {
	Cache    cache.Cache
	CacheTTL time.Duration
	// Timeout bounds a single upstream call; zero means no limit.
	Timeout time.Duration
}

type Service struct {
	gen     Generator
	cache   cache.Cache
	ttl     time.Duration
	timeout time.Duration
	log     *zap.Logger
}

// New builds the service. gen may be nil when no API key is configured, in
// which case every question gets UnavailableReply.
func New(gen Generator, log *zap.Logger, opts Options) *Service {
	c := opts.Cache
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{gen: gen, cache: c, ttl: opts.CacheTTL, timeout: opts.Timeout, log: log}
}

// BuildPrompt wraps the user's question in the assistant instructions.
func BuildPrompt(query, background string) string {
	r := strings.NewReplacer("[CONTEXT]", background, "[QUERY]", query)
	return r.Replace(promptTemplate)
}

// Ask returns the model's answer to message, or one of the fixed replies.
func (s *Service) Ask(ctx context.Context, message string) string {
	if s.gen == nil {
		s.log.Warn("assistant called without a configured generator")
		return UnavailableReply
	}

	key := cacheKey(message)
	if v, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("assistant cache read failed", zap.Error(err))
	} else if ok {
		return v
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(callCtx, BuildPrompt(message, ""))
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return NoAnswerReply
	case err != nil:
		s.log.Error("generative API call failed", zap.Error(err))
		return UnavailableReply
	case strings.TrimSpace(text) == "":
		return NoAnswerReply
	}

	if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
		s.log.Warn("assistant cache write failed", zap.Error(err))
	}
	return text
}

func cacheKey(message string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(message))))
	return "assistant:" + hex.EncodeToString(sum[:])
}
