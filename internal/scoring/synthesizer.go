package scoring

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"vode/interview/internal/conversation"
	"vode/interview/internal/llm"
	"vode/interview/internal/prompts"
	"vode/interview/internal/utils"
)

// Returned whenever the close-out reasoning call cannot produce a usable
// scorecard. Completion must never be blocked by a scoring failure.
const (
	DefaultScore    = 50
	DefaultFeedback = "The automated evaluation could not be completed for this interview. " +
		"A recruiter will review the session recording and share detailed feedback directly."
)

// Substituted when a round defines no success metrics.
var DefaultMetrics = []string{"Correctness", "Code Quality", "Communication", "Problem Solving"}

// Scorecard is the validated, bounded result of the close-out call.
type Scorecard struct {
	Score     int
	Feedback  string
	Defaulted bool
}

// DefaultScorecard is the safe result used when evaluation cannot run.
func DefaultScorecard() Scorecard {
	return Scorecard{Score: DefaultScore, Feedback: DefaultFeedback, Defaulted: true}
}

// Synthesizer turns the accumulated conversation into a bounded score and
// written feedback. It never returns an error: every failure mode
// collapses to the default scorecard.
type Synthesizer struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewSynthesizer(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Prompt builds the final scoring instruction from the round's success
// metrics, substituting the default rubric when none are defined.
func (s *Synthesizer) Prompt(metrics []string) (string, error) {
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}
	var headings strings.Builder
	for i, metric := range metrics {
		if i > 0 {
			headings.WriteString("\n")
		}
		headings.WriteString("- ")
		headings.WriteString(metric)
	}
	return s.prompts.BuildPrompt("scoring", map[string]string{
		"Metrics": headings.String(),
	})
}

// Evaluate issues the close-out reasoning call against the full
// transcript (which already ends with the scoring instruction) and
// normalizes the reply into a bounded scorecard.
func (s *Synthesizer) Evaluate(ctx context.Context, turns []conversation.Turn) Scorecard {
	raw, err := s.provider.GenerateChat(ctx, turns)
	if err != nil {
		s.logger.Warn("Scoring call failed, using default scorecard", zap.Error(err))
		return DefaultScorecard()
	}
	return parseScorecard(raw, s.logger)
}

// scorecardPayload matches the JSON object the scoring prompt demands.
// Score is a raw message so a missing field, a float, and a non-numeric
// value can be told apart from a plain integer.
type scorecardPayload struct {
	Score    json.RawMessage `json:"score"`
	Feedback string          `json:"feedback"`
}

func parseScorecard(raw string, logger *zap.Logger) Scorecard {
	span, err := utils.ExtractJSONObject(raw)
	if err != nil {
		logger.Warn("Scoring reply contained no JSON object, using default scorecard")
		return DefaultScorecard()
	}

	var payload scorecardPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		logger.Warn("Scoring reply was unparsable, using default scorecard", zap.Error(err))
		return DefaultScorecard()
	}
	if len(payload.Score) == 0 {
		logger.Warn("Scoring reply had no score field, using default scorecard")
		return DefaultScorecard()
	}

	var score int
	if err := json.Unmarshal(payload.Score, &score); err != nil {
		// Tolerate engines that emit the score as a quoted integer.
		var quoted string
		if qErr := json.Unmarshal(payload.Score, &quoted); qErr == nil {
			if parsed, convErr := parseIntStrict(quoted); convErr == nil {
				score = parsed
			} else {
				logger.Warn("Scoring reply score was not an integer, using default scorecard")
				return DefaultScorecard()
			}
		} else {
			logger.Warn("Scoring reply score was not an integer, using default scorecard")
			return DefaultScorecard()
		}
	}

	feedback := strings.TrimSpace(payload.Feedback)
	if feedback == "" {
		feedback = DefaultFeedback
	}

	return Scorecard{Score: clamp(score), Feedback: feedback}
}

func parseIntStrict(s string) (int, error) {
	var n int
	err := json.Unmarshal([]byte(strings.TrimSpace(s)), &n)
	return n, err
}

// clamp bounds a score to [0, 100].
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
