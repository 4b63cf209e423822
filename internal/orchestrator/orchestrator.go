package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/conversation"
	"vode/interview/internal/llm"
	"vode/interview/internal/prompts"
	"vode/interview/internal/speech"
)

// Substituted when the reasoning engine fails mid-interview. The session
// keeps going; the candidate just gets a holding reply.
const fallbackCoachingMessage = "I'm sorry, I'm having a little trouble gathering my thoughts right now. " +
	"Please keep going: talk me through your current approach, what trade-offs you're weighing, " +
	"and any edge cases you're thinking about, and we'll pick it up from there."

const (
	emptyCodePlaceholder       = "(No code provided)"
	emptyTranscriptPlaceholder = "(No statement provided)"
)

// SeedData is everything the framing prompt needs to anchor a session.
type SeedData struct {
	RoleTitle        string
	RoundNumber      int
	TotalRounds      int
	Difficulty       string
	Topics           string
	TimeLimitMinutes int
	QuestionTitle    string
	Statement        string
}

// CoachResult is one coaching exchange. Text is always non-empty on a nil
// error: either the engine's reply or the fallback message. Audio may be
// empty when synthesis failed; that alone never fails the exchange.
type CoachResult struct {
	Text     string
	Audio    []byte
	Fallback bool
	SpeechOK bool
}

// Orchestrator owns one conversation session per active interview and
// mediates every reasoning and synthesis call. Reasoning failures and
// synthesis failures are isolated from each other so a transient outage
// of either dependency degrades the exchange instead of aborting it.
type Orchestrator struct {
	provider    llm.Provider
	synthesizer speech.Synthesizer
	prompts     prompts.PromptProvider
	sessions    *conversation.Store
	logger      *zap.Logger
}

func New(provider llm.Provider, synthesizer speech.Synthesizer, promptManager prompts.PromptProvider, sessions *conversation.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		provider:    provider,
		synthesizer: synthesizer,
		prompts:     promptManager,
		sessions:    sessions,
		logger:      logger,
	}
}

// Initialize installs a fresh conversation session for the interview,
// seeded with the framing prompt and the model acknowledgement. Any
// previous session for the same interview is replaced.
func (o *Orchestrator) Initialize(interviewID uint, seed SeedData) error {
	framing, err := o.prompts.BuildPrompt("framing", map[string]string{
		"RoleTitle":     seed.RoleTitle,
		"RoundNumber":   strconv.Itoa(seed.RoundNumber),
		"TotalRounds":   strconv.Itoa(seed.TotalRounds),
		"Difficulty":    seed.Difficulty,
		"Topics":        seed.Topics,
		"TimeLimit":     strconv.Itoa(seed.TimeLimitMinutes),
		"QuestionTitle": seed.QuestionTitle,
		"Statement":     seed.Statement,
	})
	if err != nil {
		return fmt.Errorf("failed to build framing prompt: %w", err)
	}

	ack, err := o.prompts.BuildPrompt("acknowledgement", map[string]string{
		"QuestionTitle": seed.QuestionTitle,
	})
	if err != nil {
		return fmt.Errorf("failed to build acknowledgement prompt: %w", err)
	}

	o.sessions.Put(interviewID, conversation.NewContext(framing, ack))
	o.logger.Info("Conversation session initialized",
		zap.Uint("interview_id", interviewID),
		zap.String("question", seed.QuestionTitle))
	return nil
}

// Respond runs one coaching exchange. It errors only before any
// dependency call: empty input, or no live session for the interview.
// Once the user turn is appended, a reasoning failure substitutes the
// fallback message and a synthesis failure leaves the audio empty; in
// both cases the exchange is reported successful.
func (o *Orchestrator) Respond(ctx context.Context, interviewID uint, code, transcript string) (*CoachResult, error) {
	if strings.TrimSpace(code) == "" && strings.TrimSpace(transcript) == "" {
		return nil, apperrors.ErrEmptyInput
	}

	session, ok := o.sessions.Get(interviewID)
	if !ok {
		return nil, fmt.Errorf("no active session for interview %d: %w", interviewID, apperrors.ErrNotFound)
	}

	if strings.TrimSpace(code) == "" {
		code = emptyCodePlaceholder
	}
	if strings.TrimSpace(transcript) == "" {
		transcript = emptyTranscriptPlaceholder
	}
	analysis, err := o.prompts.BuildPrompt("analysis", map[string]string{
		"Code":       code,
		"Transcript": transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	result := &CoachResult{}

	// One critical section per interview: updates for the same interview
	// land in strict arrival order, and the model turn recorded is the
	// text actually returned to the candidate.
	session.Do(func(c *conversation.Context) {
		c.AppendUser(analysis)

		text, genErr := o.provider.GenerateChat(ctx, c.Turns())
		if genErr != nil {
			o.logger.Warn("Reasoning call failed, substituting fallback",
				zap.Uint("interview_id", interviewID),
				zap.Error(genErr))
			text = fallbackCoachingMessage
			result.Fallback = true
		}
		result.Text = text
		c.AppendModel(text)
	})

	audio, synthErr := o.synthesizer.Synthesize(ctx, result.Text)
	if synthErr != nil {
		o.logger.Warn("Speech synthesis failed, returning text only",
			zap.Uint("interview_id", interviewID),
			zap.Error(synthErr))
	} else {
		result.Audio = audio
		result.SpeechOK = true
	}

	return result, nil
}

// FinalTurns appends the scoring instruction as the last user turn and
// returns a snapshot of the full transcript. Returns false when no
// session is live for the interview.
func (o *Orchestrator) FinalTurns(interviewID uint, scoringPrompt string) ([]conversation.Turn, bool) {
	session, ok := o.sessions.Get(interviewID)
	if !ok {
		return nil, false
	}

	var turns []conversation.Turn
	session.Do(func(c *conversation.Context) {
		c.AppendUser(scoringPrompt)
		turns = c.Turns()
	})
	return turns, true
}

// Farewell returns the end-of-interview message with best-effort audio.
func (o *Orchestrator) Farewell(ctx context.Context) (string, []byte) {
	text, err := o.prompts.BuildPrompt("farewell", nil)
	if err != nil {
		o.logger.Error("Failed to build farewell message", zap.Error(err))
		return "", nil
	}
	text = strings.TrimSpace(text)

	audio, err := o.synthesizer.Synthesize(ctx, text)
	if err != nil {
		o.logger.Warn("Farewell synthesis failed", zap.Error(err))
		return text, nil
	}
	return text, audio
}

// Discard destroys the interview's session. Called on completion.
func (o *Orchestrator) Discard(interviewID uint) {
	o.sessions.Discard(interviewID)
}

// HasSession reports whether the interview has a live session.
func (o *Orchestrator) HasSession(interviewID uint) bool {
	_, ok := o.sessions.Get(interviewID)
	return ok
}
