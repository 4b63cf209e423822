package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/llm"
	"vode/interview/internal/models"
	"vode/interview/internal/prompts"
	"vode/interview/internal/store"
	"vode/interview/internal/utils"
)

// DefaultRecencyWindow is how many of a round's most recent questions are
// excluded when generating a new one, to avoid repeats.
const DefaultRecencyWindow = 5

// Assigner selects or generates the question for an interview and
// persists the assignment exactly once.
type Assigner struct {
	provider      llm.Provider
	prompts       prompts.PromptProvider
	questions     *store.QuestionRepository
	interviews    *store.InterviewRepository
	recencyWindow int
	logger        *zap.Logger
}

func NewAssigner(provider llm.Provider, promptManager prompts.PromptProvider, questions *store.QuestionRepository, interviews *store.InterviewRepository, recencyWindow int, logger *zap.Logger) *Assigner {
	if recencyWindow <= 0 {
		recencyWindow = DefaultRecencyWindow
	}
	return &Assigner{
		provider:      provider,
		prompts:       promptManager,
		questions:     questions,
		interviews:    interviews,
		recencyWindow: recencyWindow,
		logger:        logger,
	}
}

// generatedQuestion matches the JSON object the generation prompt demands.
type generatedQuestion struct {
	Title     string              `json:"title"`
	Statement string              `json:"statement"`
	TestCases models.TestCaseList `json:"test_cases"`
}

// Assign returns the interview's question, generating and persisting one
// on first access. Subsequent calls return the stored question unchanged.
func (a *Assigner) Assign(ctx context.Context, interview *models.Interview, round *models.Round) (*models.Question, error) {
	if interview.QuestionID != nil {
		if interview.Question != nil {
			return interview.Question, nil
		}
		question, err := a.questions.GetQuestion(*interview.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assigned question: %w", err)
		}
		interview.Question = question
		return question, nil
	}

	excluded, err := a.questions.RecentQuestionTitles(round.ID, a.recencyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent question titles: %w", err)
	}

	generated, err := a.generate(ctx, round, excluded)
	if err != nil {
		return nil, err
	}

	question, err := a.persist(generated, round)
	if err != nil {
		return nil, err
	}

	interview.QuestionID = &question.ID
	interview.Question = question
	if err := a.interviews.SaveInterview(interview); err != nil {
		return nil, fmt.Errorf("failed to attach question to interview: %w", err)
	}

	a.logger.Info("Question assigned",
		zap.Uint("interview_id", interview.ID),
		zap.Uint("question_id", question.ID),
		zap.String("title", question.Title))
	return question, nil
}

func (a *Assigner) generate(ctx context.Context, round *models.Round, excluded []string) (*generatedQuestion, error) {
	exclusion := "(none)"
	if len(excluded) > 0 {
		exclusion = strings.Join(excluded, "; ")
	}
	topics := round.Topics
	if strings.TrimSpace(topics) == "" {
		topics = "arrays, strings, hash maps"
	}

	prompt, err := a.prompts.BuildPrompt("generation", map[string]string{
		"Difficulty":     utils.NormalizeDifficulty(round.Difficulty),
		"Topics":         topics,
		"ExcludedTitles": exclusion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build generation prompt: %w", err)
	}

	raw, err := a.provider.GenerateOnce(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("question generation call failed: %w", err)
	}

	return parseGenerated(raw)
}

// parseGenerated locates the JSON payload inside the engine's free-text
// reply and validates the required fields.
func parseGenerated(raw string) (*generatedQuestion, error) {
	span, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: no JSON object in generation response", apperrors.ErrInvalidQuestionFormat)
	}

	var generated generatedQuestion
	if err := json.Unmarshal([]byte(span), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidQuestionFormat, err)
	}

	if strings.TrimSpace(generated.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", apperrors.ErrInvalidQuestionFormat)
	}
	if strings.TrimSpace(generated.Statement) == "" {
		return nil, fmt.Errorf("%w: missing statement", apperrors.ErrInvalidQuestionFormat)
	}
	if len(generated.TestCases) == 0 {
		return nil, fmt.Errorf("%w: no test cases", apperrors.ErrInvalidQuestionFormat)
	}
	for i, tc := range generated.TestCases {
		if len(tc.Input) == 0 {
			return nil, fmt.Errorf("%w: test case %d has no input", apperrors.ErrInvalidQuestionFormat, i)
		}
		if tc.Output == nil {
			return nil, fmt.Errorf("%w: test case %d has no expected output", apperrors.ErrInvalidQuestionFormat, i)
		}
	}

	return &generated, nil
}

// persist stores the generated question, reusing an existing record when
// the engine regenerated a known title despite the exclusion list.
func (a *Assigner) persist(generated *generatedQuestion, round *models.Round) (*models.Question, error) {
	existing, err := a.questions.FirstQuestionByTitle(generated.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to look up question by title: %w", err)
	}

	if existing != nil {
		if existing.RoundID != round.ID {
			if err := a.questions.UpdateQuestionRound(existing, round.ID); err != nil {
				return nil, fmt.Errorf("failed to attach question to round: %w", err)
			}
		}
		return existing, nil
	}

	question := &models.Question{
		Title:     generated.Title,
		Statement: generated.Statement,
		TestCases: generated.TestCases,
		RoundID:   round.ID,
	}
	if err := a.questions.CreateQuestion(question); err != nil {
		return nil, fmt.Errorf("failed to store generated question: %w", err)
	}
	return question, nil
}
