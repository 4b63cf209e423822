package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/models"
	"vode/interview/internal/orchestrator"
	"vode/interview/internal/questions"
	"vode/interview/internal/scoring"
	"vode/interview/internal/store"
)

// EnterResult is everything the interview page needs to render.
type EnterResult struct {
	Interview *models.Interview
	Question  *models.Question
	Round     *models.Round
	Role      *models.Role
}

// CompleteResult is the final scorecard plus the farewell audio.
type CompleteResult struct {
	Score    int
	Feedback string
	Audio    []byte
}

// Service enforces the interview lifecycle: created -> started ->
// completed, with no transition out of completed. Every operation
// authorizes the requester against the interview's candidate first, and
// a rejected call never mutates state.
type Service struct {
	interviews *store.InterviewRepository
	catalog    *store.CatalogRepository
	assigner   *questions.Assigner
	coach      *orchestrator.Orchestrator
	scorer     *scoring.Synthesizer
	logger     *zap.Logger
}

func NewService(interviews *store.InterviewRepository, catalog *store.CatalogRepository, assigner *questions.Assigner, coach *orchestrator.Orchestrator, scorer *scoring.Synthesizer, logger *zap.Logger) *Service {
	return &Service{
		interviews: interviews,
		catalog:    catalog,
		assigner:   assigner,
		coach:      coach,
		scorer:     scorer,
		logger:     logger,
	}
}

func authorize(interview *models.Interview, requesterID uint) error {
	if interview.CandidateID != requesterID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// Start marks the interview as begun, exactly once. A second start
// attempt is refused, not silently accepted.
func (s *Service) Start(interviewID, requesterID uint) (*models.Interview, error) {
	interview, err := s.interviews.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(interview, requesterID); err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, apperrors.ErrAlreadyCompleted
	}
	if interview.Started() {
		return nil, apperrors.ErrAlreadyStarted
	}

	now := time.Now()
	interview.StartedAt = &now
	if err := s.interviews.SaveInterview(interview); err != nil {
		return nil, err
	}

	s.logger.Info("Interview started",
		zap.Uint("interview_id", interview.ID),
		zap.Uint("candidate_id", requesterID))
	return interview, nil
}

// Enter loads the interview page data. The question is assigned on first
// entry and reused afterwards; the coaching session is re-seeded every
// time, so re-entering resets in-memory context while persisted state is
// untouched.
func (s *Service) Enter(ctx context.Context, interviewID, requesterID uint) (*EnterResult, error) {
	interview, err := s.interviews.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(interview, requesterID); err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, apperrors.ErrAlreadyCompleted
	}

	round := &interview.Round
	role, err := s.interviews.GetRole(round.RoleID)
	if err != nil {
		return nil, err
	}

	question, err := s.assigner.Assign(ctx, interview, round)
	if err != nil {
		return nil, err
	}

	seed := orchestrator.SeedData{
		RoleTitle:        role.Title,
		RoundNumber:      round.RoundNumber,
		TotalRounds:      role.NumRounds,
		Difficulty:       round.Difficulty,
		Topics:           round.Topics,
		TimeLimitMinutes: round.TimeLimitMinutes,
		QuestionTitle:    question.Title,
		Statement:        question.Statement,
	}
	if err := s.coach.Initialize(interview.ID, seed); err != nil {
		return nil, err
	}

	return &EnterResult{
		Interview: interview,
		Question:  question,
		Round:     round,
		Role:      role,
	}, nil
}

// Respond forwards one code/voice update to the coaching orchestrator.
// Coaching is only accepted between start and completion.
func (s *Service) Respond(ctx context.Context, interviewID, requesterID uint, code, transcript string) (*orchestrator.CoachResult, error) {
	interview, err := s.interviews.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(interview, requesterID); err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, apperrors.ErrAlreadyCompleted
	}
	if !interview.Started() {
		return nil, apperrors.ErrNotStarted
	}

	return s.coach.Respond(ctx, interviewID, code, transcript)
}

// Complete closes out the interview: one final scoring call against the
// accumulated conversation, then the record becomes immutable. A scoring
// failure of any kind still completes the interview with the default
// scorecard.
func (s *Service) Complete(ctx context.Context, interviewID, requesterID uint, screenVideoURL, candidateVideoURL string) (*CompleteResult, error) {
	interview, err := s.interviews.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(interview, requesterID); err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, apperrors.ErrAlreadyCompleted
	}
	if !interview.Started() {
		return nil, apperrors.ErrNotStarted
	}

	card := s.evaluate(ctx, interview)

	// Guard against double-scoring: only the first write past the default
	// zero sticks.
	if interview.Score == 0 {
		interview.Score = card.Score
	}
	interview.Notes = card.Feedback
	if screenVideoURL != "" {
		interview.ScreenVideoURL = screenVideoURL
	}
	if candidateVideoURL != "" {
		interview.CandidateVideoURL = candidateVideoURL
	}
	now := time.Now()
	interview.CompletedAt = &now

	if err := s.interviews.SaveInterview(interview); err != nil {
		return nil, err
	}

	_, audio := s.coach.Farewell(ctx)
	s.coach.Discard(interview.ID)

	s.logger.Info("Interview completed",
		zap.Uint("interview_id", interview.ID),
		zap.Int("score", interview.Score),
		zap.Bool("score_defaulted", card.Defaulted))

	return &CompleteResult{
		Score:    interview.Score,
		Feedback: interview.Notes,
		Audio:    audio,
	}, nil
}

// evaluate runs the close-out scoring call. It cannot fail: a missing
// session, prompt error, engine failure or malformed reply all collapse
// to the default scorecard.
func (s *Service) evaluate(ctx context.Context, interview *models.Interview) scoring.Scorecard {
	prompt, err := s.scorer.Prompt(interview.Round.SuccessMetricsList())
	if err != nil {
		s.logger.Error("Failed to build scoring prompt, using default scorecard",
			zap.Uint("interview_id", interview.ID),
			zap.Error(err))
		return scoring.DefaultScorecard()
	}

	turns, ok := s.coach.FinalTurns(interview.ID, prompt)
	if !ok {
		s.logger.Warn("No live conversation session at completion, using default scorecard",
			zap.Uint("interview_id", interview.ID))
		return scoring.DefaultScorecard()
	}

	return s.scorer.Evaluate(ctx, turns)
}
