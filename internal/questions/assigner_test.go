package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/conversation"
	"vode/interview/internal/models"
	"vode/interview/internal/store"
	"vode/interview/internal/testhelpers"
)

type mockProvider struct {
	generateOnceFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockProvider) GenerateChat(ctx context.Context, turns []conversation.Turn) (string, error) {
	return "", nil
}

func (m *mockProvider) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	if m.generateOnceFn == nil {
		return validGenerationReply("Two Sum"), nil
	}
	return m.generateOnceFn(ctx, prompt)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildPromptFn func(mode string, data map[string]string) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	if m.buildPromptFn == nil {
		return "generation prompt", nil
	}
	return m.buildPromptFn(mode, data)
}

func (m *mockPromptManager) GetTemplates() map[string]string {
	return map[string]string{"generation": "mock"}
}

func validGenerationReply(title string) string {
	return fmt.Sprintf(`{"title": %q, "statement": "Given an array of integers nums and a target...", "test_cases": [{"input": {"nums": [2, 7, 11, 15], "target": 9}, "output": [0, 1], "explanation": "nums[0] + nums[1] == 9"}]}`, title)
}

type fixture struct {
	assigner  *Assigner
	questions *store.QuestionRepository
	round     *models.Round
	interview *models.Interview
}

func setup(t *testing.T, provider *mockProvider, pm *mockPromptManager) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)

	questionRepo := &store.QuestionRepository{DB: db}
	interviewRepo := &store.InterviewRepository{DB: db}

	round := &models.Round{
		RoleID:           1,
		RoundNumber:      1,
		Name:             "Technical Screening",
		Difficulty:       models.DifficultyMedium,
		Topics:           "Arrays, Strings",
		TimeLimitMinutes: 60,
	}
	if err := db.Create(round).Error; err != nil {
		t.Fatalf("failed to create round: %v", err)
	}

	interview := &models.Interview{CandidateID: 1, RoundID: round.ID}
	if err := interviewRepo.CreateInterview(interview); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}

	return &fixture{
		assigner:  NewAssigner(provider, pm, questionRepo, interviewRepo, DefaultRecencyWindow, zap.NewNop()),
		questions: questionRepo,
		round:     round,
		interview: interview,
	}
}

func TestAssignGeneratesAndPersistsQuestion(t *testing.T) {
	f := setup(t, &mockProvider{}, &mockPromptManager{})

	question, err := f.assigner.Assign(context.Background(), f.interview, f.round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.Title != "Two Sum" {
		t.Errorf("unexpected title: %q", question.Title)
	}
	if question.RoundID != f.round.ID {
		t.Errorf("expected question bound to round %d, got %d", f.round.ID, question.RoundID)
	}
	if len(question.TestCases) != 1 {
		t.Fatalf("expected 1 test case, got %d", len(question.TestCases))
	}

	// The assignment must be persisted on the interview row.
	stored, err := (&store.InterviewRepository{DB: f.questions.DB}).GetInterview(f.interview.ID)
	if err != nil {
		t.Fatalf("failed to reload interview: %v", err)
	}
	if stored.QuestionID == nil || *stored.QuestionID != question.ID {
		t.Errorf("expected interview to reference question %d, got %v", question.ID, stored.QuestionID)
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	calls := 0
	provider := &mockProvider{
		generateOnceFn: func(context.Context, string) (string, error) {
			calls++
			return validGenerationReply("Two Sum"), nil
		},
	}
	f := setup(t, provider, &mockPromptManager{})

	first, err := f.assigner.Assign(context.Background(), f.interview, f.round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-entering must return the stored question without regenerating.
	reloaded, err := (&store.InterviewRepository{DB: f.questions.DB}).GetInterview(f.interview.ID)
	if err != nil {
		t.Fatalf("failed to reload interview: %v", err)
	}
	second, err := f.assigner.Assign(context.Background(), reloaded, f.round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same question, got %d then %d", first.ID, second.ID)
	}
	if calls != 1 {
		t.Errorf("expected a single generation call, got %d", calls)
	}
}

func TestAssignParsesReplyWrappedInProse(t *testing.T) {
	provider := &mockProvider{
		generateOnceFn: func(context.Context, string) (string, error) {
			return "Here you go: " + validGenerationReply("Valid Parentheses") + " enjoy", nil
		},
	}
	f := setup(t, provider, &mockPromptManager{})

	question, err := f.assigner.Assign(context.Background(), f.interview, f.round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.Title != "Valid Parentheses" {
		t.Errorf("unexpected title: %q", question.Title)
	}
}

func TestAssignReusesExistingTitle(t *testing.T) {
	f := setup(t, &mockProvider{}, &mockPromptManager{})

	existing := &models.Question{
		Title:     "Two Sum",
		Statement: "Original statement",
		TestCases: models.TestCaseList{{Input: map[string]interface{}{"nums": []interface{}{1.0}}, Output: 1.0}},
		RoundID:   f.round.ID,
	}
	if err := f.questions.CreateQuestion(existing); err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}

	question, err := f.assigner.Assign(context.Background(), f.interview, f.round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.ID != existing.ID {
		t.Errorf("expected existing question %d to be reused, got %d", existing.ID, question.ID)
	}
	if question.Statement != "Original statement" {
		t.Errorf("expected stored statement to win, got %q", question.Statement)
	}
}

func TestAssignExcludesRecentTitles(t *testing.T) {
	var captured map[string]string
	pm := &mockPromptManager{
		buildPromptFn: func(mode string, data map[string]string) (string, error) {
			captured = data
			return "generation prompt", nil
		},
	}
	provider := &mockProvider{
		generateOnceFn: func(context.Context, string) (string, error) {
			return validGenerationReply("Fresh Question"), nil
		},
	}
	f := setup(t, provider, pm)

	for _, title := range []string{"Two Sum", "Valid Parentheses"} {
		q := &models.Question{
			Title:     title,
			Statement: "s",
			TestCases: models.TestCaseList{{Input: map[string]interface{}{"x": 1.0}, Output: 1.0}},
			RoundID:   f.round.ID,
		}
		if err := f.questions.CreateQuestion(q); err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}

	if _, err := f.assigner.Assign(context.Background(), f.interview, f.round); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	excluded := captured["ExcludedTitles"]
	if !strings.Contains(excluded, "Two Sum") || !strings.Contains(excluded, "Valid Parentheses") {
		t.Errorf("expected recent titles in exclusion list, got %q", excluded)
	}
	if captured["Difficulty"] != "medium" {
		t.Errorf("expected normalized difficulty, got %q", captured["Difficulty"])
	}
}

func TestAssignRejectsMalformedReplies(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no JSON", "I cannot generate a question right now."},
		{"missing title", `{"statement": "s", "test_cases": [{"input": {"x": 1}, "output": 1}]}`},
		{"missing statement", `{"title": "T", "test_cases": [{"input": {"x": 1}, "output": 1}]}`},
		{"no test cases", `{"title": "T", "statement": "s", "test_cases": []}`},
		{"test case without input", `{"title": "T", "statement": "s", "test_cases": [{"output": 1}]}`},
		{"test case without output", `{"title": "T", "statement": "s", "test_cases": [{"input": {"x": 1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{
				generateOnceFn: func(context.Context, string) (string, error) {
					return tt.raw, nil
				},
			}
			f := setup(t, provider, &mockPromptManager{})

			_, err := f.assigner.Assign(context.Background(), f.interview, f.round)
			if !errors.Is(err, apperrors.ErrInvalidQuestionFormat) {
				t.Fatalf("expected ErrInvalidQuestionFormat, got %v", err)
			}
			// A failed generation must not leave a partial assignment.
			if f.interview.QuestionID != nil {
				t.Errorf("expected no question assigned after failure")
			}
		})
	}
}

func TestAssignPropagatesGenerationFailure(t *testing.T) {
	provider := &mockProvider{
		generateOnceFn: func(context.Context, string) (string, error) {
			return "", errors.New("engine down")
		},
	}
	f := setup(t, provider, &mockPromptManager{})

	if _, err := f.assigner.Assign(context.Background(), f.interview, f.round); err == nil {
		t.Fatalf("expected error when generation call fails")
	}
}
