// Seeds the interview database with demo roles, rounds, candidates and
// pending interviews for local development.
package main

import (
	"fmt"
	"os"

	"vode/interview/internal/models"
	"vode/interview/internal/store"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

type roundTemplate struct {
	name           string
	description    string
	difficulty     string
	topics         string
	successMetrics string
	timeLimit      int
}

var roundTemplates = []roundTemplate{
	{"Technical Screening", "Initial coding assessment", models.DifficultyEasy, "Arrays, Strings", "Clean code, Problem solving", 60},
	{"Algorithms Round", "Data structures and algorithms", models.DifficultyMedium, "Trees, Graphs, Dynamic Programming", "Optimal solutions, Time complexity", 90},
	{"System Design", "Architecture and scalability", models.DifficultyHard, "System Design, Distributed Systems", "Scalability, Trade-offs", 120},
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := store.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	catalog := &store.CatalogRepository{DB: db}
	interviews := &store.InterviewRepository{DB: db}

	roles := []*models.Role{
		{Title: "Backend Engineer", Description: "Build scalable server-side systems", NumRounds: 1},
		{Title: "Frontend Engineer", Description: "Create beautiful user interfaces", NumRounds: 2},
		{Title: "Full Stack Engineer", Description: "End-to-end development", NumRounds: 3},
	}

	rounds := make(map[uint][]*models.Round)
	for _, role := range roles {
		if err := catalog.CreateRole(role); err != nil {
			logger.Fatal("Failed to create role", zap.String("title", role.Title), zap.Error(err))
		}
		logger.Info("Created role", zap.String("title", role.Title), zap.Int("rounds", role.NumRounds))

		for number := 1; number <= role.NumRounds; number++ {
			template := roundTemplates[len(roundTemplates)-1]
			if number <= len(roundTemplates) {
				template = roundTemplates[number-1]
			}
			round := &models.Round{
				RoleID:           role.ID,
				RoundNumber:      number,
				Name:             template.name,
				Description:      template.description,
				Difficulty:       template.difficulty,
				Topics:           template.topics,
				SuccessMetrics:   template.successMetrics,
				TimeLimitMinutes: template.timeLimit,
			}
			if err := catalog.CreateRound(round); err != nil {
				logger.Fatal("Failed to create round", zap.String("role", role.Title), zap.Int("round", number), zap.Error(err))
			}
			rounds[role.ID] = append(rounds[role.ID], round)
		}
	}

	candidates := []*models.Candidate{
		{Name: "Alice Anderson", Email: "candidate1@example.com"},
		{Name: "Bob Brown", Email: "candidate2@example.com"},
		{Name: "Charlie Chen", Email: "candidate3@example.com"},
	}
	for _, candidate := range candidates {
		if err := catalog.CreateCandidate(candidate); err != nil {
			logger.Fatal("Failed to create candidate", zap.String("email", candidate.Email), zap.Error(err))
		}
		logger.Info("Created candidate", zap.String("name", candidate.Name))
	}

	// Each candidate gets a pending first-round interview: the first
	// candidate for all three roles, the second for two, the third for one.
	interviewCount := 0
	for i, candidate := range candidates {
		for _, role := range roles[:len(roles)-i] {
			firstRound := rounds[role.ID][0]
			interview := &models.Interview{
				CandidateID: candidate.ID,
				RoundID:     firstRound.ID,
			}
			if err := interviews.CreateInterview(interview); err != nil {
				logger.Fatal("Failed to create interview",
					zap.String("candidate", candidate.Name),
					zap.String("role", role.Title),
					zap.Error(err))
			}
			interviewCount++
		}
	}

	logger.Info("Database seeded",
		zap.Int("roles", len(roles)),
		zap.Int("candidates", len(candidates)),
		zap.Int("interviews", interviewCount))
}
