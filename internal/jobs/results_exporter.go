package jobs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vode/interview/internal/models"
	"vode/interview/internal/store"

	"github.com/robfig/cron/v3"
)

// ResultsExporterJob periodically dumps completed interview scorecards
// to JSONL files for the analytics pipeline.
type ResultsExporterJob struct {
	interviews *store.InterviewRepository
	config     *ExporterConfig
	cron       *cron.Cron

	mu         sync.Mutex
	lastExport time.Time
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

// scorecardRecord is one JSONL line in an export file
type scorecardRecord struct {
	InterviewID   uint       `json:"interview_id"`
	CandidateID   uint       `json:"candidate_id"`
	RoundID       uint       `json:"round_id"`
	QuestionTitle string     `json:"question_title,omitempty"`
	Score         int        `json:"score"`
	Feedback      string     `json:"feedback"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// NewResultsExporterJob creates a new exporter job
func NewResultsExporterJob(interviews *store.InterviewRepository, config *ExporterConfig) *ResultsExporterJob {
	return &ResultsExporterJob{
		interviews: interviews,
		config:     config,
		cron:       cron.New(),
	}
}

// Start begins the scheduled export job
func (rej *ResultsExporterJob) Start() error {
	if !rej.config.ExportEnabled {
		log.Println("Results export is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting results exporter with schedule: %s", rej.config.Schedule)

	_, err := rej.cron.AddFunc(rej.config.Schedule, func() {
		if err := rej.RunExport(); err != nil {
			log.Printf("Export job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	rej.cron.Start()
	log.Println("Results exporter started successfully")

	return nil
}

// Stop stops the scheduled export job
func (rej *ResultsExporterJob) Stop() {
	if rej.cron != nil {
		rej.cron.Stop()
		log.Println("Results exporter stopped")
	}
}

// RunExport performs a single export run. Each run picks up interviews
// completed since the previous run; the first run picks up everything.
func (rej *ResultsExporterJob) RunExport() error {
	rej.mu.Lock()
	since := rej.lastExport
	runStarted := time.Now()
	rej.mu.Unlock()

	log.Println("Starting results export job...")

	completed, err := rej.interviews.CompletedSince(since)
	if err != nil {
		return fmt.Errorf("failed to load completed interviews: %w", err)
	}

	if len(completed) == 0 {
		log.Println("No newly completed interviews found")
		rej.markExported(runStarted)
		return nil
	}

	log.Printf("Found %d newly completed interviews", len(completed))

	jsonlData, err := exportToJSONL(completed)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	// Create export directory if it doesn't exist
	if err := os.MkdirAll(rej.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	// Save to file with timestamp
	timestamp := runStarted.Format("20060102_150405")
	filename := fmt.Sprintf("results_export_%s.jsonl", timestamp)
	exportPath := filepath.Join(rej.config.ExportDir, filename)

	if err := os.WriteFile(exportPath, jsonlData, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	log.Printf("Exported %d interview scorecards to %s", len(completed), exportPath)

	rej.markExported(runStarted)
	return nil
}

// RunManual runs an export manually (for testing or on-demand exports)
func (rej *ResultsExporterJob) RunManual() error {
	return rej.RunExport()
}

func (rej *ResultsExporterJob) markExported(runStarted time.Time) {
	rej.mu.Lock()
	rej.lastExport = runStarted
	rej.mu.Unlock()
}

func exportToJSONL(interviews []models.Interview) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)

	for i := range interviews {
		interview := &interviews[i]
		record := scorecardRecord{
			InterviewID: interview.ID,
			CandidateID: interview.CandidateID,
			RoundID:     interview.RoundID,
			Score:       interview.Score,
			Feedback:    interview.Notes,
			StartedAt:   interview.StartedAt,
			CompletedAt: interview.CompletedAt,
		}
		if interview.Question != nil {
			record.QuestionTitle = interview.Question.Title
		}
		if err := encoder.Encode(record); err != nil {
			return nil, fmt.Errorf("failed to encode interview %d: %w", interview.ID, err)
		}
	}

	return buf.Bytes(), nil
}
