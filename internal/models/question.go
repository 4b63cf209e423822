package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// TestCase is a single example the question is checked against.
type TestCase struct {
	Input       map[string]interface{} `json:"input"`
	Output      interface{}            `json:"output"`
	Explanation string                 `json:"explanation"`
}

// TestCaseList serializes test cases as a JSON text column so the same
// schema works on postgres and the sqlite test databases.
type TestCaseList []TestCase

func (l TestCaseList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *TestCaseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into TestCaseList", value)
	}
}

// Question is a reusable prompt. Title is unique system-wide so the
// generator cannot create duplicates of known classics.
type Question struct {
	gorm.Model
	Title     string       `gorm:"uniqueIndex;not null" json:"title"`
	Statement string       `gorm:"type:text;not null" json:"statement"`
	TestCases TestCaseList `gorm:"type:text" json:"test_cases"`
	RoundID   uint         `gorm:"not null;index" json:"round_id"`
}
