package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment represents a deployed contract record
type Deployment struct {
	Name    string         `json:"name" yaml:"name"`
	Address common.Address `json:"address" yaml:"address"`

	// Set by on-chain checks only
	Checked  bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
	HasCode  bool   `json:"hasCode,omitempty" yaml:"hasCode,omitempty"`
	CheckMsg string `json:"checkMessage,omitempty" yaml:"checkMessage,omitempty"`
}

// StepStatus represents the outcome of a deploy step
type StepStatus string

const (
	StepSucceeded StepStatus = "SUCCEEDED"
	StepFailed    StepStatus = "FAILED"
	StepSkipped   StepStatus = "SKIPPED"
)

// StepResult records what happened when a deploy step ran
type StepResult struct {
	Name     string
	Status   StepStatus
	Message  string
	Err      error
	Duration time.Duration
}
