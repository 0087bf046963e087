package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/samber/lo"
)

// StepFunc performs one deployment step against the shared state
type StepFunc func(ctx context.Context, state *DeployState) error

// Step is a named unit of deployment work
type Step struct {
	Name        string
	Description string
	// Requires lists contracts that must be in the registry before Run is called
	Requires []string
	Run      StepFunc
}

// DeployState is passed to every step of a run
type DeployState struct {
	Accounts *models.AccountSet
	Registry *Registry
	// Force redeploys contracts already in the registry and re-runs token
	// distribution against them
	Force bool

	fresh map[string]bool
}

// NewDeployState creates the state for a single run
func NewDeployState(accounts *models.AccountSet, registry *Registry, force bool) *DeployState {
	return &DeployState{
		Accounts: accounts,
		Registry: registry,
		Force:    force,
		fresh:    make(map[string]bool),
	}
}

// MarkDeployed records that name was deployed during this run
func (s *DeployState) MarkDeployed(name string) {
	s.fresh[name] = true
}

// DeployedThisRun reports whether name was deployed during this run
func (s *DeployState) DeployedThisRun(name string) bool {
	return s.fresh[name]
}

// SkipStepErr is returned by a step that had nothing to do
type SkipStepErr struct {
	Reason string
}

func (e SkipStepErr) Error() string {
	return e.Reason
}

func skipStep(format string, args ...any) error {
	return SkipStepErr{Reason: fmt.Sprintf(format, args...)}
}

// Pipeline runs deploy steps strictly in registration order
type Pipeline struct {
	steps []Step
	log   *slog.Logger
	sink  ProgressSink
}

// NewPipeline creates an empty pipeline
func NewPipeline(log *slog.Logger, sink ProgressSink) *Pipeline {
	if sink == nil {
		sink = NopProgress{}
	}
	return &Pipeline{log: log.With("component", "Pipeline"), sink: sink}
}

// Add appends a step
func (p *Pipeline) Add(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Steps returns the registered step names in order
func (p *Pipeline) Steps() []string {
	return lo.Map(p.steps, func(s Step, _ int) string { return s.Name })
}

// Run executes every step once. A failing step is recorded and the next one
// still runs; a cancelled context fails whatever is left.
func (p *Pipeline) Run(ctx context.Context, state *DeployState) []models.StepResult {
	results := make([]models.StepResult, 0, len(p.steps))
	for i, step := range p.steps {
		p.sink.OnProgress(ctx, ProgressEvent{
			Stage:   step.Name,
			Current: i + 1,
			Total:   len(p.steps),
			Message: step.Description,
			Spinner: true,
		})
		result := p.runStep(ctx, state, step)
		results = append(results, result)

		switch result.Status {
		case models.StepFailed:
			p.sink.Error(fmt.Sprintf("%s: %s", step.Name, result.Message))
		case models.StepSkipped:
			p.sink.Info(fmt.Sprintf("%s skipped: %s", step.Name, result.Message))
		default:
			p.sink.Info(fmt.Sprintf("%s done in %s", step.Name, result.Duration.Round(time.Millisecond)))
		}
	}
	return results
}

func (p *Pipeline) runStep(ctx context.Context, state *DeployState, step Step) models.StepResult {
	result := models.StepResult{Name: step.Name}
	log := p.log.With("step", step.Name)

	if err := ctx.Err(); err != nil {
		result.Status = models.StepFailed
		result.Err = err
		result.Message = err.Error()
		return result
	}

	if missing := missingContracts(state.Registry, step.Requires); len(missing) > 0 {
		err := &domain.MissingPrerequisiteErr{Step: step.Name, Contracts: missing}
		log.Error("Contract is not deployed!", "missing", missing)
		result.Status = models.StepSkipped
		result.Err = err
		result.Message = err.Error()
		return result
	}

	start := time.Now()
	err := p.invoke(ctx, state, step)
	result.Duration = time.Since(start)

	var skip SkipStepErr
	var missing *domain.MissingPrerequisiteErr
	switch {
	case err == nil:
		result.Status = models.StepSucceeded
	case errors.As(err, &missing):
		log.Error("Contract is not deployed!", "missing", missing.Contracts)
		result.Status = models.StepSkipped
		result.Err = err
		result.Message = err.Error()
	case errors.As(err, &skip):
		log.Info("Skipped", "reason", skip.Reason)
		result.Status = models.StepSkipped
		result.Message = skip.Reason
	default:
		log.Error("Step failed", "error", err)
		result.Status = models.StepFailed
		result.Err = err
		result.Message = err.Error()
	}
	return result
}

// invoke isolates a panicking step so later steps and the final save still run
func (p *Pipeline) invoke(ctx context.Context, state *DeployState, step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step %s panicked: %v", step.Name, r)
		}
	}()
	return step.Run(ctx, state)
}

func missingContracts(registry *Registry, names []string) []string {
	return lo.Filter(names, func(name string, _ int) bool {
		_, ok := registry.Contract(name)
		return !ok
	})
}
