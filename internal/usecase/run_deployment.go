package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/samber/lo"
)

// RunDeploymentParams contains parameters for a deployment run
type RunDeploymentParams struct {
	// Steps selects the steps to run by name; empty means DefaultStepNames
	Steps []string
	Force bool
}

// RunDeploymentResult contains the outcome of a deployment run
type RunDeploymentResult struct {
	Network         string
	DeploymentsFile string
	Accounts        *models.AccountSet
	Steps           []models.StepResult
	Deployments     []*models.Deployment
}

// Failed returns the steps that did not succeed or skip cleanly
func (r *RunDeploymentResult) Failed() []models.StepResult {
	return lo.Filter(r.Steps, func(s models.StepResult, _ int) bool {
		return s.Status == models.StepFailed || s.Err != nil
	})
}

// RunDeployment attaches, loads, runs the deploy steps and saves
type RunDeployment struct {
	config   *config.RuntimeConfig
	provider ContractProvider
	store    DeploymentStore
	steps    *DeploySteps
	log      *slog.Logger
	sink     ProgressSink
}

// NewRunDeployment creates a new RunDeployment use case
func NewRunDeployment(
	cfg *config.RuntimeConfig,
	provider ContractProvider,
	store DeploymentStore,
	steps *DeploySteps,
	log *slog.Logger,
	sink ProgressSink,
) *RunDeployment {
	return &RunDeployment{
		config:   cfg,
		provider: provider,
		store:    store,
		steps:    steps,
		log:      log,
		sink:     sink,
	}
}

// Run executes the deployment. Configuration problems abort before any step
// runs; step failures are reported in the result and the registry is saved
// regardless.
func (uc *RunDeployment) Run(ctx context.Context, params RunDeploymentParams) (*RunDeploymentResult, error) {
	accounts, err := NewAccountSet(uc.config.PrivateKeys)
	if err != nil {
		return nil, err
	}

	pipeline, err := uc.buildPipeline(params.Steps)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(uc.config, uc.provider, uc.store, uc.log)
	if err := domain.CheckRequiredConfirmations(registry.RequiredConfirmations, len(accounts.TokenOwners)); err != nil {
		return nil, err
	}
	if err := registry.AttachPreviousContracts(ctx); err != nil {
		return nil, err
	}
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}

	uc.log.Info("Deploying contracts", "network", uc.config.NetworkName, "steps", pipeline.Steps())
	state := NewDeployState(accounts, registry, params.Force)
	results := pipeline.Run(ctx, state)

	result := &RunDeploymentResult{
		Network:         uc.config.NetworkName,
		DeploymentsFile: uc.store.Path(),
		Accounts:        accounts,
		Steps:           results,
		Deployments:     registry.Deployments(),
	}

	// The save uses its own context so a timed out run still records what it deployed
	if err := registry.Save(context.WithoutCancel(ctx)); err != nil {
		return result, err
	}
	return result, nil
}

func (uc *RunDeployment) buildPipeline(names []string) (*Pipeline, error) {
	if len(names) == 0 {
		names = DefaultStepNames()
	}

	all := uc.steps.All()
	known := lo.Map(all, func(s Step, _ int) string { return s.Name })
	if unknown, _ := lo.Difference(names, known); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown steps %v (available: %v)", unknown, known)
	}

	pipeline := NewPipeline(uc.log, uc.sink)
	for _, step := range all {
		if lo.Contains(names, step.Name) {
			pipeline.Add(step)
		}
	}
	return pipeline, nil
}
