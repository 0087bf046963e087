package usecase

import (
	"context"
	"maps"
	"slices"

	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Check verifies that code exists at every recorded address
	Check bool
}

// DeploymentListResult contains the persisted deployments
type DeploymentListResult struct {
	Network         string
	DeploymentsFile string
	Exists          bool
	Deployments     []*models.Deployment
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config  *config.RuntimeConfig
	store   DeploymentStore
	checker BlockchainChecker
	sink    ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore, checker BlockchainChecker, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config:  cfg,
		store:   store,
		checker: checker,
		sink:    sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	result := &DeploymentListResult{
		Network:         uc.config.NetworkName,
		DeploymentsFile: uc.store.Path(),
		Exists:          uc.store.Exists(),
	}
	if !result.Exists {
		return result, nil
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	addresses, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	names := slices.Sorted(maps.Keys(addresses))
	for i, name := range names {
		deployment := &models.Deployment{Name: name, Address: addresses[name]}
		if params.Check {
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "checking",
				Current: i + 1,
				Total:   len(names),
				Message: "Checking " + name,
				Spinner: true,
			})
			exists, reason, err := uc.checker.CheckDeploymentExists(ctx, deployment.Address)
			deployment.Checked = true
			deployment.HasCode = exists
			deployment.CheckMsg = reason
			if err != nil {
				deployment.CheckMsg = err.Error()
			}
		}
		result.Deployments = append(result.Deployments, deployment)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(names),
		Total:   len(names),
		Message: "Deployments loaded",
	})

	return result, nil
}
