package services

import (
	"context"
	"fmt"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/rs/zerolog"
)

// PreflightReport summarises the checks run before a launch
type PreflightReport struct {
	Identity    Identity
	InputStates int
}

// Preflight checks credentials and inputs before handing off to the launcher
type Preflight struct {
	identity *IdentityService
	inputs   *InputChecker
}

func NewPreflight(identity *IdentityService, inputs *InputChecker) *Preflight {
	return &Preflight{
		identity: identity,
		inputs:   inputs,
	}
}

// Run fails with ErrNoInputStates when the document's input glob matches nothing
func (p *Preflight) Run(ctx context.Context, doc params.Document) (PreflightReport, error) {
	logger := zerolog.Ctx(ctx)

	id, err := p.identity.CallerIdentity(ctx)
	if err != nil {
		return PreflightReport{}, err
	}
	logger.Info().Str("account", id.Account).Str("arn", id.ARN).Msg("AWS credentials ok")

	count, err := p.inputs.CountStates(ctx, doc.InputStates)
	if err != nil {
		return PreflightReport{}, err
	}

	report := PreflightReport{Identity: id, InputStates: count}
	if count == 0 {
		return report, fmt.Errorf("%w: %s", errs.ErrNoInputStates, doc.InputStates)
	}

	logger.Info().Int("count", count).Str("glob", doc.InputStates).Msg("Input states found")
	return report, nil
}
