package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

const maxSlugAttempts = 5

type CreatePartnerCommand struct {
	Name           string
	CommissionRate float64
}

// CreatePartnerUseCase onboards a reseller partner. Slugs are random and
// short, so collisions happen; the slug is regenerated and the insert
// retried a bounded number of times.
type CreatePartnerUseCase struct {
	partnerRepo identity.PartnerRepository
	logger      logger.Interface
}

func NewCreatePartnerUseCase(partnerRepo identity.PartnerRepository, logger logger.Interface) *CreatePartnerUseCase {
	return &CreatePartnerUseCase{partnerRepo: partnerRepo, logger: logger}
}

func (uc *CreatePartnerUseCase) Execute(ctx context.Context, cmd CreatePartnerCommand) (*identity.Partner, error) {
	partner, err := identity.NewPartner(cmd.Name, cmd.CommissionRate)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		err = uc.partnerRepo.Create(ctx, partner)
		if err == nil {
			uc.logger.Infow("partner created",
				"partner_id", partner.ID(),
				"slug", partner.Slug(),
				"attempt", attempt)
			return partner, nil
		}
		if !errors.Is(err, identity.ErrPartnerSlugExists) {
			return nil, err
		}
		if rerr := partner.RegenerateSlug(); rerr != nil {
			return nil, rerr
		}
	}
	return nil, fmt.Errorf("failed to allocate partner slug after %d attempts: %w", maxSlugAttempts, err)
}
