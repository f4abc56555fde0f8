// Package property provides the landlord side of the listing lifecycle.
package property

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/property"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/repository"
)

// CreateInput holds the listing fields a landlord provides.
type CreateInput struct {
	Title        string
	City         string
	Neighborhood string
	MonthlyRent  int64
	Currency     string
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:    deps.Uow,
		logger: logger.With("service", "property"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateProperty creates a draft listing owned by the caller.
func (s *Service) CreateProperty(
	ctx context.Context,
	ac *authz.AuthContext,
	in CreateInput,
) (*property.Property, error) {
	const op = "property.CreateProperty"
	if err := authz.AssertLandlordOrAdmin(ac, op); err != nil {
		return nil, err
	}
	p, err := property.New(ac.UserID(), in.Title, in.City, in.Neighborhood, in.MonthlyRent, in.Currency)
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.PropertyRepository()
	if err != nil {
		return nil, err
	}
	if err = repo.Create(ctx, p); err != nil {
		s.logger.Error("CreateProperty failed", "error", err)
		return nil, err
	}
	s.logger.Info("CreateProperty successful", "propertyID", p.ID, "landlordID", p.LandlordID)
	return p, nil
}

// SubmitForVerification queues a draft listing for inspection.
func (s *Service) SubmitForVerification(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*property.Property, error) {
	return s.mutate(ctx, ac, "property.SubmitForVerification", id, func(p *property.Property) error {
		return p.SubmitForVerification(s.now())
	})
}

// TogglePropertyStatus publishes (active=true) or unpublishes a verified listing.
// Publishing requires an approved verification.
func (s *Service) TogglePropertyStatus(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
	active bool,
) (*property.Property, error) {
	return s.mutate(ctx, ac, "property.TogglePropertyStatus", id, func(p *property.Property) error {
		return p.SetActive(active, s.now())
	})
}

// ArchiveProperty withdraws a listing.
func (s *Service) ArchiveProperty(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*property.Property, error) {
	return s.mutate(ctx, ac, "property.ArchiveProperty", id, func(p *property.Property) error {
		return p.Archive(s.now())
	})
}

// mutate loads a property, checks the caller owns it (or is an admin), applies fn and saves.
func (s *Service) mutate(
	ctx context.Context,
	ac *authz.AuthContext,
	op string,
	id uuid.UUID,
	fn func(p *property.Property) error,
) (p *property.Property, err error) {
	if _, err = authz.RequireUser(ac, op); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PropertyRepository()
		if err != nil {
			return err
		}
		if p, err = repo.Get(ctx, id); err != nil {
			return domain.AsNotFound(err, op, "property")
		}
		if err = authz.AssertOwner(ac, op, p.LandlordID); err != nil {
			return err
		}
		if err = fn(p); err != nil {
			return err
		}
		return repo.Save(ctx, p)
	})
	if err != nil {
		s.logger.Error(op+" failed", "propertyID", id, "error", err)
		return nil, err
	}
	s.logger.Info(op+" successful", "propertyID", id, "status", p.Status)
	return p, nil
}

// GetProperty returns a property if the caller may see it. Published listings
// are public; drafts, pending and archived listings are visible to their
// landlord, verifiers and admins only. Anyone else gets nil.
func (s *Service) GetProperty(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*property.Property, error) {
	repo, err := s.uow.PropertyRepository()
	if err != nil {
		return nil, err
	}
	p, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch p.Status {
	case property.StatusVerified, property.StatusActive, property.StatusRented:
		return p, nil
	}
	if authz.IsOwnerOrAdmin(ac, p.LandlordID) || authz.HasRole(ac, user.RoleVerifier) {
		return p, nil
	}
	return nil, nil
}

// ListPendingVerification is the inspection queue.
func (s *Service) ListPendingVerification(
	ctx context.Context,
	ac *authz.AuthContext,
) ([]*property.Property, error) {
	if err := authz.AssertAdminOrVerifier(ac, "property.ListPendingVerification"); err != nil {
		return nil, err
	}
	repo, err := s.uow.PropertyRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByStatus(ctx, property.StatusPendingVerification)
}

// ListMyProperties lists the caller's own listings.
func (s *Service) ListMyProperties(
	ctx context.Context,
	ac *authz.AuthContext,
) ([]*property.Property, error) {
	u, err := authz.RequireUser(ac, "property.ListMyProperties")
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.PropertyRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByLandlord(ctx, u.ID)
}
