// Package verification runs the property inspection workflow: a verifier
// claims a pending property, records evidence, then approves or rejects it,
// which publishes or returns the listing to its landlord.
package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/property"
	"github.com/piolcm/piol/pkg/domain/verification"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/piolcm/piol/pkg/repository"
)

// Service provides the verification workflow operations.
type Service struct {
	uow      repository.UnitOfWork
	eventBus eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:      deps.Uow,
		eventBus: deps.EventBus,
		logger:   logger.With("service", "verification"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ClaimVerification assigns the caller to inspect a property pending verification.
// A second active claim for the same property and type fails with a duplicate error;
// a rejected one frees the slot.
func (s *Service) ClaimVerification(
	ctx context.Context,
	ac *authz.AuthContext,
	propertyID uuid.UUID,
	typ verification.Type,
) (v *verification.Verification, err error) {
	const op = "verification.ClaimVerification"
	log := s.logger.With("context", "ClaimVerification", "propertyID", propertyID, "type", typ)
	if err = authz.AssertAdminOrVerifier(ac, op); err != nil {
		return nil, err
	}
	now := s.now()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		propRepo, err := uow.PropertyRepository()
		if err != nil {
			return err
		}
		prop, err := propRepo.Get(ctx, propertyID)
		if err != nil {
			return domain.AsNotFound(err, op, "property")
		}
		if err = prop.StartVerification(now); err != nil {
			return err
		}
		repo, err := uow.VerificationRepository()
		if err != nil {
			return err
		}
		active, err := repo.FindActive(ctx, propertyID, typ)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.NewDuplicateError(op, "verification",
				"an active "+string(typ)+" verification already exists for this property")
		}
		if v, err = verification.Claim(propertyID, ac.UserID(), typ, now); err != nil {
			return err
		}
		if err = repo.Create(ctx, v); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.NewDuplicateError(op, "verification", "claimed concurrently")
			}
			return err
		}
		return propRepo.Save(ctx, prop)
	})
	if err != nil {
		log.Error("ClaimVerification failed", "error", err)
		return nil, err
	}
	s.emit(ctx, &events.VerificationClaimed{
		FlowEvent:        events.NewFlowEvent(v.ID),
		VerificationID:   v.ID,
		PropertyID:       v.PropertyID,
		VerifierID:       v.VerifierID,
		VerificationType: string(v.Type),
	})
	log.Info("ClaimVerification successful", "verificationID", v.ID)
	return v, nil
}

// UpdateVerification records evidence on an in-progress verification.
// Only the assigned verifier or an admin may update it.
func (s *Service) UpdateVerification(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
	update verification.Update,
) (v *verification.Verification, err error) {
	const op = "verification.UpdateVerification"
	if err = authz.AssertAdminOrVerifier(ac, op); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.VerificationRepository()
		if err != nil {
			return err
		}
		if v, err = s.loadAssigned(ctx, repo.Get, ac, op, id); err != nil {
			return err
		}
		if err = v.Apply(update, s.now()); err != nil {
			return err
		}
		return repo.Save(ctx, v)
	})
	if err != nil {
		s.logger.Error("UpdateVerification failed", "verificationID", id, "error", err)
		return nil, err
	}
	return v, nil
}

// CompleteVerification approves or rejects an in-progress verification and
// applies the outcome to its property. Approval marks the property verified;
// rejection sends it back to draft. The landlord is notified either way.
func (s *Service) CompleteVerification(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
	status verification.Status,
	notes string,
) (v *verification.Verification, err error) {
	const op = "verification.CompleteVerification"
	log := s.logger.With("context", "CompleteVerification", "verificationID", id, "status", status)
	if err = authz.AssertAdminOrVerifier(ac, op); err != nil {
		return nil, err
	}
	var prop *property.Property
	now := s.now()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.VerificationRepository()
		if err != nil {
			return err
		}
		if v, err = s.loadAssigned(ctx, repo.Get, ac, op, id); err != nil {
			return err
		}
		if err = v.Complete(status, notes, now); err != nil {
			return err
		}
		if err = repo.Save(ctx, v); err != nil {
			return err
		}
		propRepo, err := uow.PropertyRepository()
		if err != nil {
			return err
		}
		if prop, err = propRepo.Get(ctx, v.PropertyID); err != nil {
			return domain.AsNotFound(err, op, "property")
		}
		if status == verification.StatusApproved {
			if err = prop.Approve(ac.UserID(), now); err != nil {
				return err
			}
		} else {
			prop.Reject(now)
		}
		return propRepo.Save(ctx, prop)
	})
	if err != nil {
		log.Error("CompleteVerification failed", "error", err)
		return nil, err
	}
	s.emit(ctx, &events.VerificationCompleted{
		FlowEvent:        events.NewFlowEvent(v.ID),
		VerificationID:   v.ID,
		PropertyID:       prop.ID,
		PropertyTitle:    prop.Title,
		LandlordID:       prop.LandlordID,
		VerifierID:       ac.UserID(),
		VerificationType: string(v.Type),
		Status:           string(v.Status),
		Notes:            v.Notes,
	})
	log.Info("CompleteVerification successful", "propertyStatus", prop.Status)
	return v, nil
}

// GetVerification returns the verification to its verifier, an admin or the
// landlord of the property. Anyone else gets nil, as if it did not exist.
func (s *Service) GetVerification(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*verification.Verification, error) {
	if !ac.Authenticated() {
		return nil, nil
	}
	repo, err := s.uow.VerificationRepository()
	if err != nil {
		return nil, err
	}
	v, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if authz.IsOwnerOrAdmin(ac, v.VerifierID) {
		return v, nil
	}
	propRepo, err := s.uow.PropertyRepository()
	if err != nil {
		return nil, err
	}
	prop, err := propRepo.Get(ctx, v.PropertyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if prop.LandlordID != ac.UserID() {
		return nil, nil
	}
	return v, nil
}

// ListMyVerifications lists the verifications assigned to the caller.
func (s *Service) ListMyVerifications(
	ctx context.Context,
	ac *authz.AuthContext,
) ([]*verification.Verification, error) {
	if err := authz.AssertAdminOrVerifier(ac, "verification.ListMyVerifications"); err != nil {
		return nil, err
	}
	repo, err := s.uow.VerificationRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByVerifier(ctx, ac.UserID())
}

func (s *Service) loadAssigned(
	ctx context.Context,
	get func(context.Context, uuid.UUID) (*verification.Verification, error),
	ac *authz.AuthContext,
	op string,
	id uuid.UUID,
) (*verification.Verification, error) {
	v, err := get(ctx, id)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "verification")
	}
	if !authz.IsOwnerOrAdmin(ac, v.VerifierID) {
		return nil, domain.NewUnauthorizedError(op, "verification is assigned to another verifier")
	}
	return v, nil
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(ctx, evt); err != nil {
		s.logger.Error("failed to emit event", "event", evt.Type(), "error", err)
	}
}
