// Package user provides registration and profile operations for marketplace users.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/dto"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/piolcm/piol/pkg/utils"
)

// RegisterInput holds the fields of a self-service sign up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     user.Role
	Phone    string
}

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// Register creates a renter or landlord account. Admin and verifier roles
// are granted by an admin through AssignRole.
func (s *Service) Register(
	ctx context.Context,
	in RegisterInput,
) (u *user.User, err error) {
	const op = "user.Register"
	log := s.logger.With("context", "Register", "email", in.Email)
	if !in.Role.SelfAssignable() {
		return nil, domain.NewValidationError(op, "role", "must be renter or landlord")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError(op, "password", "must be at least 8 characters")
	}
	u, err = user.NewUser(in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, domain.NewValidationError(op, "user", err.Error())
	}
	if in.Phone != "" {
		if err = u.SetPhone(in.Phone); err != nil {
			return nil, domain.NewValidationError(op, "phone", err.Error())
		}
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "userID", u.ID, "role", u.Role)
	return u, nil
}

// GetMe returns the caller's current user record.
func (s *Service) GetMe(
	ctx context.Context,
	ac *authz.AuthContext,
) (*user.User, error) {
	const op = "user.GetMe"
	caller, err := authz.RequireUser(ac, op)
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.Get(ctx, caller.ID)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "user")
	}
	return u, nil
}

// SetPhone stores the caller's mobile money number in international form.
func (s *Service) SetPhone(
	ctx context.Context,
	ac *authz.AuthContext,
	phone string,
) (string, error) {
	const op = "user.SetPhone"
	caller, err := authz.RequireUser(ac, op)
	if err != nil {
		return "", err
	}
	msisdn, err := utils.NormalizeMSISDN(phone)
	if err != nil {
		return "", domain.NewValidationError(op, "phone", err.Error())
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Update(ctx, caller.ID, dto.UserUpdate{Phone: &msisdn})
	})
	if err != nil {
		s.logger.Error("SetPhone failed", "userID", caller.ID, "error", err)
		return "", err
	}
	s.logger.Info("SetPhone successful", "userID", caller.ID, "phone", utils.MaskPhone(msisdn))
	return msisdn, nil
}

// AssignRole changes another user's role. Admin only.
func (s *Service) AssignRole(
	ctx context.Context,
	ac *authz.AuthContext,
	userID uuid.UUID,
	role user.Role,
) (u *user.User, err error) {
	const op = "user.AssignRole"
	if err = authz.AssertAdmin(ac, op); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.NewValidationError(op, "role", user.ErrInvalidRole.Error())
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if u, err = repo.Get(ctx, userID); err != nil {
			return domain.AsNotFound(err, op, "user")
		}
		if err = repo.Update(ctx, userID, dto.UserUpdate{Role: &role}); err != nil {
			return err
		}
		u.Role = role
		return nil
	})
	if err != nil {
		s.logger.Error("AssignRole failed", "userID", userID, "role", role, "error", err)
		return nil, err
	}
	s.logger.Info("AssignRole successful", "userID", userID, "role", role, "by", ac.UserID())
	return u, nil
}
