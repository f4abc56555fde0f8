package verification

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/verification"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	verificationsvc "github.com/piolcm/piol/pkg/service/verification"
	"github.com/piolcm/piol/webapi/common"
	"github.com/piolcm/piol/webapi/middleware"
)

func Routes(app *fiber.App, verificationSvc *verificationsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc)
	app.Post("/verifications/claim", append(protected, Claim(verificationSvc))...)
	app.Get("/verifications/mine", append(protected, ListMine(verificationSvc))...)
	app.Get("/verifications/:id", append(protected, GetVerification(verificationSvc))...)
	app.Patch("/verifications/:id", append(protected, Update(verificationSvc))...)
	app.Post("/verifications/:id/complete", append(protected, Complete(verificationSvc))...)
}

// Claim assigns the caller to inspect a property.
// @Summary Claim verification
// @Tags verifications
// @Accept json
// @Produce json
// @Param request body ClaimInput true "Property and verification type"
// @Success 201 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /verifications/claim [post]
// @Security BearerAuth
func Claim(verificationSvc *verificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ClaimInput](c)
		if input == nil {
			return err
		}
		v, err := verificationSvc.ClaimVerification(c.UserContext(), middleware.AuthContext(c),
			uuid.MustParse(input.PropertyID), verification.Type(input.Type))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't claim verification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Verification claimed", v)
	}
}

// Update records evidence on an in-progress verification.
// @Summary Update verification
// @Tags verifications
// @Accept json
// @Produce json
// @Param id path string true "Verification ID"
// @Param request body UpdateInput true "Evidence"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /verifications/{id} [patch]
// @Security BearerAuth
func Update(verificationSvc *verificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateInput](c)
		if input == nil {
			return err
		}
		update := verification.Update{Notes: input.Notes, VisitDate: input.VisitDate}
		for _, d := range input.Documents {
			update.Documents = append(update.Documents, verification.Document{
				Type: d.Type, StorageID: d.StorageID, Verified: d.Verified,
			})
		}
		for _, p := range input.VisitPhotos {
			update.VisitPhotos = append(update.VisitPhotos, verification.Photo{
				StorageID: p.StorageID, Timestamp: p.Timestamp,
			})
		}
		v, err := verificationSvc.UpdateVerification(c.UserContext(), middleware.AuthContext(c), id, update)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update verification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Verification updated", v)
	}
}

// Complete approves or rejects a verification.
// @Summary Complete verification
// @Tags verifications
// @Accept json
// @Produce json
// @Param id path string true "Verification ID"
// @Param request body CompleteInput true "Outcome"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /verifications/{id}/complete [post]
// @Security BearerAuth
func Complete(verificationSvc *verificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CompleteInput](c)
		if input == nil {
			return err
		}
		v, err := verificationSvc.CompleteVerification(c.UserContext(), middleware.AuthContext(c),
			id, verification.Status(input.Status), input.Notes)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't complete verification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Verification completed", v)
	}
}

// GetVerification returns a verification to its verifier, the landlord or an admin.
// @Summary Get verification
// @Tags verifications
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /verifications/{id} [get]
// @Security BearerAuth
func GetVerification(verificationSvc *verificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		v, err := verificationSvc.GetVerification(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load verification", err)
		}
		if v == nil {
			return common.ProblemDetailsJSON(c, "Verification not found", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Verification found", v)
	}
}

// ListMine lists verifications assigned to the caller.
// @Summary My verifications
// @Tags verifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /verifications/mine [get]
// @Security BearerAuth
func ListMine(verificationSvc *verificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vs, err := verificationSvc.ListMyVerifications(c.UserContext(), middleware.AuthContext(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list verifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Verifications", vs)
	}
}
