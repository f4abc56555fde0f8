package property

import (
	"github.com/gofiber/fiber/v2"
	"github.com/piolcm/piol/pkg/config"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	propertysvc "github.com/piolcm/piol/pkg/service/property"
	"github.com/piolcm/piol/webapi/common"
	"github.com/piolcm/piol/webapi/middleware"
)

func Routes(app *fiber.App, propertySvc *propertysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc)
	app.Post("/properties", append(protected, CreateProperty(propertySvc))...)
	app.Get("/properties/mine", append(protected, ListMine(propertySvc))...)
	app.Get("/properties/pending-verification", append(protected, ListPending(propertySvc))...)
	app.Get("/properties/:id", append(middleware.Optional(cfg.Auth.Jwt, authSvc), GetProperty(propertySvc))...)
	app.Post("/properties/:id/submit", append(protected, Submit(propertySvc))...)
	app.Post("/properties/:id/toggle", append(protected, Toggle(propertySvc))...)
	app.Post("/properties/:id/archive", append(protected, Archive(propertySvc))...)
}

// CreateProperty creates a draft listing.
// @Summary Create property
// @Tags properties
// @Accept json
// @Produce json
// @Param request body CreatePropertyInput true "Listing"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /properties [post]
// @Security BearerAuth
func CreateProperty(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreatePropertyInput](c)
		if input == nil {
			return err
		}
		p, err := propertySvc.CreateProperty(c.UserContext(), middleware.AuthContext(c), propertysvc.CreateInput{
			Title:        input.Title,
			City:         input.City,
			Neighborhood: input.Neighborhood,
			MonthlyRent:  input.MonthlyRent,
			Currency:     input.Currency,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create property", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Property created", p)
	}
}

// GetProperty returns a listing. Unpublished listings are only visible to
// their landlord, verifiers and admins.
// @Summary Get property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /properties/{id} [get]
func GetProperty(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		p, err := propertySvc.GetProperty(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load property", err)
		}
		if p == nil {
			return common.ProblemDetailsJSON(c, "Property not found", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Property found", p)
	}
}

// ListMine lists the caller's listings.
// @Summary My properties
// @Tags properties
// @Produce json
// @Success 200 {object} common.Response
// @Router /properties/mine [get]
// @Security BearerAuth
func ListMine(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := propertySvc.ListMyProperties(c.UserContext(), middleware.AuthContext(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list properties", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Properties", ps)
	}
}

// ListPending is the verification queue.
// @Summary Pending verification
// @Tags properties
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /properties/pending-verification [get]
// @Security BearerAuth
func ListPending(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := propertySvc.ListPendingVerification(c.UserContext(), middleware.AuthContext(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list properties", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pending verification", ps)
	}
}

// Submit queues a listing for verification.
// @Summary Submit for verification
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /properties/{id}/submit [post]
// @Security BearerAuth
func Submit(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		p, err := propertySvc.SubmitForVerification(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't submit property", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Submitted for verification", p)
	}
}

// Toggle publishes or unpublishes a verified listing.
// @Summary Toggle property status
// @Tags properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body ToggleInput true "Active flag"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /properties/{id}/toggle [post]
// @Security BearerAuth
func Toggle(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[ToggleInput](c)
		if input == nil {
			return err
		}
		p, err := propertySvc.TogglePropertyStatus(c.UserContext(), middleware.AuthContext(c), id, *input.Active)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't change property status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Property status changed", p)
	}
}

// Archive withdraws a listing.
// @Summary Archive property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} common.Response
// @Router /properties/{id}/archive [post]
// @Security BearerAuth
func Archive(propertySvc *propertysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		p, err := propertySvc.ArchiveProperty(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't archive property", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Property archived", p)
	}
}
