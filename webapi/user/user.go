package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/user"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	usersvc "github.com/piolcm/piol/pkg/service/user"
	"github.com/piolcm/piol/webapi/common"
	"github.com/piolcm/piol/webapi/middleware"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc)
	app.Post("/users", CreateUser(userSvc))
	app.Get("/users/me", append(protected, GetMe(userSvc))...)
	app.Patch("/users/me/phone", append(protected, SetPhone(userSvc))...)
	app.Patch("/users/:id/role", append(protected, AssignRole(userSvc))...)
}

// CreateUser registers a renter or landlord.
// @Summary Register
// @Description Create a renter or landlord account
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUser true "User creation data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users [post]
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUser](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.UserContext(), usersvc.RegisterInput{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Role:     user.Role(input.Role),
			Phone:    input.Phone,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// GetMe returns the caller's account.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /users/me [get]
// @Security BearerAuth
func GetMe(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := userSvc.GetMe(c.UserContext(), middleware.AuthContext(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// SetPhone stores the caller's mobile money number.
// @Summary Set phone
// @Tags users
// @Accept json
// @Produce json
// @Param request body PhoneInput true "Phone number"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /users/me/phone [patch]
// @Security BearerAuth
func SetPhone(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PhoneInput](c)
		if input == nil {
			return err
		}
		phone, err := userSvc.SetPhone(c.UserContext(), middleware.AuthContext(c), input.Phone)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set phone", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Phone updated", fiber.Map{"phone": phone})
	}
}

// AssignRole changes a user's role. Admin only.
// @Summary Assign role
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body RoleInput true "Role"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id}/role [patch]
// @Security BearerAuth
func AssignRole(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[RoleInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.AssignRole(c.UserContext(), middleware.AuthContext(c), id, user.Role(input.Role))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't assign role", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Role assigned", u)
	}
}
