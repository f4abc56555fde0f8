package notification

import (
	"github.com/gofiber/fiber/v2"
	"github.com/piolcm/piol/pkg/config"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	notificationsvc "github.com/piolcm/piol/pkg/service/notification"
	"github.com/piolcm/piol/webapi/common"
	"github.com/piolcm/piol/webapi/middleware"
)

func Routes(app *fiber.App, notificationSvc *notificationsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc)
	app.Get("/notifications", append(protected, List(notificationSvc))...)
	app.Post("/notifications/:id/read", append(protected, MarkRead(notificationSvc))...)
}

// List returns the caller's notifications, newest first.
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Maximum number of notifications (max 50)"
// @Success 200 {object} common.Response
// @Router /notifications [get]
// @Security BearerAuth
func List(notificationSvc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ns, err := notificationSvc.ListNotifications(c.UserContext(), middleware.AuthContext(c),
			c.QueryBool("unread"), c.QueryInt("limit"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications", ns)
	}
}

// MarkRead marks one of the caller's notifications as read.
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /notifications/{id}/read [post]
// @Security BearerAuth
func MarkRead(notificationSvc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		if err = notificationSvc.MarkNotificationRead(c.UserContext(), middleware.AuthContext(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notification read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification read", nil)
	}
}
