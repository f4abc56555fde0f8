// Package webhook receives asynchronous payment notifications from the
// mobile money providers.
package webhook

import (
	"github.com/gofiber/fiber/v2"
	"github.com/piolcm/piol/infra/provider/orangemoney"
	provider "github.com/piolcm/piol/pkg/provider/payment"
	paymentsvc "github.com/piolcm/piol/pkg/service/payment"
	"github.com/piolcm/piol/webapi/common"
)

func Routes(app *fiber.App, paymentSvc *paymentsvc.Service) {
	app.Post("/webhooks/orange", OrangeWebhook(paymentSvc))
	app.Post("/webhooks/mtn", MTNWebhook(paymentSvc))
}

// OrangeWebhook applies an Orange Money payment notification.
// @Summary Orange Money notification
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body OrangeNotification true "Notification"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /webhooks/orange [post]
func OrangeWebhook(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrangeNotification
		if err := c.BodyParser(&body); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification", err, fiber.StatusBadRequest)
		}
		tx, err := paymentSvc.HandleOrangeNotification(c.UserContext(), body.OrderID, body.NotifToken, provider.StatusResult{
			Status:                 orangemoney.MapStatus(body.Status),
			FinancialTransactionID: body.TransactionID(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Notification rejected", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification processed", fiber.Map{
			"transactionId": tx.ID,
			"status":        tx.Status,
		})
	}
}

// MTNWebhook re-checks the transaction an MTN callback refers to.
// @Summary MTN MoMo callback
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body MTNCallback true "Callback"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /webhooks/mtn [post]
func MTNWebhook(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MTNCallback
		if err := c.BodyParser(&body); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid callback", err, fiber.StatusBadRequest)
		}
		tx, err := paymentSvc.HandleMTNCallback(c.UserContext(), body.ExternalID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Callback rejected", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Callback processed", fiber.Map{
			"transactionId": tx.ID,
			"status":        tx.Status,
		})
	}
}
