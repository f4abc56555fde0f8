// Package transaction exposes rent payments, escrow release and refund requests.
package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	txdomain "github.com/piolcm/piol/pkg/domain/transaction"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	paymentsvc "github.com/piolcm/piol/pkg/service/payment"
	"github.com/piolcm/piol/webapi/common"
	"github.com/piolcm/piol/webapi/middleware"
)

func Routes(app *fiber.App, paymentSvc *paymentsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc)
	app.Post("/transactions", append(protected, CreateTransaction(paymentSvc))...)
	app.Get("/transactions", append(protected, ListTransactions(paymentSvc))...)
	app.Get("/transactions/:id", append(protected, GetTransaction(paymentSvc))...)
	app.Post("/transactions/:id/process", append(protected, ProcessPayment(paymentSvc))...)
	app.Post("/transactions/:id/status", append(protected, CheckStatus(paymentSvc))...)
	app.Post("/transactions/:id/release", append(protected, ReleaseEscrow(paymentSvc))...)
	app.Post("/transactions/:id/refund-request", append(protected, RequestRefund(paymentSvc))...)
	app.Get("/payments/mtn/accounts/:phone", append(protected, ValidateAccount(paymentSvc))...)
}

// CreateTransaction opens a pending transaction for a property.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionInput true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security BearerAuth
func CreateTransaction(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if input == nil {
			return err
		}
		tx, err := paymentSvc.CreateTransaction(c.UserContext(), middleware.AuthContext(c), paymentsvc.CreateTransactionInput{
			PropertyID: uuid.MustParse(input.PropertyID),
			Type:       txdomain.Type(input.Type),
			Amount:     input.Amount,
			Currency:   input.Currency,
			Method:     txdomain.Method(input.Method),
			PayerPhone: input.PayerPhone,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", tx)
	}
}

// ListTransactions lists the caller's transactions.
// @Summary My transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Router /transactions [get]
// @Security BearerAuth
func ListTransactions(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := paymentSvc.ListMyTransactions(c.UserContext(), middleware.AuthContext(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// GetTransaction returns a transaction to one of its parties or an admin.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security BearerAuth
func GetTransaction(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		tx, err := paymentSvc.GetTransaction(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load transaction", err)
		}
		if tx == nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", tx)
	}
}

// ProcessPayment starts collecting a pending transaction through its mobile money provider.
// @Summary Process payment
// @Description MTN prompts the payer's phone; Orange Money returns a payment URL to redirect to.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body ProcessPaymentInput true "Payment options"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /transactions/{id}/process [post]
// @Security BearerAuth
func ProcessPayment(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[ProcessPaymentInput](c)
		if input == nil {
			return err
		}
		res, err := paymentSvc.ProcessPayment(c.UserContext(), middleware.AuthContext(c), paymentsvc.ProcessPaymentInput{
			TransactionID: id,
			Method:        txdomain.Method(input.Method),
			Phone:         input.Phone,
			ReturnURL:     input.ReturnURL,
			CancelURL:     input.CancelURL,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Payment failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Payment initiated", res)
	}
}

// CheckStatus refreshes a processing transaction from its provider.
// @Summary Check payment status
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /transactions/{id}/status [post]
// @Security BearerAuth
func CheckStatus(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		tx, err := paymentSvc.CheckPaymentStatus(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't check payment status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment status", tx)
	}
}

// ReleaseEscrow pays the landlord out of escrow, minus commission.
// @Summary Release escrow
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /transactions/{id}/release [post]
// @Security BearerAuth
func ReleaseEscrow(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		res, err := paymentSvc.ReleaseEscrowFunds(c.UserContext(), middleware.AuthContext(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't release escrow", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Escrow released", res)
	}
}

// RequestRefund asks the admins to refund held funds.
// @Summary Request refund
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body RefundInput true "Reason"
// @Success 202 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /transactions/{id}/refund-request [post]
// @Security BearerAuth
func RequestRefund(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[RefundInput](c)
		if input == nil {
			return err
		}
		if err = paymentSvc.RequestRefund(c.UserContext(), middleware.AuthContext(c), id, input.Reason); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request refund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Refund requested", nil)
	}
}

// ValidateAccount checks an MTN Mobile Money wallet before paying to it.
// @Summary Validate MTN account
// @Tags payments
// @Produce json
// @Param phone path string true "MSISDN"
// @Success 200 {object} common.Response
// @Failure 502 {object} common.ProblemDetails
// @Router /payments/mtn/accounts/{phone} [get]
// @Security BearerAuth
func ValidateAccount(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := paymentSvc.ValidateAccount(c.UserContext(), middleware.AuthContext(c), c.Params("phone"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't validate account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account checked", info)
	}
}
