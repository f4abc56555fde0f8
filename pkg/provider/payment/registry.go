package payment

import (
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
)

// Registry resolves the provider for a payment method.
type Registry map[transaction.Method]PaymentProvider

// NewRegistry indexes providers by the method they settle. Nil providers are skipped.
func NewRegistry(providers ...PaymentProvider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		if p != nil {
			r[p.Method()] = p
		}
	}
	return r
}

// Get returns the provider for method, or a validation error if none is configured.
func (r Registry) Get(method transaction.Method) (PaymentProvider, error) {
	p, ok := r[method]
	if !ok {
		return nil, domain.NewValidationError(
			"payment.Registry.Get", "paymentMethod", "no provider handles "+string(method))
	}
	return p, nil
}

// Disburser returns the provider for method if it can pay out.
func (r Registry) Disburser(method transaction.Method) (Disburser, error) {
	p, err := r.Get(method)
	if err != nil {
		return nil, err
	}
	d, ok := p.(Disburser)
	if !ok {
		return nil, domain.NewConfigurationError(
			"payment.Registry.Disburser", string(method)+" provider cannot disburse funds")
	}
	return d, nil
}

// AccountValidator returns the provider for method if it can validate accounts.
func (r Registry) AccountValidator(method transaction.Method) (AccountValidator, error) {
	p, err := r.Get(method)
	if err != nil {
		return nil, err
	}
	v, ok := p.(AccountValidator)
	if !ok {
		return nil, domain.NewConfigurationError(
			"payment.Registry.AccountValidator", string(method)+" provider cannot validate accounts")
	}
	return v, nil
}
