package controllers

import (
	"net/http"

	"github.com/cadefab1n/cardapio-backend/api/middleware"
	"github.com/cadefab1n/cardapio-backend/api/responses"
	"github.com/cadefab1n/cardapio-backend/internal/checkout"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
)

func checkoutSession(r *http.Request) (string, error) {
	id := middleware.CartSessionFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return id, nil
}

// CheckoutQuote assembles the WhatsApp handoff without touching the cart.
func CheckoutQuote(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := checkoutSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		handoff, err := svc.Quote(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoff)
	}
}

// CheckoutSend runs the handoff; the cart is cleared only when it succeeds.
func CheckoutSend(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := checkoutSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		handoff, err := svc.Send(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoff)
	}
}

// CheckoutConfirm clears the cart after the client opened the link itself.
func CheckoutConfirm(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := checkoutSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.Confirm(r.Context(), id)
		responses.WriteSuccess(w, map[string]bool{"cleared": true})
	}
}
