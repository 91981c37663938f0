package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/cadefab1n/cardapio-backend/pkg/metrics"
	"github.com/cadefab1n/cardapio-backend/pkg/whatsapp"
	"github.com/shopspring/decimal"
)

// Opener hands the deep link to whatever can launch it. The default HTTP flow
// returns the link to the client, so no Opener is needed there; a non-nil
// Opener lets other frontends (or tests) drive the open step server-side.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

type restaurantLoader interface {
	First(ctx context.Context) (*models.Restaurant, error)
}

// Handoff is the assembled order ready to be sent over WhatsApp.
type Handoff struct {
	RestaurantName string          `json:"restaurant_name"`
	Phone          string          `json:"phone"`
	RawPhone       string          `json:"-"`
	Message        string          `json:"message"`
	URL            string          `json:"url"`
	TotalItems     int             `json:"total_items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// Service builds WhatsApp handoffs from cart contents.
type Service struct {
	carts       *cart.Manager
	restaurants restaurantLoader
	opener      Opener
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// ServiceParams wires the checkout service dependencies.
type ServiceParams struct {
	Carts       *cart.Manager
	Restaurants restaurantLoader
	Opener      Opener
	Metrics     *metrics.CheckoutMetrics
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService builds a checkout service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurant loader required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		carts:       params.Carts,
		restaurants: params.Restaurants,
		opener:      params.Opener,
		metrics:     params.Metrics,
		logg:        params.Logger,
		now:         now,
	}, nil
}

// Quote assembles the handoff for the session's cart without side effects.
// It rejects an empty cart and a restaurant without a WhatsApp number.
func (s *Service) Quote(ctx context.Context, sessionID string) (*Handoff, error) {
	s.metrics.IncAttempt()

	store := s.carts.Get(ctx, sessionID)
	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	restaurant, err := s.restaurants.First(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	if restaurant == nil || restaurant.WhatsApp == "" {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant whatsapp number is not configured")
	}

	phone := whatsapp.NormalizePhone(restaurant.WhatsApp)
	message := buildMessage(restaurant.Name, snap, s.now())

	return &Handoff{
		RestaurantName: restaurant.Name,
		Phone:          phone,
		RawPhone:       restaurant.WhatsApp,
		Message:        message,
		URL:            whatsapp.Link(phone, message),
		TotalItems:     snap.TotalItems,
		TotalPrice:     snap.TotalPrice,
	}, nil
}

// Send quotes the cart and drives the configured Opener. On success the cart
// is cleared; on failure it is left intact so the user can retry, and the
// error carries the raw number for manual contact.
func (s *Service) Send(ctx context.Context, sessionID string) (*Handoff, error) {
	handoff, err := s.Quote(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.opener != nil {
		if err := s.opener.Open(ctx, handoff.URL); err != nil {
			s.metrics.IncFailure()
			if s.logg != nil {
				s.logg.Error(s.logg.WithCartSession(ctx, sessionID), "whatsapp handoff failed", err)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not open whatsapp").
				WithDetails(map[string]any{"contact_phone": handoff.RawPhone})
		}
	}

	s.carts.Get(ctx, sessionID).Clear()
	s.metrics.IncSuccess()
	return handoff, nil
}

// Confirm clears the session's cart after the client reports the handoff
// succeeded on its side. Clearing is idempotent.
func (s *Service) Confirm(ctx context.Context, sessionID string) {
	s.carts.Get(ctx, sessionID).Clear()
	s.metrics.IncSuccess()
}
