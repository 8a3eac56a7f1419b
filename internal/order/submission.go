// Package order drives the order submission flow: form validation, discount
// application, pricing, payload composition and dispatch.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"daggys-menu/internal/dispatch"
	"daggys-menu/internal/model"
	"daggys-menu/internal/pricing"
	"daggys-menu/internal/promo"
)

// State is a submission's position in the flow:
// Editing -> Validating -> (Invalid -> Editing | Valid -> Dispatching) -> Completed.
type State string

const (
	StateEditing     State = "Editing"
	StateValidating  State = "Validating"
	StateInvalid     State = "Invalid"
	StateValid       State = "Valid"
	StateDispatching State = "Dispatching"
	StateCompleted   State = "Completed"
)

// Cart is the slice of the cart store the flow needs.
type Cart interface {
	Items() []model.CartLine
	Clear(ctx context.Context) error
}

// History is the slice of the order history store the flow needs.
type History interface {
	Append(ctx context.Context, payload model.OrderPayload) (model.OrderRecord, error)
}

// Flow wires the collaborators a submission needs. One Flow serves any number
// of submissions.
type Flow struct {
	cart       Cart
	history    History
	dispatcher dispatch.Dispatcher
	notifier   dispatch.Notifier
	codes      *promo.Registry

	merchantEmail string
	merchantPhone string
	logger        zerolog.Logger
}

// NewFlow creates an order submission flow. notifier may be nil when no
// secondary channel is configured.
func NewFlow(
	cart Cart,
	history History,
	dispatcher dispatch.Dispatcher,
	notifier dispatch.Notifier,
	codes *promo.Registry,
	merchantEmail string,
	merchantPhone string,
	logger zerolog.Logger,
) *Flow {
	return &Flow{
		cart:          cart,
		history:       history,
		dispatcher:    dispatcher,
		notifier:      notifier,
		codes:         codes,
		merchantEmail: merchantEmail,
		merchantPhone: merchantPhone,
		logger:        logger.With().Str("component", "order-flow").Logger(),
	}
}

// Submission is one order form working its way through the flow.
type Submission struct {
	Form CustomerForm

	flow     *Flow
	lines    []model.CartLine
	foodItem *model.MenuItem
	quantity int

	discountPercent int
	discountApplied bool
	state           State
}

// FromCart starts a submission for the current cart contents.
func (f *Flow) FromCart() *Submission {
	return &Submission{
		flow:  f,
		lines: f.cart.Items(),
		state: StateEditing,
	}
}

// ForItem starts a submission for a single (item, quantity) order.
func (f *Flow) ForItem(item model.MenuItem, quantity int) *Submission {
	return &Submission{
		flow:     f,
		foodItem: &item,
		quantity: quantity,
		state:    StateEditing,
	}
}

// State returns the submission's current flow state.
func (s *Submission) State() State {
	return s.state
}

// DiscountApplied reports whether a discount code is currently applied, and
// at what percentage.
func (s *Submission) DiscountApplied() (int, bool) {
	return s.discountPercent, s.discountApplied
}

// ApplyDiscount looks code up case-insensitively. A recognised code sets the
// submission's discount percentage and returns it; an unrecognised code
// clears any previously applied discount and returns ErrInvalidDiscountCode.
func (s *Submission) ApplyDiscount(code string) (int, error) {
	pct, ok := s.flow.codes.Lookup(code)
	if !ok {
		s.discountPercent = 0
		s.discountApplied = false
		s.flow.logger.Debug().Str("code", code).Msg("invalid discount code")
		return 0, model.ErrInvalidDiscountCode
	}

	s.discountPercent = pct
	s.discountApplied = true
	s.flow.logger.Info().Str("code", code).Int("percent", pct).Msg("discount applied")
	return pct, nil
}

// orderLines returns the submission's items as cart lines, whichever shape
// the order has.
func (s *Submission) orderLines() []model.CartLine {
	return pricing.OrderLines(s.payload())
}

func (s *Submission) payload() model.OrderPayload {
	return model.OrderPayload{
		CartItems:    s.lines,
		FoodItem:     s.foodItem,
		Quantity:     s.quantity,
		CustomerInfo: s.Form.customerInfo(),
	}
}

// Subtotal returns the pre-discount order amount as a 2-decimal string.
func (s *Submission) Subtotal() (string, error) {
	subtotal, err := pricing.Subtotal(s.orderLines())
	if err != nil {
		return "", err
	}
	return pricing.Format(subtotal), nil
}

// DiscountValue returns the applied discount amount as a 2-decimal string;
// "0.00" when no discount is applied.
func (s *Submission) DiscountValue() (string, error) {
	subtotal, err := pricing.Subtotal(s.orderLines())
	if err != nil {
		return "", err
	}
	return pricing.Format(pricing.DiscountValue(subtotal, s.discountPct())), nil
}

// Total returns the order total after discount as a 2-decimal string.
func (s *Submission) Total() (string, error) {
	subtotal, err := pricing.Subtotal(s.orderLines())
	if err != nil {
		return "", err
	}
	discount := pricing.DiscountValue(subtotal, s.discountPct())
	return pricing.Format(pricing.Total(subtotal, discount)), nil
}

func (s *Submission) discountPct() int {
	if !s.discountApplied {
		return 0
	}
	return s.discountPercent
}

// Result is the terminal outcome of a completed submission.
type Result struct {
	// Order is the history record created for the order. Zero-valued on the
	// degraded path, where no record is written.
	Order model.OrderRecord

	// Acknowledgment is the user-facing completion text: a confirmation, or
	// the alternate contact instructions on the degraded path.
	Acknowledgment string

	// Degraded reports that no messaging handler was available and the
	// fallback path was taken.
	Degraded bool
}

// Submit drives the submission to a terminal state. Validation failure
// returns a *model.FieldError and leaves the submission back in Editing; no
// dispatch happens. When dispatch is unavailable the flow still completes,
// degraded, with fallback contact instructions and without touching the cart
// or history. On successful dispatch the order is appended to the history
// and, for cart orders, the cart is cleared.
func (s *Submission) Submit(ctx context.Context) (*Result, error) {
	s.state = StateValidating

	if err := s.Form.Validate(); err != nil {
		// Invalid drops straight back to Editing for the user to correct.
		s.state = StateEditing
		s.flow.logger.Debug().Err(err).Msg("order form validation failed")
		return nil, err
	}

	lines := s.orderLines()
	if len(lines) == 0 {
		s.state = StateEditing
		return nil, model.ErrEmptyOrder
	}

	s.state = StateValid

	msg, err := s.composeMessage()
	if err != nil {
		s.state = StateEditing
		return nil, fmt.Errorf("failed to compose order message: %w", err)
	}

	s.state = StateDispatching

	if err := s.flow.dispatcher.Dispatch(ctx, msg); err != nil {
		if !errors.Is(err, model.ErrDispatchUnavailable) {
			s.flow.logger.Warn().Err(err).Msg("dispatch failed, taking fallback path")
		}
		s.state = StateCompleted
		return &Result{
			Acknowledgment: dispatch.FallbackInstructions(s.flow.merchantEmail, s.flow.merchantPhone),
			Degraded:       true,
		}, nil
	}

	record, err := s.flow.history.Append(ctx, s.payload())
	if err != nil {
		// Leave the submission in Dispatching; the write is recoverable and
		// the caller may retry.
		return nil, fmt.Errorf("order dispatched but not recorded: %w", err)
	}

	if s.foodItem == nil {
		if err := s.flow.cart.Clear(ctx); err != nil {
			return nil, fmt.Errorf("order recorded but cart not cleared: %w", err)
		}
	}

	if s.flow.notifier != nil {
		if err := s.flow.notifier.Notify(ctx, msg.Summary); err != nil {
			s.flow.logger.Warn().Err(err).Msg("secondary notification failed")
		}
	}

	s.state = StateCompleted
	s.flow.logger.Info().Str("order_id", record.ID).Msg("order submitted")

	return &Result{
		Order:          record,
		Acknowledgment: "Your order has been sent. You will receive a confirmation email shortly.",
	}, nil
}
