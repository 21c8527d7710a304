package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/metrics"
	"github.com/vietanh2810/gift-api/internal/repository"
)

var (
	ErrInvalidQuantity     = repository.ErrInvalidQuantity
	ErrInsufficientStock   = repository.ErrInsufficientStock
	ErrInsufficientBalance = repository.ErrInsufficientBalance
	ErrOrderNotFound       = repository.ErrOrderNotFound
	ErrDuplicateOrder      = domain.ErrDuplicateOrder
	ErrAmountOutOfRange    = domain.ErrAmountOutOfRange
)

type InventoryLedger interface {
	Subtract(ctx context.Context, optionID uint, quantity int) (domain.Option, error)
	Restore(ctx context.Context, optionID uint, quantity int) error
}

type BalanceLedger interface {
	Charge(ctx context.Context, memberID uint, amount int) (domain.Member, error)
	Credit(ctx context.Context, memberID uint, amount int) (domain.Member, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByMemberID(ctx context.Context, memberID uint, page, size int) (domain.Page[domain.Order], error)
}

// NotificationSink is told about committed orders. It has no way to report failure.
type NotificationSink interface {
	Notify(member domain.Member, order domain.Order, option domain.Option)
}

type IdempotencyGuard interface {
	Acquire(ctx context.Context, memberID uint, key string) (bool, error)
	Release(ctx context.Context, memberID uint, key string) error
}

type CreateOrderParams struct {
	OptionID       uint
	Quantity       int
	Message        string
	IdempotencyKey string
}

type OrderService struct {
	inventory InventoryLedger
	balance   BalanceLedger
	orders    OrderRepository
	sink      NotificationSink
	guard     IdempotencyGuard
	metrics   *metrics.Metrics
}

func NewOrderService(
	inventory InventoryLedger,
	balance BalanceLedger,
	orders OrderRepository,
	sink NotificationSink,
	guard IdempotencyGuard,
	m *metrics.Metrics,
) *OrderService {
	return &OrderService{
		inventory: inventory,
		balance:   balance,
		orders:    orders,
		sink:      sink,
		guard:     guard,
		metrics:   m,
	}
}

// CreateOrder subtracts stock, charges the member and stores the order as one unit.
// The two ledgers commit independently, so a later failure undoes the earlier
// steps explicitly. The notification is handed to the sink after the order is stored.
func (s *OrderService) CreateOrder(ctx context.Context, member domain.Member, params CreateOrderParams) (domain.Order, error) {
	if params.Quantity <= 0 {
		s.metrics.IncrementOrdersRejected("invalid_quantity")
		return domain.Order{}, ErrInvalidQuantity
	}

	if params.IdempotencyKey != "" {
		if err := s.acquire(ctx, member.ID, params.IdempotencyKey); err != nil {
			return domain.Order{}, err
		}
	}

	order, option, err := s.commit(ctx, member, params)
	if err != nil {
		s.metrics.IncrementOrdersRejected(rejectionReason(err))
		if params.IdempotencyKey != "" {
			s.release(ctx, member.ID, params.IdempotencyKey)
		}

		return domain.Order{}, err
	}

	s.metrics.IncrementOrdersCreated()
	s.sink.Notify(member, order, option)

	return order, nil
}

func (s *OrderService) commit(ctx context.Context, member domain.Member, params CreateOrderParams) (domain.Order, domain.Option, error) {
	option, err := s.inventory.Subtract(ctx, params.OptionID, params.Quantity)
	if err != nil {
		return domain.Order{}, domain.Option{}, fmt.Errorf("s.inventory.Subtract -> %w", err)
	}

	amount, err := orderAmount(option.UnitPrice(), params.Quantity)
	if err != nil {
		return domain.Order{}, domain.Option{}, errors.Join(err, s.restoreStock(ctx, params))
	}

	if _, err = s.balance.Charge(ctx, member.ID, amount); err != nil {
		err = fmt.Errorf("s.balance.Charge -> %w", err)
		return domain.Order{}, domain.Option{}, errors.Join(err, s.restoreStock(ctx, params))
	}

	order, err := s.orders.Create(ctx, domain.Order{
		OptionID: option.ID,
		MemberID: member.ID,
		Quantity: params.Quantity,
		Amount:   amount,
		Message:  params.Message,
	})
	if err != nil {
		err = fmt.Errorf("s.orders.Create -> %w", err)
		return domain.Order{}, domain.Option{}, errors.Join(err, s.refund(ctx, member.ID, amount), s.restoreStock(ctx, params))
	}

	return order, option, nil
}

// restoreStock and refund ignore cancellation of ctx.
func (s *OrderService) restoreStock(ctx context.Context, params CreateOrderParams) error {
	s.metrics.IncrementCompensations(metrics.LedgerInventory)

	if err := s.inventory.Restore(context.WithoutCancel(ctx), params.OptionID, params.Quantity); err != nil {
		zap.L().Error("failed to restore stock",
			zap.Uint("optionID", params.OptionID), zap.Int("quantity", params.Quantity), zap.Error(err))
		return fmt.Errorf("s.inventory.Restore -> %w", err)
	}

	return nil
}

func (s *OrderService) refund(ctx context.Context, memberID uint, amount int) error {
	s.metrics.IncrementCompensations(metrics.LedgerBalance)

	if _, err := s.balance.Credit(context.WithoutCancel(ctx), memberID, amount); err != nil {
		zap.L().Error("failed to refund point",
			zap.Uint("memberID", memberID), zap.Int("amount", amount), zap.Error(err))
		return fmt.Errorf("s.balance.Credit -> %w", err)
	}

	return nil
}

func (s *OrderService) acquire(ctx context.Context, memberID uint, key string) error {
	ok, err := s.guard.Acquire(ctx, memberID, key)
	if err != nil {
		// Fail open.
		zap.L().Warn("idempotency guard unavailable", zap.Uint("memberID", memberID), zap.Error(err))
		return nil
	}
	if !ok {
		s.metrics.IncrementOrdersRejected("duplicate")
		return ErrDuplicateOrder
	}

	return nil
}

func (s *OrderService) release(ctx context.Context, memberID uint, key string) {
	if err := s.guard.Release(context.WithoutCancel(ctx), memberID, key); err != nil {
		zap.L().Warn("failed to release idempotency key", zap.Uint("memberID", memberID), zap.Error(err))
	}
}

func (s *OrderService) GetOrders(ctx context.Context, member domain.Member, page, size int) (domain.Page[domain.Order], error) {
	orders, err := s.orders.FindByMemberID(ctx, member.ID, page, size)
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("s.orders.FindByMemberID -> %w", err)
	}

	return orders, nil
}

// GetOrder hides orders of other members behind ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, member domain.Member, id uint) (domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}

	if order.MemberID != member.ID {
		return domain.Order{}, ErrOrderNotFound
	}

	return order, nil
}

// orderAmount returns price * quantity, or ErrAmountOutOfRange when it does not fit in an int.
func orderAmount(price, quantity int) (int, error) {
	if price > 0 && quantity > math.MaxInt/price {
		return 0, fmt.Errorf("%d x %d -> %w", price, quantity, ErrAmountOutOfRange)
	}

	return price * quantity, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
