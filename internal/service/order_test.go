package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/metrics"
	"github.com/vietanh2810/gift-api/internal/repository"
	"github.com/vietanh2810/gift-api/internal/service/mocks"
)

// ledgerStore keeps options, balances and orders in memory. Each ledger call holds
// the mutex for its whole read-modify-write, like the row lock in the database.
type ledgerStore struct {
	mu        sync.Mutex
	options   map[uint]domain.Option
	points    map[uint]int
	orders    []domain.Order
	createErr error
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		options: map[uint]domain.Option{},
		points:  map[uint]int{},
	}
}

func (s *ledgerStore) Subtract(_ context.Context, optionID uint, quantity int) (domain.Option, error) {
	if quantity <= 0 {
		return domain.Option{}, repository.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	option, ok := s.options[optionID]
	if !ok {
		return domain.Option{}, repository.ErrOptionNotFound
	}
	if option.Quantity < quantity {
		return domain.Option{}, repository.ErrInsufficientStock
	}
	option.Quantity -= quantity
	s.options[optionID] = option

	return option, nil
}

func (s *ledgerStore) Restore(_ context.Context, optionID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	option, ok := s.options[optionID]
	if !ok {
		return repository.ErrOptionNotFound
	}
	option.Quantity += quantity
	s.options[optionID] = option

	return nil
}

func (s *ledgerStore) Charge(_ context.Context, memberID uint, amount int) (domain.Member, error) {
	if amount <= 0 {
		return domain.Member{}, repository.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	point, ok := s.points[memberID]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	if point < amount {
		return domain.Member{}, repository.ErrInsufficientBalance
	}
	s.points[memberID] = point - amount

	return domain.Member{ID: memberID, Point: point - amount}, nil
}

func (s *ledgerStore) Credit(_ context.Context, memberID uint, amount int) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points[memberID] += amount

	return domain.Member{ID: memberID, Point: s.points[memberID]}, nil
}

func (s *ledgerStore) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return domain.Order{}, s.createErr
	}
	order.ID = uint(len(s.orders) + 1)
	order.CreatedAt = time.Now()
	s.orders = append(s.orders, order)

	return order, nil
}

func (s *ledgerStore) FindByID(_ context.Context, id uint) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}

	return domain.Order{}, repository.ErrOrderNotFound
}

func (s *ledgerStore) FindByMemberID(_ context.Context, memberID uint, page, size int) (domain.Page[domain.Order], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned []domain.Order
	for _, o := range s.orders {
		if o.MemberID == memberID {
			owned = append(owned, o)
		}
	}

	return domain.Page[domain.Order]{Items: owned, Page: page, Size: size, Total: int64(len(owned))}, nil
}

func (s *ledgerStore) stock(optionID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.options[optionID].Quantity
}

func (s *ledgerStore) point(memberID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.points[memberID]
}

func (s *ledgerStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}

type recordingSink struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (s *recordingSink) Notify(_ domain.Member, order domain.Order, _ domain.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, order)
}

type memoryGuard struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func (g *memoryGuard) Acquire(_ context.Context, _ uint, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return false, g.err
	}
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true

	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, _ uint, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.keys, key)

	return nil
}

const (
	testOptionID  uint = 11
	testUnitPrice      = 100
)

type OrderServiceSuite struct {
	suite.Suite

	store   *ledgerStore
	sink    *recordingSink
	guard   *memoryGuard
	metrics *metrics.Metrics
	svc     *OrderService
	member  domain.Member
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.store = newLedgerStore()
	s.store.options[testOptionID] = domain.Option{
		ID:        testOptionID,
		ProductID: 1,
		Name:      "Large",
		Quantity:  10,
		Product:   domain.Product{ID: 1, Name: "Coffee", Price: testUnitPrice},
	}

	s.member = domain.Member{ID: 1, Email: "alice@example.com", Point: 100_000, NotificationHandle: "handle"}
	s.store.points[s.member.ID] = s.member.Point

	s.sink = &recordingSink{}
	s.guard = &memoryGuard{keys: map[string]bool{}}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = NewOrderService(s.store, s.store, s.store, s.sink, s.guard, s.metrics)
}

func (s *OrderServiceSuite) order(quantity int) (domain.Order, error) {
	return s.svc.CreateOrder(context.Background(), s.member, CreateOrderParams{
		OptionID: testOptionID,
		Quantity: quantity,
	})
}

func (s *OrderServiceSuite) TestSequentialOrdersDrainStock() {
	_, err := s.order(7)
	s.Require().NoError(err)
	s.Equal(3, s.store.stock(testOptionID))

	_, err = s.order(5)
	s.ErrorIs(err, ErrInsufficientStock)
	s.Equal(3, s.store.stock(testOptionID))

	_, err = s.order(3)
	s.Require().NoError(err)
	s.Equal(0, s.store.stock(testOptionID))

	_, err = s.order(1)
	s.ErrorIs(err, ErrInsufficientStock)
	s.Equal(0, s.store.stock(testOptionID))

	s.Equal(100_000-10*testUnitPrice, s.store.point(s.member.ID))
	s.Equal(2, s.store.orderCount())
	s.Equal(2.0, testutil.ToFloat64(s.metrics.OrdersCreated))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.OrdersRejected.WithLabelValues("insufficient_stock")))
}

func (s *OrderServiceSuite) TestCreatedOrderCarriesChargedAmount() {
	order, err := s.svc.CreateOrder(context.Background(), s.member, CreateOrderParams{
		OptionID: testOptionID,
		Quantity: 4,
		Message:  "happy birthday",
	})
	s.Require().NoError(err)

	s.Equal(testOptionID, order.OptionID)
	s.Equal(s.member.ID, order.MemberID)
	s.Equal(4, order.Quantity)
	s.Equal(4*testUnitPrice, order.Amount)
	s.Equal("happy birthday", order.Message)
	s.Equal(100_000-order.Amount, s.store.point(s.member.ID))
	s.Equal([]domain.Order{order}, s.sink.orders)
}

func (s *OrderServiceSuite) TestConcurrentOrdersNeverOversell() {
	quantities := []int{7, 5}
	errs := make([]error, len(quantities))

	var (
		start sync.WaitGroup
		done  sync.WaitGroup
	)
	start.Add(1)
	for i, q := range quantities {
		done.Add(1)
		go func(i, q int) {
			defer done.Done()
			start.Wait()
			_, errs[i] = s.order(q)
		}(i, q)
	}
	start.Done()
	done.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded += quantities[i]
			continue
		}
		s.ErrorIs(err, ErrInsufficientStock)
	}

	s.Equal(1, s.store.orderCount())
	s.Contains([]int{7, 5}, succeeded)
	s.Equal(10-succeeded, s.store.stock(testOptionID))
	s.Equal(100_000-succeeded*testUnitPrice, s.store.point(s.member.ID))
}

func (s *OrderServiceSuite) TestManyConcurrentUnitOrders() {
	const attempts = 40

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.order(1); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(10, success)
	s.Equal(0, s.store.stock(testOptionID))
	s.Equal(10, s.store.orderCount())
}

func (s *OrderServiceSuite) TestInsufficientBalanceRestoresStock() {
	s.store.points[s.member.ID] = 250

	_, err := s.order(3)
	s.ErrorIs(err, ErrInsufficientBalance)
	s.ErrorIs(err, domain.ErrInsufficientResource)

	s.Equal(10, s.store.stock(testOptionID))
	s.Equal(250, s.store.point(s.member.ID))
	s.Equal(0, s.store.orderCount())
	s.Empty(s.sink.orders)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrderCompensations.WithLabelValues(metrics.LedgerInventory)))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.OrderCompensations.WithLabelValues(metrics.LedgerBalance)))
}

func (s *OrderServiceSuite) TestPersistFailureRestoresBothLedgers() {
	s.store.createErr = errors.New("disk full")

	_, err := s.order(2)
	s.Require().Error(err)
	s.Contains(err.Error(), "disk full")

	s.Equal(10, s.store.stock(testOptionID))
	s.Equal(100_000, s.store.point(s.member.ID))
	s.Empty(s.sink.orders)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrderCompensations.WithLabelValues(metrics.LedgerInventory)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrderCompensations.WithLabelValues(metrics.LedgerBalance)))
}

func (s *OrderServiceSuite) TestInvalidQuantityTouchesNothing() {
	for _, q := range []int{0, -1} {
		_, err := s.order(q)
		s.ErrorIs(err, ErrInvalidQuantity)
		s.ErrorIs(err, domain.ErrValidation)
	}

	s.Equal(10, s.store.stock(testOptionID))
	s.Equal(100_000, s.store.point(s.member.ID))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.OrdersRejected.WithLabelValues("invalid_quantity")))
}

func (s *OrderServiceSuite) TestAmountOverflowChargesNothing() {
	option := s.store.options[testOptionID]
	option.Product.Price = 1<<62 + 1
	s.store.options[testOptionID] = option
	s.store.points[s.member.ID] = 1000

	_, err := s.order(4)
	s.ErrorIs(err, ErrAmountOutOfRange)
	s.ErrorIs(err, domain.ErrValidation)

	s.Equal(10, s.store.stock(testOptionID))
	s.Equal(1000, s.store.point(s.member.ID))
	s.Equal(0, s.store.orderCount())
	s.Empty(s.sink.orders)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrdersRejected.WithLabelValues("invalid")))
}

func TestOrderAmount(t *testing.T) {
	amount, err := orderAmount(4500, 3)
	require.NoError(t, err)
	assert.Equal(t, 13500, amount)

	amount, err = orderAmount(math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, amount)

	_, err = orderAmount(math.MaxInt/2+1, 2)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func (s *OrderServiceSuite) TestUnknownOption() {
	_, err := s.svc.CreateOrder(context.Background(), s.member, CreateOrderParams{OptionID: 999, Quantity: 1})
	s.ErrorIs(err, repository.ErrOptionNotFound)
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal(100_000, s.store.point(s.member.ID))
}

func (s *OrderServiceSuite) TestIdempotencyKey() {
	params := CreateOrderParams{OptionID: testOptionID, Quantity: 1, IdempotencyKey: "k-1"}

	_, err := s.svc.CreateOrder(context.Background(), s.member, params)
	s.Require().NoError(err)

	_, err = s.svc.CreateOrder(context.Background(), s.member, params)
	s.ErrorIs(err, ErrDuplicateOrder)
	s.Equal(9, s.store.stock(testOptionID))

	failing := CreateOrderParams{OptionID: testOptionID, Quantity: 50, IdempotencyKey: "k-2"}
	_, err = s.svc.CreateOrder(context.Background(), s.member, failing)
	s.ErrorIs(err, ErrInsufficientStock)

	failing.Quantity = 1
	_, err = s.svc.CreateOrder(context.Background(), s.member, failing)
	s.NoError(err)
}

func (s *OrderServiceSuite) TestGuardOutageDoesNotBlockOrders() {
	s.guard.err = errors.New("redis: connection refused")

	_, err := s.svc.CreateOrder(context.Background(), s.member, CreateOrderParams{
		OptionID:       testOptionID,
		Quantity:       1,
		IdempotencyKey: "k-1",
	})
	s.NoError(err)
}

func (s *OrderServiceSuite) TestGetOrderHidesOtherMembersOrders() {
	order, err := s.order(1)
	s.Require().NoError(err)

	got, err := s.svc.GetOrder(context.Background(), s.member, order.ID)
	s.Require().NoError(err)
	s.Equal(order, got)

	_, err = s.svc.GetOrder(context.Background(), domain.Member{ID: 2}, order.ID)
	s.ErrorIs(err, ErrOrderNotFound)

	page, err := s.svc.GetOrders(context.Background(), domain.Member{ID: 2}, 0, 10)
	s.Require().NoError(err)
	s.Empty(page.Items)
}

func TestOrderService_NotificationFailureKeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMessageClient(ctrl)

	attempted := make(chan struct{})
	client.EXPECT().SendToMe(gomock.Any(), "handle", gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			close(attempted)
			return errors.New("kakao: 503 service unavailable")
		})

	m := metrics.New(prometheus.NewRegistry())
	notifier := NewNotifier(client, 1, 4, time.Second, m)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = notifier.Run(ctx)
		close(stopped)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	store := newLedgerStore()
	store.options[testOptionID] = domain.Option{
		ID:       testOptionID,
		Quantity: 10,
		Product:  domain.Product{ID: 1, Price: testUnitPrice},
	}
	member := domain.Member{ID: 1, NotificationHandle: "handle"}
	store.points[member.ID] = 1000

	svc := NewOrderService(store, store, store, notifier, &memoryGuard{keys: map[string]bool{}}, m)

	order, err := svc.CreateOrder(context.Background(), member, CreateOrderParams{OptionID: testOptionID, Quantity: 2})
	require.NoError(t, err)

	select {
	case <-attempted:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never attempted")
	}

	got, err := svc.GetOrder(context.Background(), member, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.Equal(t, 8, store.stock(testOptionID))
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.Notifications.WithLabelValues(metrics.NotificationFailed)) == 1
	}, time.Second, 10*time.Millisecond)
}
