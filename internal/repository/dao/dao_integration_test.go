//go:build integration

package dao

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=gift",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=gift",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %s", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://gift:secret@%s/gift?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %s", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %s", err)
	}

	os.Exit(code)
}

type DAOSuite struct {
	suite.Suite

	members *MemberDAO
	catalog *CatalogDAO
	orders  *OrderDAO
	wishes  *WishDAO

	member  Member
	product Product
}

func TestDAOSuite(t *testing.T) {
	suite.Run(t, new(DAOSuite))
}

func (s *DAOSuite) SetupTest() {
	s.Require().NoError(testDB.Exec("TRUNCATE orders, wishes, options, products, categories, members RESTART IDENTITY CASCADE").Error)

	s.members = NewMemberDAO(testDB)
	s.catalog = NewCatalogDAO(testDB)
	s.orders = NewOrderDAO(testDB)
	s.wishes = NewWishDAO(testDB)

	ctx := context.Background()
	password := "hashed"

	member, err := s.members.Insert(ctx, Member{Email: "buyer@example.com", Password: &password})
	s.Require().NoError(err)
	_, err = s.members.CreditPoint(ctx, member.ID, 100000)
	s.Require().NoError(err)
	s.member = member

	category, err := s.catalog.InsertCategory(ctx, Category{Name: "교환권", Color: "#6c95d1", ImageURL: "https://example.com/c.png"})
	s.Require().NoError(err)

	product, err := s.catalog.InsertProduct(ctx,
		Product{Name: "아이스 아메리카노", Price: 4500, ImageURL: "https://example.com/p.png", CategoryID: category.ID},
		[]Option{{Name: "Tall", Quantity: 10}, {Name: "Grande", Quantity: 5}},
	)
	s.Require().NoError(err)
	s.product = product
}

func (s *DAOSuite) TestMember_DuplicateEmail() {
	_, err := s.members.Insert(context.Background(), Member{Email: "buyer@example.com"})

	s.ErrorIs(err, ErrMemberEmailExists)
}

func (s *DAOSuite) TestSubtractQuantity() {
	ctx := context.Background()
	optionID := s.product.Options[0].ID

	option, err := s.catalog.SubtractQuantity(ctx, optionID, 7)
	s.Require().NoError(err)
	s.Equal(3, option.Quantity)
	s.Equal(4500, option.Product.Price)

	_, err = s.catalog.SubtractQuantity(ctx, optionID, 5)
	s.ErrorIs(err, ErrInsufficientStock)

	option, err = s.catalog.FindOptionByID(ctx, optionID)
	s.Require().NoError(err)
	s.Equal(3, option.Quantity)

	_, err = s.catalog.SubtractQuantity(ctx, 9999, 1)
	s.ErrorIs(err, ErrOptionNotFound)
}

func (s *DAOSuite) TestSubtractQuantity_Concurrent() {
	ctx := context.Background()
	optionID := s.product.Options[0].ID

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.catalog.SubtractQuantity(ctx, optionID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(s.T(), err, ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	s.Equal(10, succeeded)

	option, err := s.catalog.FindOptionByID(ctx, optionID)
	s.Require().NoError(err)
	s.Zero(option.Quantity)
}

func (s *DAOSuite) TestRestoreQuantity() {
	ctx := context.Background()
	optionID := s.product.Options[0].ID

	_, err := s.catalog.SubtractQuantity(ctx, optionID, 4)
	s.Require().NoError(err)
	s.Require().NoError(s.catalog.RestoreQuantity(ctx, optionID, 4))

	option, err := s.catalog.FindOptionByID(ctx, optionID)
	s.Require().NoError(err)
	s.Equal(10, option.Quantity)

	s.ErrorIs(s.catalog.RestoreQuantity(ctx, 9999, 1), ErrOptionNotFound)
}

func (s *DAOSuite) TestChargePoint_Concurrent() {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.members.ChargePoint(ctx, s.member.ID, 10000)
		}()
	}
	wg.Wait()

	member, err := s.members.FindByID(ctx, s.member.ID)
	s.Require().NoError(err)
	s.Zero(member.Point)

	_, err = s.members.ChargePoint(ctx, s.member.ID, 1)
	s.ErrorIs(err, ErrInsufficientBalance)
}

func (s *DAOSuite) TestDeleteOption_KeepsLastOption() {
	ctx := context.Background()
	options := s.product.Options

	s.Require().NoError(s.catalog.DeleteOption(ctx, s.product.ID, options[1].ID))
	s.ErrorIs(s.catalog.DeleteOption(ctx, s.product.ID, options[0].ID), ErrLastOptionOfProduct)
	s.ErrorIs(s.catalog.DeleteOption(ctx, s.product.ID, options[1].ID), ErrOptionNotFound)
}

func (s *DAOSuite) TestInsertOption_DuplicateName() {
	_, err := s.catalog.InsertOption(context.Background(), Option{ProductID: s.product.ID, Name: "Tall", Quantity: 1})

	s.ErrorIs(err, ErrOptionNameExists)
}

func (s *DAOSuite) TestOrders_NewestFirst() {
	ctx := context.Background()
	optionID := s.product.Options[0].ID

	for i := 1; i <= 3; i++ {
		_, err := s.orders.Insert(ctx, Order{OptionID: optionID, MemberID: s.member.ID, Quantity: i, Amount: 4500 * i})
		s.Require().NoError(err)
	}

	orders, total, err := s.orders.FindByMemberID(ctx, s.member.ID, 2, 0)
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(orders, 2)
	s.Equal(3, orders[0].Quantity)
}

func (s *DAOSuite) TestWish_InsertIsIdempotent() {
	ctx := context.Background()

	first, created, err := s.wishes.Insert(ctx, Wish{MemberID: s.member.ID, ProductID: s.product.ID})
	s.Require().NoError(err)
	s.True(created)

	second, created, err := s.wishes.Insert(ctx, Wish{MemberID: s.member.ID, ProductID: s.product.ID})
	require.NoError(s.T(), err)
	s.False(created)
	s.Equal(first.ID, second.ID)
}

func (s *DAOSuite) TestDelete_ReferencedByOrders() {
	ctx := context.Background()
	options := s.product.Options

	_, err := s.orders.Insert(ctx, Order{OptionID: options[1].ID, MemberID: s.member.ID, Quantity: 1, Amount: 4500})
	s.Require().NoError(err)

	s.ErrorIs(s.catalog.DeleteOption(ctx, s.product.ID, options[1].ID), ErrReferencedByOrders)
	s.ErrorIs(s.catalog.DeleteProduct(ctx, s.product.ID), ErrReferencedByOrders)
	s.ErrorIs(s.catalog.DeleteCategory(ctx, s.product.CategoryID), ErrCategoryHasProducts)

	option, err := s.catalog.FindOptionByID(ctx, options[1].ID)
	s.Require().NoError(err)
	s.Equal(5, option.Quantity)
}

func (s *DAOSuite) TestCreditPoint_OutOfRange() {
	ctx := context.Background()

	_, err := s.members.CreditPoint(ctx, s.member.ID, math.MaxInt)
	s.ErrorIs(err, ErrAmountOutOfRange)

	member, err := s.members.FindByID(ctx, s.member.ID)
	s.Require().NoError(err)
	s.Equal(100000, member.Point)
}
