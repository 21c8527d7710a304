package dao

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vietanh2810/gift-api/internal/domain"
)

var (
	ErrMemberNotFound      = domain.ErrMemberNotFound
	ErrMemberEmailExists   = domain.ErrMemberEmailExists
	ErrCategoryNotFound    = domain.ErrCategoryNotFound
	ErrProductNotFound     = domain.ErrProductNotFound
	ErrOptionNotFound      = domain.ErrOptionNotFound
	ErrOptionNameExists    = domain.ErrOptionNameExists
	ErrLastOptionOfProduct = domain.ErrLastOptionOfProduct
	ErrOrderNotFound       = domain.ErrOrderNotFound
	ErrWishNotFound        = domain.ErrWishNotFound
	ErrInsufficientStock   = domain.ErrInsufficientStock
	ErrInsufficientBalance = domain.ErrInsufficientBalance
	ErrAmountOutOfRange    = domain.ErrAmountOutOfRange
	ErrReferencedByOrders  = domain.ErrReferencedByOrders
	ErrCategoryHasProducts = domain.ErrCategoryHasProducts
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKeyViolation reports whether err is a delete blocked by a row that
// still references the deleted one.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlRowIsReferenced {
		return true
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

// referencedAs translates a foreign key violation into the given sentinel.
func referencedAs(err, sentinel error) error {
	if isForeignKeyViolation(err) {
		return sentinel
	}

	return err
}

// notFoundAs translates gorm's missing-row error into the given sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}

	return err
}
