package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/models"
)

var customerColumns = []string{
	"id_customer", "firstname", "lastname", "email", "passwd", "active", "newsletter", "date_add", "date_upd",
}

// customerRepository is the SQL implementation of [CustomerRepository]
// over the "customers" table.
type customerRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCustomerRepository constructs a [CustomerRepository] backed by db.
func NewCustomerRepository(db *DB, logger *logger.Logger) CustomerRepository {
	logger.Debug().Msg("creating customer repository")
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCustomer inserts customer and returns it with the assigned id.
// A duplicate email, compared case-insensitively, yields
// [ErrEmailAlreadyExists].
func (r *customerRepository) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Insert(customer.TableName()).
		Columns(customerColumns[1:]...).
		Values(customer.FirstName, customer.LastName, customer.Email, customer.PasswordHash,
			customer.Active, customer.Newsletter, customer.CreatedAt, customer.UpdatedAt).
		Suffix("RETURNING id_customer").
		ToSql()
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&customer.ID); err != nil {
		log.Err(err).Str("func", "*customerRepository.CreateCustomer").Msg("error inserting customer")
		if errors.Is(r.db.classify(err), ErrDuplicateKey) {
			return models.Customer{}, ErrEmailAlreadyExists
		}
		return models.Customer{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return customer, nil
}

// FindCustomerByEmail returns the customer owning email, ignoring case.
func (r *customerRepository) FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(customerColumns...).
		From(models.Customer{}.TableName()).
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		ToSql()
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var c models.Customer
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Active, &c.Newsletter, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, ErrCustomerNotFound
		}
		log.Err(err).Str("func", "*customerRepository.FindCustomerByEmail").Msg("error selecting customer")
		return models.Customer{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c, nil
}
