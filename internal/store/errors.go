package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when no row matches the requested id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmailAlreadyExists is returned when a customer cannot be created
	// because another customer already uses the email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrCustomerNotFound is returned when no customer matches an email.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateKey is returned for unique constraint violations other
	// than the customer email.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingReference is returned when a write references a related
	// row that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")

	// ErrUnsupportedDriver is returned by NewConnect for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrDenylist wraps failures of the token denylist backend.
	ErrDenylist = errors.New("token denylist error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
