package store

import "github.com/MKhiriev/go-rest-api/internal/logger"

// Repositories groups every repository the services depend on.
type Repositories struct {
	RecordRepository   RecordRepository
	CustomerRepository CustomerRepository
	Denylist           Denylist
}

// NewRepositories builds the SQL repositories on db next to denylist.
func NewRepositories(db *DB, denylist Denylist, log *logger.Logger) *Repositories {
	return &Repositories{
		RecordRepository:   NewRecordRepository(db, log),
		CustomerRepository: NewCustomerRepository(db, log),
		Denylist:           denylist,
	}
}
