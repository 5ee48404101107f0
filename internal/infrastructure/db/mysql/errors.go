package mysql

import (
	"database/sql/driver"
	"errors"
	"net"

	gosql "github.com/go-sql-driver/mysql"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// MySQL server error numbers that mean the store rejected a write. They are
// reported as one constraint fault carrying the server's message, not
// decoded into finer categories.
const (
	errDuplicateEntry   = 1062 // unique key violation
	errNoDefault        = 1364 // field without default omitted
	errRowIsReferenced  = 1451 // FK violation on delete
	errNoReferencedRow  = 1452 // FK violation on insert/update
	errBadNull          = 1048 // NOT NULL violation
	errSignalException  = 1644 // business trigger SIGNAL
	errCheckViolated    = 3819 // CHECK constraint violation
)

// classifyErr maps driver failures onto the fault taxonomy. Anything not
// recognized is passed through untouched so callers can still unwrap it.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}

	var f *domain.Fault
	if errors.As(err, &f) {
		return err
	}

	var myErr *gosql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry, errRowIsReferenced, errNoReferencedRow,
			errBadNull, errNoDefault, errSignalException, errCheckViolated:
			return domain.Constraintf(err, "database rejected the operation")
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return domain.Connectivityf(err, "database unreachable")
	}

	return err
}
