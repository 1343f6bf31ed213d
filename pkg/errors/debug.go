package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Report flattens an error chain into loggable fields. Server-side Postgres
// diagnostics are captured here so they land in logs, never in API
// responses.
type Report struct {
	Summary string
	Code    Code
	Chain   []string

	PG PGDiagnostics
}

// PGDiagnostics carries the driver-reported details of a Postgres failure,
// whichever of the two drivers produced it.
type PGDiagnostics struct {
	Code       string
	Message    string
	Detail     string
	Table      string
	Column     string
	Constraint string
}

// Describe walks the error chain and collects everything worth logging.
func Describe(err error) Report {
	if err == nil {
		return Report{}
	}

	report := Report{Summary: err.Error()}
	if typed := As(err); typed != nil {
		report.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		report.Chain = append(report.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		report.PG = PGDiagnostics{
			Code:       pgxErr.Code,
			Message:    pgxErr.Message,
			Detail:     pgxErr.Detail,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Constraint: pgxErr.ConstraintName,
		}
		return report
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		report.PG = PGDiagnostics{
			Code:       string(pqErr.Code),
			Message:    pqErr.Message,
			Detail:     pqErr.Detail,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Constraint: pqErr.Constraint,
		}
	}
	return report
}
