package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDescribeNilError(t *testing.T) {
	report := Describe(nil)
	if report.Summary != "" || report.Chain != nil {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestDescribeCollectsCodeAndChain(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(CodeDependency, cause, "ping database")

	report := Describe(err)
	if report.Code != CodeDependency {
		t.Fatalf("unexpected code %s", report.Code)
	}
	if len(report.Chain) < 2 {
		t.Fatalf("expected wrapped chain, got %v", report.Chain)
	}
	if report.Summary == "" {
		t.Fatal("expected a summary")
	}
}

func TestDescribeExtractsPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "reviews_product_user_key",
		TableName:      "reviews",
	}
	err := Wrap(CodeInternal, pgErr, "create review")

	report := Describe(err)
	if report.PG.Code != "23505" || report.PG.Constraint != "reviews_product_user_key" {
		t.Fatalf("unexpected diagnostics %+v", report.PG)
	}
	if report.PG.Table != "reviews" {
		t.Fatalf("unexpected table %q", report.PG.Table)
	}
}
