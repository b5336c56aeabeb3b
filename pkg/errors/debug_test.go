package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDumpCapturesPgxDetails(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "bulk_discounts_pkey",
		TableName:      "bulk_discounts",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeDependency, fmt.Errorf("insert: %w", pgErr), "insert bulk discount")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGTable != "bulk_discounts" || dump.PGConstraint != "bulk_discounts_pkey" {
		t.Fatalf("pg details not captured: %+v", dump)
	}
	if len(dump.Chain) < 3 {
		t.Fatalf("expected the full wrap chain, got %v", dump.Chain)
	}
}

func TestDumpCapturesPqDetails(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Table: "invoice_items", Constraint: "invoice_items_item_id_fkey"}
	dump := Dump(pqErr)
	if dump.PGCode != "23503" || dump.PGTable != "invoice_items" {
		t.Fatalf("pq details not captured: %+v", dump)
	}
	if dump.Code != "" {
		t.Fatalf("untyped error should not carry a code, got %s", dump.Code)
	}
}

func TestDumpNil(t *testing.T) {
	if got := Dump(nil); got.TopMessage != "" || len(got.Chain) != 0 {
		t.Fatalf("expected empty dump, got %+v", got)
	}
}

func TestDumpCapturesSQLiteCodes(t *testing.T) {
	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}
	dump := Dump(fmt.Errorf("insert: %w", liteErr))
	if dump.SQLiteCode != int(sqlite3.ErrConstraint) || dump.SQLiteExtended != int(sqlite3.ErrConstraintCheck) {
		t.Fatalf("sqlite details not captured: %+v", dump)
	}
	if dump.PGCode != "" {
		t.Fatalf("unexpected pg code %q", dump.PGCode)
	}
}

func TestIsConstraintViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", fmt.Errorf("boom"), false},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pq check", &pq.Error{Code: "23514"}, true},
		{"pg syntax", &pgconn.PgError{Code: "42601"}, false},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false},
	}
	for _, tc := range cases {
		if got := IsConstraintViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}
