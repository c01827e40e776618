package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("FROM information_schema.tables").WithArgs("payments").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("payments"))
	mock.ExpectQuery("FROM information_schema.tables").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(mockDB, "payments") {
		t.Fatal("expected payments table to be reported present")
	}
	if HasTable(mockDB, "missing") {
		t.Fatal("expected missing table to be reported absent")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasColumn(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("FROM information_schema.columns").WithArgs("payments", "completed_at").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("completed_at"))

	if !HasColumn(mockDB, "payments", "completed_at") {
		t.Fatal("expected completed_at column to be reported present")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
