//go:build unit

package dbmock

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockDBTX is a testify mock of db.DBTX. Expectations match on the SQL text
// and the argument slice, e.g. On("Exec", mock.Anything, mock.Anything, mock.Anything).
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, sql, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgx.Row)
}

// Row is a canned pgx.Row. Values are assigned to Scan destinations in order.
type Row struct {
	Values []any
	Err    error
}

func NewRow(values ...any) *Row {
	return &Row{Values: values}
}

func ErrRow(err error) *Row {
	return &Row{Err: err}
}

func (r *Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	if len(dest) != len(r.Values) {
		return fmt.Errorf("dbmock: scan expects %d values, row has %d", len(dest), len(r.Values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		v := reflect.ValueOf(r.Values[i])
		if !v.IsValid() {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("dbmock: value %d of type %s cannot be scanned into %s", i, v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}

// CommandTag builds a tag reporting the given number of affected rows.
func CommandTag(op string, rows int64) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("%s %d", op, rows))
}
