package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/portalgate/internal/portal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                   { return &usersRepo{db: t.tx} }
func (t *txStore) Employees() store.Employees           { return &employeesRepo{db: t.tx} }
func (t *txStore) SalesReps() store.SalesReps           { return &salesRepsRepo{db: t.tx} }
func (t *txStore) Customers() store.Customers           { return &customersRepo{db: t.tx} }
func (t *txStore) Projects() store.Projects             { return &projectsRepo{db: t.tx} }
func (t *txStore) Tasks() store.Tasks                   { return &tasksRepo{db: t.tx} }
func (t *txStore) Timesheets() store.Timesheets         { return &timesheetsRepo{db: t.tx} }
func (t *txStore) LeaveRequests() store.LeaveRequests   { return &leaveRequestsRepo{db: t.tx} }
func (t *txStore) PayrollItems() store.PayrollItems     { return &payrollItemsRepo{db: t.tx} }
func (t *txStore) Licenses() store.Licenses             { return &licensesRepo{db: t.tx} }
func (t *txStore) Documents() store.Documents           { return &documentsRepo{db: t.tx} }
func (t *txStore) SessionRecords() store.SessionRecords { return &sessionRecordsRepo{db: t.tx} }
func (t *txStore) DailyActivity() store.DailyActivity   { return &dailyActivityRepo{db: t.tx} }
func (t *txStore) WebSessions() store.WebSessions       { return &webSessionsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
