package services

import (
	"context"
	"fmt"

	"estatehub/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// TransactionService runs a listing workflow (create, status decision, update
// proposal or approval) as a single unit of work.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("transactionService"),
	}
}

// Execute commits when fn returns nil. Any error from fn rolls back every write,
// including rows created earlier in fn, and is returned unchanged so callers can
// match sentinels with errors.Is. A panic in fn is rolled back and returned as an error.
func (ts *TransactionService) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) (err error) {
	log := ts.log.TraceFromContext(ctx).Function("Execute")

	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("could not start transaction", tx.Error)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rollbackErr := ts.rollback(tx, log); rollbackErr != nil {
			panic(fmt.Sprintf("rollback after panic failed: %v (panic: %v)", rollbackErr, r))
		}
		err = log.ErrMsg(fmt.Sprintf("transaction aborted by panic: %v", r))
	}()

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := ts.rollback(tx, log); rollbackErr != nil {
			return log.Error("rollback failed", "rollbackError", rollbackErr, "cause", err)
		}
		log.Debug("rolled back", "cause", err)
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return log.Err("could not commit transaction", err)
	}
	return nil
}

func (ts *TransactionService) rollback(tx *gorm.DB, log logger.Logger) error {
	if err := tx.Rollback().Error; err != nil {
		log.Er("rollback failed", err)
		return err
	}
	return nil
}
