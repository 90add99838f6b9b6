package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txKey struct{}

// Queryer は pgx.Tx と pgxpool.Pool の共通部分です。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// txStarter は pgxpool.Pool と pgxmock の双方が満たします。
type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxOption は TransactionManager の設定を変更します。
type TxOption func(*TransactionManager)

// WithErrorTranslator は開始・コミット失敗時のエラーを変換する関数を設定します。
// リポジトリと同じ変換を渡すと、接続断がトランザクション経由でも同じエラーになります。
func WithErrorTranslator(fn func(error) error) TxOption {
	return func(m *TransactionManager) {
		if fn != nil {
			m.translate = fn
		}
	}
}

// WithTxLogger はロールバック失敗を記録するロガーを設定します。
func WithTxLogger(log *slog.Logger) TxOption {
	return func(m *TransactionManager) {
		if log != nil {
			m.log = log
		}
	}
}

// TransactionManager は fn をトランザクション内で実行し、pgx.Tx をコンテキストで受け渡します。
type TransactionManager struct {
	pool      txStarter
	translate func(error) error
	log       *slog.Logger
}

// NewTransactionManager は TransactionManager を生成します。pool が nil の場合は nil を返します。
func NewTransactionManager(pool txStarter, opts ...TxOption) *TransactionManager {
	if pool == nil {
		return nil
	}
	m := &TransactionManager{
		pool:      pool,
		translate: func(err error) error { return err },
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithinReadOnly は読み取り専用トランザクションで fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, pgx.ReadOnly, fn)
}

// WithinReadWrite は読み書きトランザクションで fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, pgx.ReadWrite, fn)
}

func (m *TransactionManager) run(ctx context.Context, mode pgx.TxAccessMode, fn func(context.Context) error) (err error) {
	if fn == nil {
		return errors.New("postgres: transaction function is required")
	}
	// nil のマネージャーや入れ子呼び出しは外側にそのまま参加する
	if m == nil || InTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: mode})
	if err != nil {
		return m.translate(fmt.Errorf("postgres: begin tx: %w", err))
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.Warn("rollback failed", slog.Any("error", rbErr))
			err = errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return m.translate(fmt.Errorf("postgres: commit: %w", err))
	}
	return nil
}

// InTransaction はコンテキストがトランザクションを保持しているかを返します。
func InTransaction(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// QueryerFromContext はトランザクション中であればその pgx.Tx を、そうでなければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}
