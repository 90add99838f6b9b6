package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-employee-service/internal/platform/db/postgres"
)

const (
	saveEmployeeSQL = `
        INSERT INTO employees (id, first_name, last_name, email)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
           SET first_name = EXCLUDED.first_name,
               last_name = EXCLUDED.last_name,
               email = EXCLUDED.email
        RETURNING id, first_name, last_name, email
    `

	findEmployeeByIDSQL = `
        SELECT id, first_name, last_name, email
          FROM employees
         WHERE id = $1
         LIMIT 1
    `

	findAllEmployeesSQL = `
        SELECT id, first_name, last_name, email
          FROM employees
    `

	deleteEmployeeSQL = `DELETE FROM employees WHERE id = $1`
)

// EmployeeRepository は PostgreSQL の employees テーブルを社員ドキュメントストアとして扱います。
type EmployeeRepository struct {
	pool  pgdb.Queryer
	newID func() string
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, newID: uuid.NewString}
}

// Save は社員を upsert します。ID が空の場合は UUID を採番します。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	id := e.ID
	if id == "" {
		id = r.newID()
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, saveEmployeeSQL, id, e.FirstName, e.LastName, e.Email)

	saved, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return saved, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, findEmployeeByIDSQL, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindAll は全社員を行単位で読み出します。range のたびにクエリを発行します。
func (r *EmployeeRepository) FindAll(ctx context.Context) iter.Seq2[*employee.Employee, error] {
	return func(yield func(*employee.Employee, error) bool) {
		exec := pgdb.QueryerFromContext(ctx, r.pool)
		rows, err := exec.Query(ctx, findAllEmployeesSQL)
		if err != nil {
			yield(nil, translateEmployeePgError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			emp, err := scanEmployee(rows)
			if err != nil {
				yield(nil, translateEmployeePgError(err))
				return
			}
			if !yield(emp, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, translateEmployeePgError(err))
		}
	}
}

// DeleteByID は社員を削除します。該当行がなくてもエラーにしません。
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, deleteEmployeeSQL, id); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var emp employee.Employee
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email); err != nil {
		return nil, err
	}
	return &emp, nil
}

// TranslateError は pgx のエラーを社員ドメインのエラーへ変換します。
// トランザクションの開始・コミット失敗にも同じ変換を適用するために公開しています。
func TranslateError(err error) error {
	return translateEmployeePgError(err)
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", employee.ErrStoreUnavailable, err)
	}

	return err
}
