package redis

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
)

// document は Redis に保存する社員 JSON の形です。
type document struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// EmployeeRepository は社員を Redis 上の JSON ドキュメントとして保持します。
// ドキュメントは <prefix>employee:<id> に、ID の一覧は <prefix>employees セットに格納します。
type EmployeeRepository struct {
	client goredis.Cmdable
	prefix string
	newID  func() string
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(client goredis.Cmdable, keyPrefix string) *EmployeeRepository {
	return &EmployeeRepository{client: client, prefix: keyPrefix, newID: uuid.NewString}
}

func (r *EmployeeRepository) documentKey(id string) string {
	return r.prefix + "employee:" + id
}

func (r *EmployeeRepository) indexKey() string {
	return r.prefix + "employees"
}

// Save はドキュメントとインデックスを MULTI/EXEC でまとめて書き込みます。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	doc := document{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
	if doc.ID == "" {
		doc.ID = r.newID()
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("redis: encode employee %s: %w", doc.ID, err)
	}

	if _, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, r.documentKey(doc.ID), raw, 0)
		pipe.SAdd(ctx, r.indexKey(), doc.ID)
		return nil
	}); err != nil {
		return nil, translateRedisError(err)
	}

	return doc.toEmployee(), nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	raw, err := r.client.Get(ctx, r.documentKey(id)).Bytes()
	if err != nil {
		return nil, translateRedisError(err)
	}
	return decode(id, raw)
}

// FindAll はインデックスの ID ごとにドキュメントを取得します。
// インデックスに残っているがドキュメントが消えている ID は読み飛ばします。
func (r *EmployeeRepository) FindAll(ctx context.Context) iter.Seq2[*employee.Employee, error] {
	return func(yield func(*employee.Employee, error) bool) {
		ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
		if err != nil {
			yield(nil, translateRedisError(err))
			return
		}

		for _, id := range ids {
			raw, err := r.client.Get(ctx, r.documentKey(id)).Bytes()
			if errors.Is(err, goredis.Nil) {
				continue
			}
			if err != nil {
				yield(nil, translateRedisError(err))
				return
			}

			emp, err := decode(id, raw)
			if !yield(emp, err) || err != nil {
				return
			}
		}
	}
}

// DeleteByID はドキュメントとインデックスのエントリを削除します。存在しなくても成功します。
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.documentKey(id))
		pipe.SRem(ctx, r.indexKey(), id)
		return nil
	}); err != nil {
		return translateRedisError(err)
	}
	return nil
}

func (d document) toEmployee() *employee.Employee {
	return &employee.Employee{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

func decode(id string, raw []byte) (*employee.Employee, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("redis: decode employee %s: %w", id, err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return doc.toEmployee(), nil
}

func translateRedisError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, goredis.Nil) {
		return employee.ErrEmployeeNotFound
	}

	var netErr net.Error
	if errors.Is(err, goredis.ErrClosed) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", employee.ErrStoreUnavailable, err)
	}

	return err
}
