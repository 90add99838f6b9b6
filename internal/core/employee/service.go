package employee

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	events EventPublisher
	log    *slog.Logger
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in Dto) (*Dto, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Dto, error)
	ListEmployees(ctx context.Context) iter.Seq2[*Dto, error]
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Dto, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithEventPublisher は変更イベントの送信先を設定します。
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:   repo,
		clock:  clock,
		tx:     tx,
		events: noopEventPublisher{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// UpdateEmployeeInput は社員更新時の入力です。Employee.ID は参照されません。
type UpdateEmployeeInput struct {
	ID       string
	Employee Dto
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// CreateEmployee は社員を保存し、保存結果を返します。
// ID が空の場合はストアが採番します。空白のみの ID は ErrInvalidID です。
func (s *Service) CreateEmployee(ctx context.Context, in Dto) (*Dto, error) {
	if in.ID != "" {
		if err := validateID(in.ID); err != nil {
			return nil, err
		}
	}

	saved, err := s.repo.Save(ctx, ToEmployee(in))
	if err != nil {
		return nil, err
	}

	created := ToDto(saved)
	s.publish(ctx, EventCreated, created.ID, created)
	return created, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Dto, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	found, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return ToDto(found), nil
}

// ListEmployees は全社員をストア定義の順序で返します。
func (s *Service) ListEmployees(ctx context.Context) iter.Seq2[*Dto, error] {
	return func(yield func(*Dto, error) bool) {
		for emp, err := range s.repo.FindAll(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(ToDto(emp), nil) {
				return
			}
		}
	}
}

// UpdateEmployee は氏名とメールアドレスを上書きします。
// 対象が存在しない場合は ErrEmployeeNotFound を返し、何も保存しません。
// 取得から保存までの間に楽観ロックは行わないため、同時更新は後勝ちになります。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Dto, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.FirstName = in.Employee.FirstName
		existing.LastName = in.Employee.LastName
		existing.Email = in.Employee.Email

		result, err := s.repo.Save(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	dto := ToDto(updated)
	s.publish(ctx, EventUpdated, dto.ID, dto)
	return dto, nil
}

// DeleteEmployee は社員を削除します。存在しない ID でも成功します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, in.ID); err != nil {
		return err
	}

	s.publish(ctx, EventDeleted, in.ID, nil)
	return nil
}

func (s *Service) publish(ctx context.Context, typ EventType, id string, dto *Dto) {
	event := Event{
		Type:       typ,
		EmployeeID: id,
		Employee:   dto,
		OccurredAt: s.clock.Now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish employee event", "type", string(typ), "employee_id", id, "error", err)
	}
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return nil
}
