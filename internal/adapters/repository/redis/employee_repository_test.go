package redis

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/go-redis/redismock/v9"
	json "github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
)

func mustEncode(t *testing.T, doc document) []byte {
	t.Helper()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode document: %v", err)
	}
	return raw
}

func TestEmployeeRepository_Save_AssignsID(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "test:")
	repo.newID = func() string { return "generated-id" }

	raw := mustEncode(t, document{ID: "generated-id", FirstName: "Kirk", LastName: "Douglas", Email: "kid@gmail.com"})

	mock.ExpectTxPipeline()
	mock.ExpectSet("test:employee:generated-id", raw, 0).SetVal("OK")
	mock.ExpectSAdd("test:employees", "generated-id").SetVal(1)
	mock.ExpectTxPipelineExec()

	saved, err := repo.Save(context.Background(), &employee.Employee{FirstName: "Kirk", LastName: "Douglas", Email: "kid@gmail.com"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.ID != "generated-id" || saved.Email != "kid@gmail.com" {
		t.Fatalf("unexpected saved employee: %+v", saved)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "")

	raw := mustEncode(t, document{ID: "emp-1", FirstName: "Kirk", LastName: "Douglas", Email: "kid@gmail.com"})
	mock.ExpectGet("employee:emp-1").SetVal(string(raw))

	found, err := repo.FindByID(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found.ID != "emp-1" || found.FirstName != "Kirk" {
		t.Fatalf("unexpected employee: %+v", found)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "")

	mock.ExpectGet("employee:missing").RedisNil()

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_FindAll_SkipsStaleIndex(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "")

	raw := mustEncode(t, document{ID: "emp-1", FirstName: "Kirk"})
	mock.ExpectSMembers("employees").SetVal([]string{"emp-1", "emp-gone"})
	mock.ExpectGet("employee:emp-1").SetVal(string(raw))
	mock.ExpectGet("employee:emp-gone").RedisNil()

	var got []*employee.Employee
	for emp, err := range repo.FindAll(context.Background()) {
		if err != nil {
			t.Fatalf("FindAll yielded error: %v", err)
		}
		got = append(got, emp)
	}

	if len(got) != 1 || got[0].ID != "emp-1" {
		t.Fatalf("expected only emp-1, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindAll_Empty(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "")

	mock.ExpectSMembers("employees").SetVal([]string{})

	for emp, err := range repo.FindAll(context.Background()) {
		t.Fatalf("expected no items, got %+v / %v", emp, err)
	}
}

func TestEmployeeRepository_DeleteByID_Idempotent(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	repo := NewEmployeeRepository(db, "")

	for _, removed := range []int64{1, 0} {
		mock.ExpectTxPipeline()
		mock.ExpectDel("employee:emp-1").SetVal(removed)
		mock.ExpectSRem("employees", "emp-1").SetVal(removed)
		mock.ExpectTxPipelineExec()
	}

	for i := range 2 {
		if err := repo.DeleteByID(context.Background(), "emp-1"); err != nil {
			t.Fatalf("delete #%d returned error: %v", i+1, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateRedisError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateRedisError(goredis.Nil), employee.ErrEmployeeNotFound) {
		t.Fatal("expected redis.Nil to map to ErrEmployeeNotFound")
	}

	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if !errors.Is(translateRedisError(dialErr), employee.ErrStoreUnavailable) {
		t.Fatal("expected network error to map to ErrStoreUnavailable")
	}
	if !errors.Is(translateRedisError(goredis.ErrClosed), employee.ErrStoreUnavailable) {
		t.Fatal("expected closed client to map to ErrStoreUnavailable")
	}

	other := errors.New("other")
	if translateRedisError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
}
