package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/codex-employee-service/internal/platform/config"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "localhost",
		Port:     15432,
		User:     "user",
		Password: "pass",
		Name:     "employees",
		SSLMode:  "disable",
	}
}

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := testDatabaseConfig()
	dbCfg.MaxOpenConns = 20
	dbCfg.MaxIdleConns = 5
	dbCfg.ConnMaxLifetime = 30 * time.Minute
	dbCfg.ConnMaxIdleTime = 10 * time.Minute

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 || poolCfg.MinConns != 5 {
		t.Errorf("unexpected conns: max=%d min=%d", poolCfg.MaxConns, poolCfg.MinConns)
	}
	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}
	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}
	if poolCfg.ConnConfig.Database != "employees" {
		t.Errorf("expected database employees, got %s", poolCfg.ConnConfig.Database)
	}
	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != ApplicationName {
		t.Errorf("expected application_name %s, got %s", ApplicationName, got)
	}
	if poolCfg.ConnConfig.ConnectTimeout != defaultConnectTimeout {
		t.Errorf("expected connect timeout %v, got %v", defaultConnectTimeout, poolCfg.ConnConfig.ConnectTimeout)
	}
}

func TestBuildPoolConfig_ClampsMinConns(t *testing.T) {
	t.Parallel()

	dbCfg := testDatabaseConfig()
	dbCfg.MaxOpenConns = 4
	dbCfg.MaxIdleConns = 10

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}
	if poolCfg.MinConns != 4 {
		t.Fatalf("expected MinConns clamped to 4, got %d", poolCfg.MinConns)
	}
}
