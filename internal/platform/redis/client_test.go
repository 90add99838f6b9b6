package redis

import (
	"testing"

	"github.com/ogurasousui/codex-employee-service/internal/platform/config"
)

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	opts := BuildOptions(config.RedisConfig{Addr: "cache:6379", Password: "secret", DB: 3})
	if opts.Addr != "cache:6379" || opts.Password != "secret" || opts.DB != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.TLSConfig != nil {
		t.Fatal("expected TLS to be disabled by default")
	}

	tlsOpts := BuildOptions(config.RedisConfig{Addr: "cache:6380", TLS: true})
	if tlsOpts.TLSConfig == nil {
		t.Fatal("expected TLS config when tls is enabled")
	}
}
