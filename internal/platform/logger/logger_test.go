package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "dmphub/internal/platform/testkit"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   nonsense   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_Get_Named_C_WithRequest(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:     "info",
		Format:    "json",
		Service:   "dmphub",
		Component: "root",
		Writer:    &buf,
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("edge").Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-1", "pt-BR")
	C(ctx).Info().Msg("ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, `"component":"edge"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"locale":"pt-BR"`)
}

func TestCWithEmptyContextIsRoot(t *testing.T) {
	l := C(context.Background())
	if l == nil {
		t.Fatal("C returned nil")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	opt := FromEnv()
	if opt.Service != "dmphub" {
		t.Fatalf("Service = %q", opt.Service)
	}
	if opt.Level == "" || opt.Format == "" {
		t.Fatalf("unexpected empty defaults: %+v", opt)
	}
}
