package raw

import (
	"testing"
)

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " dmphub ")
	t.Setenv("EDGE_PORT", " 4000 ")

	root := New()
	edge := root.Prefix("EDGE_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root trims whitespace", conf: root, key: "APP_NAME", def: "x", want: "dmphub"},
		{name: "prefixed hit", conf: edge, key: "PORT", def: "x", want: "4000"},
		{name: "missing returns default", conf: edge, key: "MISSING", def: "defv", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	edge := New().Prefix("EDGE_")

	t.Setenv("EDGE_T1", "true")
	t.Setenv("EDGE_T2", "1")
	t.Setenv("EDGE_T3", "YES")
	t.Setenv("EDGE_F1", "false")
	t.Setenv("EDGE_WS", "   true   ")

	tests := []struct {
		name string
		key  string
		def  bool
		want bool
	}{
		{name: "true", key: "T1", def: false, want: true},
		{name: "1", key: "T2", def: false, want: true},
		{name: "YES", key: "T3", def: false, want: true},
		{name: "false", key: "F1", def: true, want: false},
		{name: "whitespace trimmed", key: "WS", def: false, want: true},
		{name: "missing uses default", key: "MISSING", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edge.GetBool(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetInt(t *testing.T) {
	edge := New().Prefix("EDGE_")

	t.Setenv("EDGE_OK", "42")
	t.Setenv("EDGE_NONNUM", "12x")
	t.Setenv("EDGE_NEG", "-5") // negatives fall back to default by the simple parser

	tests := []struct {
		name string
		key  string
		def  int
		want int
	}{
		{name: "numeric", key: "OK", def: 0, want: 42},
		{name: "non numeric falls back", key: "NONNUM", def: 9, want: 9},
		{name: "negative falls back", key: "NEG", def: 3, want: 3},
		{name: "missing uses default", key: "MISSING", def: 11, want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edge.GetInt(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}
