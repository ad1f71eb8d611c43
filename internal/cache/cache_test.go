package cache

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

func TestKeyIgnoresParameterOrder(t *testing.T) {
	a := Key("units", url.Values{"location": {"Marina"}, "rooms": {"2"}})
	b := Key("units", url.Values{"rooms": {"2"}, "location": {" Marina "}})

	if a != b {
		t.Errorf("keys differ: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, Prefix+"units:") {
		t.Errorf("key %s lacks namespace prefix", a)
	}
}

func TestKeySeparatesNamespacesAndValues(t *testing.T) {
	params := url.Values{"location": {"Marina"}}

	if Key("units", params) == Key("guide", params) {
		t.Error("namespaces share a key")
	}
	if Key("units", params) == Key("units", url.Values{"location": {"Sokhna"}}) {
		t.Error("different filters share a key")
	}
	if Key("units", nil) != Key("units", url.Values{}) {
		t.Error("nil and empty params differ")
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		addr     string
		password string
		wantAddr string
		wantPass string
		wantDb   int
	}{
		{"localhost:6379", "", "localhost:6379", "", 0},
		{"redis://:secret@cache:6380/2", "", "cache:6380", "secret", 2},
		{"redis://cache:6379/0", "override", "cache:6379", "override", 0},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			o, err := redisOptions(tt.addr, tt.password)
			if err != nil {
				t.Fatalf("redisOptions() error = %v", err)
			}
			if o.Addr != tt.wantAddr || o.Password != tt.wantPass || o.DB != tt.wantDb {
				t.Errorf("options = %s %q %d", o.Addr, o.Password, o.DB)
			}
		})
	}

	if _, err := redisOptions("redis://cache:6379/notadb", ""); err == nil {
		t.Error("malformed url accepted")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Errorf("Nop.Get() = %v, %v", found, err)
	}
	if n, err := c.InvalidateAll(ctx); n != 0 || err != nil {
		t.Errorf("Nop.InvalidateAll() = %d, %v", n, err)
	}
}
