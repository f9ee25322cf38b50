package cache_test

import (
	"testing"
	"time"

	"github.com/simplexhq/simplex-backend/tests/testutil"
)

func TestCacheSetGetDel(t *testing.T) {
	mc, err := testutil.NewMiniCache(60)
	if err != nil {
		t.Fatalf("mini cache error: %v", err)
	}
	defer mc.Close()

	if err := mc.Cache.Set("chat:p1", `[{"content":"hi"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := mc.Cache.Get("chat:p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `[{"content":"hi"}]` {
		t.Fatalf("Get = %q", got)
	}

	if err := mc.Cache.Del("chat:p1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := mc.Cache.Get("chat:p1"); err == nil {
		t.Fatalf("expected miss after Del")
	}
}

func TestCacheEntriesExpire(t *testing.T) {
	mc, err := testutil.NewMiniCache(30)
	if err != nil {
		t.Fatalf("mini cache error: %v", err)
	}
	defer mc.Close()

	if err := mc.Cache.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mc.MR.FastForward(31 * time.Second)
	if _, err := mc.Cache.Get("k"); err == nil {
		t.Fatalf("expected miss after TTL expiry")
	}
}
