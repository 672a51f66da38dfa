package save

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStoresRoundTrip(t *testing.T) {
	stores := []struct {
		name  string
		store Store
	}{
		{"memory", NewMemoryStore()},
		{"file", NewFileStore(t.TempDir())},
	}
	for _, tc := range stores {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.store.Load("missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := tc.store.Save("k", []byte("one")); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := tc.store.Save("k", []byte("two")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := tc.store.Load("k")
			if err != nil || string(got) != "two" {
				t.Fatalf("load = %q, %v", got, err)
			}
		})
	}
}

func TestFileStorePath(t *testing.T) {
	f := NewFileStore("data")
	if got := f.FilePath("a/b"); got != "data/a_b.yaml" && got != `data\a_b.yaml` {
		t.Fatalf("unexpected path %q", got)
	}
}

type slowStore struct {
	*MemoryStore
	gate chan struct{}
}

func (s *slowStore) Save(key string, data []byte) error {
	<-s.gate
	return s.MemoryStore.Save(key, data)
}

func TestAsyncStoreCollapsesWrites(t *testing.T) {
	backing := &slowStore{MemoryStore: NewMemoryStore(), gate: make(chan struct{})}
	a := NewAsyncStore(backing, nil)

	if err := a.Save("k", []byte("v1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Let the writer pick up v1 and block on the gate.
	time.Sleep(20 * time.Millisecond)
	for _, v := range []string{"v2", "v3", "v4"} {
		if err := a.Save("k", []byte(v)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if got, _ := a.Load("k"); string(got) != "v4" {
		t.Fatalf("pending load = %q, want v4", got)
	}
	close(backing.gate)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got, _ := backing.MemoryStore.Load("k"); string(got) != "v4" {
		t.Fatalf("backing = %q, want v4", got)
	}
	if n := backing.Saves(); n > 2 {
		t.Fatalf("expected queued writes to collapse, got %d saves", n)
	}
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(string, []byte) error { return errors.New("disk full") }

func TestAsyncStoreReportsErrors(t *testing.T) {
	var mu sync.Mutex
	var failed []string
	a := NewAsyncStore(&failingStore{}, func(key string, err error) {
		mu.Lock()
		failed = append(failed, key)
		mu.Unlock()
	})
	if err := a.Save("profile", []byte("x")); err != nil {
		t.Fatalf("async save should not fail: %v", err)
	}
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(failed) != 1 || failed[0] != "profile" {
		t.Fatalf("expected one reported failure, got %v", failed)
	}
}

func TestProfileDefaults(t *testing.T) {
	p, err := LoadProfile(NewMemoryStore())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Coins != 0 || len(p.Stages) != 1 || p.Stages[0] != 1 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if !p.StageUnlocked(1) || p.StageUnlocked(2) {
		t.Fatal("only stage 1 starts unlocked")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	p := NewProfile()
	p.Coins = 40
	if err := p.BuyUpgrade(UpgradeDamage); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := p.BuyRelic(RelicGravityCapture); err != nil {
		t.Fatalf("buy relic: %v", err)
	}
	p.UnlockStage(3)
	p.RecordRun(RunRecord{ID: "r1", Stage: 1, Wave: 7, Score: 900})
	if err := p.Save(store); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadProfile(store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Coins != 28 || got.Upgrades.Damage != 1 {
		t.Fatalf("coins/upgrades not restored: %+v", got)
	}
	if !got.RelicActive(RelicGravityCapture) {
		t.Fatal("relic not restored")
	}
	if !got.StageUnlocked(3) {
		t.Fatal("stage list not restored")
	}
	if len(got.History) != 1 || got.History[0].ID != "r1" {
		t.Fatalf("history not restored: %+v", got.History)
	}
}

func TestBuyUpgrade(t *testing.T) {
	tests := []struct {
		name    string
		coins   int
		level   int
		kind    UpgradeKind
		wantErr error
		left    int
	}{
		{"first_level", 10, 0, UpgradeHealth, nil, 0},
		{"third_level", 30, 2, UpgradeSpeed, nil, 10},
		{"too_poor", 14, 1, UpgradeDamage, ErrInsufficientCoins, 14},
		{"unknown", 100, 0, "luck", ErrUnknownUpgrade, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProfile()
			p.Coins = tc.coins
			p.Upgrades = PermanentUpgrades{Health: tc.level, Speed: tc.level, Damage: tc.level}
			err := p.BuyUpgrade(tc.kind)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if p.Coins != tc.left {
				t.Fatalf("coins = %d, want %d", p.Coins, tc.left)
			}
			if tc.wantErr == nil && p.UpgradeLevel(tc.kind) != tc.level+1 {
				t.Fatalf("level = %d, want %d", p.UpgradeLevel(tc.kind), tc.level+1)
			}
		})
	}
}

func TestRelics(t *testing.T) {
	p := NewProfile()
	p.Coins = 3
	if err := p.BuyRelic("luckyCharm"); !errors.Is(err, ErrUnknownRelic) {
		t.Fatalf("expected ErrUnknownRelic, got %v", err)
	}
	if err := p.BuyRelic(RelicBulletSplit); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := p.BuyRelic(RelicBulletSplit); !errors.Is(err, ErrAlreadyPurchased) {
		t.Fatalf("expected ErrAlreadyPurchased, got %v", err)
	}
	if err := p.BuyRelic(RelicAdvancedRepair); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := p.BuyRelic(RelicGravityCapture); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if err := p.SetRelicActive(RelicBulletSplit, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := p.SetRelicActive(RelicGravityCapture, true); err == nil {
		t.Fatal("cannot activate an unowned relic")
	}
	got := p.ActiveRelics()
	if len(got) != 1 || got[0] != RelicAdvancedRepair {
		t.Fatalf("active relics = %v", got)
	}
}

func TestBonus(t *testing.T) {
	p := NewProfile()
	p.Upgrades = PermanentUpgrades{Health: 2, Speed: 3, Damage: 1}
	b := p.Bonus()
	if b.Health != 40 || b.Damage != 5 || b.Speed < 0.3-1e-9 || b.Speed > 0.3+1e-9 {
		t.Fatalf("unexpected bonus %+v", b)
	}
}

func TestRunHistoryCapped(t *testing.T) {
	p := NewProfile()
	for i := range historyLimit + 5 {
		p.RecordRun(RunRecord{Wave: i})
	}
	if len(p.History) != historyLimit || p.History[0].Wave != 5 {
		t.Fatalf("expected the newest %d runs, first wave %d", historyLimit, p.History[0].Wave)
	}
}
