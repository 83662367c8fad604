package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/domain"
)

var t0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, m *MemoryRepository, id, phone, hash string, created time.Time) {
	t.Helper()
	err := m.Create(context.Background(), &domain.Record{
		ID: id, PhoneNumber: phone, CodeHash: hash, CreatedAt: created, ExpiresAt: created.Add(DefaultTTL),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestMemoryRepository_ConsumeOnce(t *testing.T) {
	m := NewMemoryRepository()
	seed(t, m, "r1", "+33612345678", "h1", t0)
	ctx := context.Background()

	ok, err := m.Consume(ctx, "+33612345678", "h1", t0.Add(time.Minute))
	if err != nil || !ok {
		t.Fatalf("first Consume = %v, %v; want true", ok, err)
	}
	ok, err = m.Consume(ctx, "+33612345678", "h1", t0.Add(time.Minute))
	if err != nil || ok {
		t.Fatalf("second Consume = %v, %v; want false", ok, err)
	}
}

func TestMemoryRepository_ExpiryIsExclusive(t *testing.T) {
	m := NewMemoryRepository()
	seed(t, m, "r1", "+33612345678", "h1", t0)
	ctx := context.Background()
	if ok, _ := m.Consume(ctx, "+33612345678", "h1", t0.Add(DefaultTTL)); ok {
		t.Error("consumed at expiresAt")
	}
	if ok, _ := m.Consume(ctx, "+33612345678", "h1", t0.Add(DefaultTTL-time.Nanosecond)); !ok {
		t.Error("not consumed just before expiresAt")
	}
}

func TestMemoryRepository_ConcurrentConsume(t *testing.T) {
	m := NewMemoryRepository()
	seed(t, m, "r1", "+33612345678", "h1", t0)
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := m.Consume(context.Background(), "+33612345678", "h1", t0.Add(time.Second)); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("winners = %d, want 1", wins.Load())
	}
}

func TestMemoryRepository_MultipleOutstanding(t *testing.T) {
	m := NewMemoryRepository()
	seed(t, m, "old", "+33612345678", "h-old", t0)
	seed(t, m, "new", "+33612345678", "h-new", t0.Add(time.Minute))
	ctx := context.Background()

	rec, err := m.FindUnexpiredByPhone(ctx, "+33612345678", t0.Add(2*time.Minute))
	if err != nil || rec == nil || rec.ID != "new" {
		t.Fatalf("FindUnexpiredByPhone = %+v, %v; want newest", rec, err)
	}
	if ok, _ := m.Consume(ctx, "+33612345678", "h-old", t0.Add(2*time.Minute)); !ok {
		t.Error("older outstanding code must still be consumable")
	}
}

func TestMemoryRepository_DeleteExpiredBefore(t *testing.T) {
	m := NewMemoryRepository()
	seed(t, m, "a", "+1", "h", t0)
	seed(t, m, "b", "+1", "h", t0.Add(time.Hour))
	n, err := m.DeleteExpiredBefore(context.Background(), t0.Add(30*time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpiredBefore = %d, %v; want 1", n, err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}
