package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/testutil"
)

const slotKey = "my-ecommerce-cart"

func newTestStore(t *testing.T) (*Store, *testutil.Memory) {
	t.Helper()
	mem := testutil.NewMemory()
	s := NewStore(context.Background(), mem, slotKey, testutil.DiscardLogger())
	return s, mem
}

func product(id, stock int, price float64) models.Product {
	return models.Product{ID: id, Title: "p", Category: "c", Price: price, Stock: stock}
}

func TestAddNewLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product(1, 3, 549))

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 1 || lines[0].Stock != 3 || lines[0].Price != 549 {
		t.Errorf("line = %+v", lines[0])
	}
}

func TestAddIncrementsUntilStockCap(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := product(1, 3, 10)

	s.Add(ctx, p)
	s.Add(ctx, p)
	if got := s.Lines()[0].Quantity; got != 2 {
		t.Fatalf("quantity after two adds = %d, want 2", got)
	}

	s.Add(ctx, p)
	s.Add(ctx, p) // 4th add is a silent no-op at the captured stock
	if got := s.Lines()[0].Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3", got)
	}
}

func TestAddOutOfStockProduct(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(context.Background(), product(1, 0, 10))
	if got := s.Lines(); len(got) != 0 {
		t.Errorf("out-of-stock add produced a line: %v", got)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product(1, 5, 10))
	s.Add(ctx, product(2, 5, 20))
	s.UpdateQuantity(ctx, 1, 4)

	lines := s.Lines()
	if lines[0].ID != 1 || lines[1].ID != 2 {
		t.Errorf("order changed: %v", lines)
	}
}

func TestUpdateQuantityClampsToStock(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, product(1, 3, 10))

	s.UpdateQuantity(ctx, 1, 10)
	if got := s.Lines()[0].Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3 (clamped)", got)
	}
}

func TestUpdateQuantityNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, product(1, 3, 10))
	before := s.Lines()

	s.UpdateQuantity(ctx, 1, 0)  // below 1
	s.UpdateQuantity(ctx, 99, 2) // unknown id

	if !reflect.DeepEqual(s.Lines(), before) {
		t.Errorf("cart changed: %v", s.Lines())
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, product(1, 3, 10))
	s.Add(ctx, product(2, 3, 20))

	s.Remove(ctx, 1)
	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != 2 {
		t.Errorf("lines = %v", lines)
	}
}

func TestRemoveMissingID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, product(1, 3, 10))
	before := s.Lines()

	s.Remove(ctx, 99)

	if !reflect.DeepEqual(s.Lines(), before) {
		t.Errorf("cart changed by removing missing id: %v", s.Lines())
	}
}

func TestTotals(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, product(1, 5, 549))
	s.Add(ctx, product(1, 5, 549))
	s.Add(ctx, product(2, 5, 13.25))

	if got := s.TotalItems(); got != 3 {
		t.Errorf("TotalItems = %d, want 3", got)
	}
	want := 549*2 + 13.25
	if got := s.TotalPrice(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalPrice = %v, want %v", got, want)
	}
}

func TestPersistSnapshotOnEveryMutation(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, product(1, 3, 10))
	data, err := mem.Get(ctx, slotKey)
	if err != nil {
		t.Fatalf("slot not written after add: %v", err)
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Errorf("snapshot = %v", lines)
	}

	s.Remove(ctx, 1)
	data, _ = mem.Get(ctx, slotKey)
	if err := json.Unmarshal(data, &lines); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("snapshot after remove = %v", lines)
	}
}

func TestRehydrateRoundTrip(t *testing.T) {
	mem := testutil.NewMemory()
	ctx := context.Background()
	logger := testutil.DiscardLogger()

	first := NewStore(ctx, mem, slotKey, logger)
	first.Add(ctx, product(1, 3, 549))
	first.Add(ctx, product(1, 3, 549))
	first.Add(ctx, product(2, 65, 13))
	want := first.Lines()

	// Simulate a restart: a fresh store over the same slot.
	second := NewStore(ctx, mem, slotKey, logger)
	if !reflect.DeepEqual(second.Lines(), want) {
		t.Errorf("rehydrated cart = %v, want %v", second.Lines(), want)
	}
}

func TestRehydrateCorruptSlotFailsOpen(t *testing.T) {
	mem := testutil.NewMemory()
	mem.Seed(slotKey, []byte("{not valid json"))

	s := NewStore(context.Background(), mem, slotKey, testutil.DiscardLogger())
	if got := s.Lines(); len(got) != 0 {
		t.Errorf("corrupt slot should yield empty cart, got %v", got)
	}
}

func TestPersistFailureKeepsInMemoryCart(t *testing.T) {
	mem := testutil.NewMemory()
	mem.FailSet = errors.New("disk full")

	ctx := context.Background()
	s := NewStore(ctx, mem, slotKey, testutil.DiscardLogger())
	s.Add(ctx, product(1, 3, 10))

	if len(s.Lines()) != 1 {
		t.Error("in-memory cart should survive a failed persist")
	}
}

func TestReload(t *testing.T) {
	mem := testutil.NewMemory()
	ctx := context.Background()
	s := NewStore(ctx, mem, slotKey, testutil.DiscardLogger())
	s.Add(ctx, product(1, 3, 10))

	// No external change: reload is a no-op.
	if s.Reload(ctx) {
		t.Error("reload without external change reported a change")
	}

	// External overwrite of the slot.
	snapshot, _ := json.Marshal([]models.CartLine{{ID: 9, Title: "x", Price: 1, Stock: 2, Quantity: 2}})
	mem.Seed(slotKey, snapshot)
	if !s.Reload(ctx) {
		t.Fatal("reload should report a change")
	}
	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != 9 {
		t.Errorf("lines after reload = %v", lines)
	}
}

func TestOnChangeFires(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	s.OnChange(func() { calls++ })

	s.Add(ctx, product(1, 3, 10))    // change
	s.Add(ctx, product(1, 3, 10))    // change
	s.UpdateQuantity(ctx, 1, 0)      // no-op
	s.Remove(ctx, 99)                // no-op
	s.Remove(ctx, 1)                 // change

	if calls != 3 {
		t.Errorf("onChange fired %d times, want 3", calls)
	}
}
