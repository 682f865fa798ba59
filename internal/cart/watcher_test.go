package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/testutil"
)

func TestWatchReloadsOnExternalWrite(t *testing.T) {
	fs := testutil.TestFS(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(ctx, fs, slotKey, testutil.DiscardLogger())
	slotPath, err := fs.SlotPath(slotKey)
	if err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	go func() {
		_ = Watch(ctx, store, slotPath, testutil.DiscardLogger(), func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	snapshot, _ := json.Marshal([]models.CartLine{{ID: 1, Title: "p", Price: 5, Stock: 4, Quantity: 2}})
	if err := fs.Set(ctx, slotKey, snapshot); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	lines := store.Lines()
	if len(lines) != 1 || lines[0].ID != 1 || lines[0].Quantity != 2 {
		t.Errorf("lines after external write = %v", lines)
	}
}
