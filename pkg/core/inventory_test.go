package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aretw0/stock/pkg/core"
)

func inventoryOf(pairs ...any) *core.Inventory {
	inv := core.NewInventory()
	for i := 0; i < len(pairs); i += 2 {
		inv.Set(pairs[i].(string), float64(pairs[i+1].(int)))
	}
	return inv
}

func TestInventory_Add(t *testing.T) {
	t.Run("New Item", func(t *testing.T) {
		inv := core.NewInventory()
		if err := inv.Add("apple", 10, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := inv.Qty("apple"); got != 10 {
			t.Errorf("expected 10, got %v", got)
		}
	})

	t.Run("Existing Item Accumulates", func(t *testing.T) {
		inv := inventoryOf("apple", 4)
		if err := inv.Add("apple", 2.5, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := inv.Qty("apple"); got != 6.5 {
			t.Errorf("expected 6.5, got %v", got)
		}
	})

	t.Run("Appends Log Entry", func(t *testing.T) {
		inv := core.NewInventory()
		log := core.NewLog(nil)
		_ = inv.Add("apple", 10, log)
		_ = inv.Add("banana", 2, log)

		if log.Len() != 2 {
			t.Fatalf("expected 2 log entries, got %d", log.Len())
		}
		entries := log.Entries()
		if entries[0].Item != "apple" || entries[1].Qty != 2 {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("Zero Value Inventory", func(t *testing.T) {
		var inv core.Inventory
		if err := inv.Add("apple", 1, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if inv.Len() != 1 {
			t.Errorf("expected 1 item, got %d", inv.Len())
		}
	})
}

func TestInventory_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		item string
		qty  float64
	}{
		{name: "Empty Name", item: "", qty: 1},
		{name: "NaN Quantity", item: "apple", qty: math.NaN()},
		{name: "Infinite Quantity", item: "apple", qty: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := inventoryOf("apple", 3)
			before := inv.Clone()
			log := core.NewLog(nil)

			if err := inv.Add(tt.item, tt.qty, log); !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Add: expected ErrInvalidInput, got %v", err)
			}
			if err := inv.Remove(tt.item, tt.qty); !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Remove: expected ErrInvalidInput, got %v", err)
			}
			if !inv.Equal(before) {
				t.Errorf("inventory changed: %v", inv.Map())
			}
			if log.Len() != 0 {
				t.Errorf("rejected add must not be logged")
			}
		})
	}
}

func TestInventory_Overflow(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		qty    float64
		remove bool
	}{
		{name: "Add Past Max", start: math.MaxFloat64, qty: math.MaxFloat64},
		{name: "Add Past Min", start: -math.MaxFloat64, qty: -math.MaxFloat64},
		{name: "Remove Past Max", start: math.MaxFloat64, qty: -math.MaxFloat64, remove: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := core.NewInventory()
			inv.Set("apple", tt.start)
			log := core.NewLog(nil)

			var err error
			if tt.remove {
				err = inv.Remove("apple", tt.qty)
			} else {
				err = inv.Add("apple", tt.qty, log)
			}
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if got := inv.Qty("apple"); got != tt.start {
				t.Errorf("quantity changed to %v", got)
			}
			if log.Len() != 0 {
				t.Errorf("rejected add must not be logged")
			}
		})
	}
}

func TestInventory_WhitespaceName(t *testing.T) {
	inv := core.NewInventory()
	if err := inv.Add("   ", 2, nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := inv.Qty("   "); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if err := inv.Remove("   ", 2); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if inv.Len() != 0 {
		t.Errorf("expected empty inventory, got %v", inv.Map())
	}
}

func TestInventory_Remove(t *testing.T) {
	tests := []struct {
		name    string
		start   *core.Inventory
		item    string
		qty     float64
		want    map[string]float64
		wantErr error
	}{
		{
			name:  "Partial",
			start: inventoryOf("apple", 10),
			item:  "apple",
			qty:   3,
			want:  map[string]float64{"apple": 7},
		},
		{
			name:  "Exactly Zero Deletes",
			start: inventoryOf("apple", 3, "pear", 1),
			item:  "apple",
			qty:   3,
			want:  map[string]float64{"pear": 1},
		},
		{
			name:  "Below Zero Deletes",
			start: inventoryOf("apple", 3),
			item:  "apple",
			qty:   5,
			want:  map[string]float64{},
		},
		{
			name:    "Missing Item",
			start:   inventoryOf("apple", 3),
			item:    "orange",
			qty:     1,
			want:    map[string]float64{"apple": 3},
			wantErr: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.start.Remove(tt.item, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.want, tt.start.Map()); diff != "" {
				t.Errorf("inventory mismatch (-want +got):\n%s", diff)
			}
			if tt.start.Has(tt.item) && tt.start.Qty(tt.item) <= 0 {
				t.Errorf("non-positive quantity left for %s", tt.item)
			}
		})
	}
}

func TestInventory_Qty_Absent(t *testing.T) {
	inv := inventoryOf("apple", 3)
	if got := inv.Qty("orange"); got != 0 {
		t.Errorf("expected 0 for absent item, got %v", got)
	}
}

func TestInventory_LowItems(t *testing.T) {
	tests := []struct {
		name      string
		inv       *core.Inventory
		threshold float64
		want      []string
	}{
		{
			name:      "Default Threshold",
			inv:       inventoryOf("apple", 7, "banana", 2),
			threshold: core.DefaultThreshold,
			want:      []string{"banana"},
		},
		{
			name:      "Strictly Below",
			inv:       inventoryOf("apple", 5, "banana", 4, "cherry", 1),
			threshold: 5,
			want:      []string{"banana", "cherry"},
		},
		{
			name:      "Keeps Insertion Order",
			inv:       inventoryOf("zucchini", 1, "apple", 1),
			threshold: 2,
			want:      []string{"zucchini", "apple"},
		},
		{
			name:      "Empty",
			inv:       core.NewInventory(),
			threshold: 5,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.inv.LowItems(tt.threshold)); diff != "" {
				t.Errorf("LowItems mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInventory_Scenario(t *testing.T) {
	inv := core.NewInventory()
	_ = inv.Add("apple", 10, nil)
	_ = inv.Add("banana", 2, nil)
	_ = inv.Remove("apple", 3)
	if err := inv.Remove("orange", 1); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if diff := cmp.Diff(map[string]float64{"apple": 7, "banana": 2}, inv.Map()); diff != "" {
		t.Errorf("final state mismatch (-want +got):\n%s", diff)
	}
	if got := inv.Qty("apple"); got != 7 {
		t.Errorf("expected apple=7, got %v", got)
	}
	if diff := cmp.Diff([]string{"banana"}, inv.LowItems(core.DefaultThreshold)); diff != "" {
		t.Errorf("LowItems mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"apple", "banana"}, inv.Names()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestInventory_Equal(t *testing.T) {
	a := inventoryOf("apple", 1, "banana", 2)
	b := inventoryOf("banana", 2, "apple", 1)
	if !a.Equal(b) {
		t.Error("expected inventories with same items in different order to be equal")
	}
	b.Set("apple", 3)
	if a.Equal(b) {
		t.Error("expected inventories with different quantities to differ")
	}
	if a.Equal(inventoryOf("apple", 1)) {
		t.Error("expected inventories with different sizes to differ")
	}
}

func TestInventory_Clone(t *testing.T) {
	a := inventoryOf("apple", 1)
	c := a.Clone()
	_ = c.Add("apple", 1, nil)
	if a.Qty("apple") != 1 {
		t.Errorf("clone shares state with original")
	}
}
