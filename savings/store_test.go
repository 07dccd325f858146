package savings

import (
	"testing"
	"time"
)

func TestStoreSetAndNotify(t *testing.T) {
	store := NewStore()
	if store.Dataset() != nil {
		t.Fatal("expected empty store")
	}

	var got *Dataset
	store.OnReload(func(d *Dataset) { got = d })

	d := twoMonthDataset(t)
	store.Set(d)

	if store.Dataset() != d {
		t.Error("expected stored dataset to be returned")
	}
	if got != d {
		t.Error("expected reload listener to receive the dataset")
	}
	if store.LoadedAt().IsZero() || time.Since(store.LoadedAt()) > time.Minute {
		t.Errorf("unexpected LoadedAt: %v", store.LoadedAt())
	}
}
