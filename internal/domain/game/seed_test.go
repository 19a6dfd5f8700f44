package game

import "testing"

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	if len(seed) != 3 {
		t.Fatalf("expected 3 seed records, got %d", len(seed))
	}

	expected := []Game{
		{SKU: "PS5-001", Title: "Spider-Man 2", Platform: "PS5", Genre: "Action", Price: 299.90, Stock: 15, PEGI: 16},
		{SKU: "PS5-002", Title: "Horizon Forbidden West", Platform: "PS5", Genre: "RPG", Price: 279.90, Stock: 20, PEGI: 16},
		{SKU: "PC-001", Title: "Baldur's Gate 3", Platform: "PC", Genre: "RPG", Price: 199.99, Stock: 30, PEGI: 18},
	}
	for i, want := range expected {
		if seed[i] != want {
			t.Errorf("seed[%d] = %+v, want %+v", i, seed[i], want)
		}
	}
}

func TestDefaultSeed_ReturnsCopy(t *testing.T) {
	first := DefaultSeed()
	first[0].Stock = 0

	if DefaultSeed()[0].Stock != 15 {
		t.Error("DefaultSeed() should not share state between calls")
	}
}
