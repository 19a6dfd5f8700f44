package game

// DefaultSeed returns the built-in catalog used when a fresh collection is
// bootstrapped. A new slice is returned on every call.
func DefaultSeed() []Game {
	return []Game{
		{
			SKU:      "PS5-001",
			Title:    "Spider-Man 2",
			Platform: "PS5",
			Genre:    "Action",
			Price:    299.90,
			Stock:    15,
			PEGI:     16,
		},
		{
			SKU:      "PS5-002",
			Title:    "Horizon Forbidden West",
			Platform: "PS5",
			Genre:    "RPG",
			Price:    279.90,
			Stock:    20,
			PEGI:     16,
		},
		{
			SKU:      "PC-001",
			Title:    "Baldur's Gate 3",
			Platform: "PC",
			Genre:    "RPG",
			Price:    199.99,
			Stock:    30,
			PEGI:     18,
		},
	}
}
