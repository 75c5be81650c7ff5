package grocery

// Default budgets applied when nothing was persisted yet.
const DefaultBudget = 750.0

// BaselineStore must exist in every loaded catalog; older persisted
// documents predate it, so loaders self-heal it back in after any
// successful load.
const BaselineStore = "Indian Groceries"

func defaultStoreBudgets() map[string]float64 {
	return map[string]float64{
		"Trader Joe's": 200.0,
		"Safeway":      150.0,
		"Costco":       300.0,
		BaselineStore:  100.0,
	}
}

// SeedDocument is the last-resort load strategy: a fresh document with the
// sample catalogs and default budgets.
func SeedDocument() Document {
	return Document{
		Stores: map[string][]Item{
			"Trader Joe's": traderJoesSeed(),
			"Safeway":      safewaySeed(),
			"Costco":       costcoSeed(),
			BaselineStore:  BaselineItems(),
		},
		Budget:       DefaultBudget,
		StoreBudgets: defaultStoreBudgets(),
	}
}

func traderJoesSeed() []Item {
	return []Item{
		{ID: "tj-1", Name: "Organic Bananas", Category: "Produce", Price: 0.99, Unit: "lb", Store: "Trader Joe's"},
		{ID: "tj-2", Name: "Avocados", Category: "Produce", Price: 1.49, Unit: "each", Store: "Trader Joe's"},
		{ID: "tj-4", Name: "Cherry Tomatoes", Category: "Produce", Price: 3.49, Unit: "package", Store: "Trader Joe's"},
		{ID: "tj-8", Name: "Greek Yogurt", Category: "Dairy", Price: 1.99, Unit: "container", Store: "Trader Joe's"},
		{ID: "tj-11", Name: "Almond Milk", Category: "Dairy", Price: 2.99, Unit: "carton", Store: "Trader Joe's"},
		{ID: "tj-12", Name: "Cauliflower Gnocchi", Category: "Frozen", Price: 2.99, Unit: "bag", Store: "Trader Joe's"},
		{ID: "tj-13", Name: "Mandarin Chicken", Category: "Frozen", Price: 4.99, Unit: "package", Store: "Trader Joe's"},
		{ID: "tj-18", Name: "Olive Oil", Category: "Pantry", Price: 7.99, Unit: "bottle", Store: "Trader Joe's"},
		{ID: "tj-19", Name: "Pasta", Category: "Pantry", Price: 1.29, Unit: "package", Store: "Trader Joe's"},
		{ID: "tj-22", Name: "Dark Chocolate", Category: "Snacks", Price: 2.49, Unit: "bar", Store: "Trader Joe's"},
		{ID: "tj-27", Name: "Sourdough Bread", Category: "Bakery", Price: 3.99, Unit: "loaf", Store: "Trader Joe's"},
		{ID: "tj-37", Name: "Eggs", Category: "Dairy", Price: 4.49, Unit: "dozen", Store: "Trader Joe's"},
		{ID: "tj-39", Name: "Boneless Chicken Breast", Category: "Meat", Price: 6.99, Unit: "lb", Store: "Trader Joe's"},
		{ID: "tj-43", Name: "Lemons", Category: "Produce", Price: 0.49, Unit: "each", Store: "Trader Joe's"},
	}
}

func safewaySeed() []Item {
	return []Item{
		{ID: "sw-1", Name: "Chicken Breast", Category: "Meat", Price: 4.99, Unit: "lb", Store: "Safeway"},
		{ID: "sw-2", Name: "Ground Beef", Category: "Meat", Price: 5.99, Unit: "lb", Store: "Safeway"},
		{ID: "sw-3", Name: "Salmon", Category: "Meat", Price: 9.99, Unit: "lb", Store: "Safeway"},
		{ID: "sw-7", Name: "Onions", Category: "Produce", Price: 1.49, Unit: "lb", Store: "Safeway"},
		{ID: "sw-8", Name: "Potatoes", Category: "Produce", Price: 2.99, Unit: "bag", Store: "Safeway"},
		{ID: "sw-13", Name: "Eggs", Category: "Dairy", Price: 4.99, Unit: "dozen", Store: "Safeway"},
		{ID: "sw-18", Name: "Shredded Cheese", Category: "Dairy", Price: 3.99, Unit: "bag", Store: "Safeway"},
		{ID: "sw-19", Name: "Rice", Category: "Pantry", Price: 8.99, Unit: "bag", Store: "Safeway"},
		{ID: "sw-25", Name: "Paper Towels", Category: "Household", Price: 12.99, Unit: "pack", Store: "Safeway"},
		{ID: "sw-28", Name: "Toilet Paper", Category: "Household", Price: 9.99, Unit: "pack", Store: "Safeway"},
		{ID: "sw-42", Name: "Bread", Category: "Bakery", Price: 3.49, Unit: "loaf", Store: "Safeway"},
	}
}

func costcoSeed() []Item {
	return []Item{
		{ID: "co-1", Name: "Kirkland Paper Towels 12-pack", Category: "Bulk Household", Price: 19.99, Unit: "pack", Store: "Costco"},
		{ID: "co-2", Name: "Toilet Paper 30-pack", Category: "Bulk Household", Price: 24.99, Unit: "pack", Store: "Costco"},
		{ID: "co-6", Name: "Chicken Thighs 5 lbs", Category: "Bulk Meat", Price: 14.99, Unit: "package", Store: "Costco"},
		{ID: "co-8", Name: "Salmon 3 lbs", Category: "Bulk Meat", Price: 29.99, Unit: "package", Store: "Costco"},
		{ID: "co-9", Name: "Quinoa 5 lbs", Category: "Bulk Pantry", Price: 12.99, Unit: "bag", Store: "Costco"},
		{ID: "co-10", Name: "Olive Oil 2L", Category: "Bulk Pantry", Price: 14.99, Unit: "bottle", Store: "Costco"},
		{ID: "co-14", Name: "Mixed Vegetables", Category: "Bulk Frozen", Price: 8.99, Unit: "bag", Store: "Costco"},
		{ID: "co-15", Name: "Frozen Pizza 4-pack", Category: "Bulk Frozen", Price: 14.99, Unit: "pack", Store: "Costco"},
		{ID: "co-24", Name: "Eggs 5 Dozen", Category: "Bulk Dairy", Price: 9.99, Unit: "pack", Store: "Costco"},
	}
}

// BaselineItems is the payload for the baseline-store self-heal.
func BaselineItems() []Item {
	return []Item{
		{ID: "ig-1", Name: "Garam Masala", Category: "Spices", Price: 4.99, Unit: "jar", Store: BaselineStore},
		{ID: "ig-2", Name: "Turmeric Powder", Category: "Spices", Price: 3.49, Unit: "package", Store: BaselineStore},
		{ID: "ig-3", Name: "Cumin Seeds", Category: "Spices", Price: 2.99, Unit: "package", Store: BaselineStore},
		{ID: "ig-7", Name: "Curry Leaves", Category: "Spices", Price: 1.99, Unit: "bunch", Store: BaselineStore},
		{ID: "ig-11", Name: "Basmati Rice 10lb", Category: "Rice & Grains", Price: 15.99, Unit: "bag", Store: BaselineStore},
		{ID: "ig-12", Name: "Toor Dal (Split Pigeon Peas)", Category: "Rice & Grains", Price: 4.99, Unit: "bag", Store: BaselineStore},
		{ID: "ig-18", Name: "Besan (Chickpea Flour)", Category: "Rice & Grains", Price: 3.99, Unit: "bag", Store: BaselineStore},
		{ID: "ig-20", Name: "Haldiram's Samosas (Frozen)", Category: "Frozen", Price: 5.99, Unit: "package", Store: BaselineStore},
		{ID: "ig-23", Name: "Paneer (Indian Cottage Cheese)", Category: "Dairy", Price: 5.99, Unit: "block", Store: BaselineStore},
		{ID: "ig-25", Name: "Mango Pickle", Category: "Pickles & Chutneys", Price: 4.49, Unit: "jar", Store: BaselineStore},
		{ID: "ig-29", Name: "Haldiram's Bhujia", Category: "Snacks", Price: 4.99, Unit: "package", Store: BaselineStore},
		{ID: "ig-34", Name: "Chai Masala", Category: "Beverages", Price: 4.99, Unit: "package", Store: BaselineStore},
		{ID: "ig-39", Name: "Pure Ghee", Category: "Oils & Ghee", Price: 12.99, Unit: "jar", Store: BaselineStore},
		{ID: "ig-42", Name: "Fresh Cilantro Bunch", Category: "Produce", Price: 0.99, Unit: "bunch", Store: BaselineStore},
		{ID: "ig-45", Name: "Ginger Root", Category: "Produce", Price: 2.99, Unit: "lb", Store: BaselineStore},
	}
}

// DefaultBaselineBudget is applied when the baseline store is healed into a
// document that has no budget for it yet.
const DefaultBaselineBudget = 100.0
