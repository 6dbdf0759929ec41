package pricing

// defaultItems is the store's standard price list.
var defaultItems = []Item{
	{"Rice", 50, "kg"}, {"Sugar", 20, "kg"}, {"Salt", 10, "kg"},
	{"Chilli", 45, "kg"}, {"Onions", 25, "kg"}, {"Garlic", 30, "kg"},
	{"Tamarind", 50, "kg"}, {"Colgate", 70, "pack"}, {"Soaps", 15, "pack"},
	{"Shampoo", 5, "pack"}, {"Biscuits", 15, "pack"}, {"Boost", 150, "pack"},
	{"Oil", 250, "ltr"}, {"Tea Powder", 70, "pack"}, {"Dal", 100, "kg"},
	{"Bread", 40, "loaf"}, {"Milk", 60, "ltr"}, {"Eggs", 6, "pcs"},
	{"Butter", 550, "kg"}, {"Cheese", 600, "kg"}, {"Detergent", 120, "pack"},
	{"Floor Cleaner", 90, "bottle"}, {"Face Cream", 85, "tube"},
	{"Hair Oil", 110, "bottle"}, {"Toothbrush", 25, "pcs"},
	{"Notebook", 30, "pcs"}, {"Pen", 10, "pcs"},
	{"Mosquito Coil", 35, "pack"}, {"Water Bottle", 20, "ltr"},
	{"Cold Drink", 40, "bottle"}, {"Chips", 20, "pack"},
	{"Maggie", 15, "pack"}, {"Cornflakes", 180, "box"},
	{"Ghee", 500, "kg"}, {"Ice Cream", 60, "cup"},
	{"Tomato Ketchup", 90, "bottle"}, {"Pickles", 60, "bottle"},
	{"Panner", 80, "kg"}, {"Curd", 30, "cup"}, {"Lemon", 5, "pcs"},
}

// defaultUnits maps unit labels to the multiplier into the base unit.
var defaultUnits = map[string]float64{
	"kg": 1, "g": 0.001, "ltr": 1, "liter": 1, "ml": 0.001,
	"pack": 1, "bottle": 1, "each": 1, "cup": 1, "loaf": 1,
	"tube": 1, "box": 1, "egg": 1, "pcs": 1, "piece": 1,
}

// DefaultCatalog returns the built-in price and unit tables.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems, defaultUnits)
	if err != nil {
		panic(err)
	}
	return c
}
