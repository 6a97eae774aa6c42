package seed

import "github.com/Marga-Ghale/ora-lists/internal/repository"

// InitialListData is the default content for a List. In each row the first
// element is the Category name and the rest are Item names in that Category.
// Category names and Item names must be unique within a List.
var InitialListData = [][]string{
	{"Alcohol", "Beer", "Wine", "Chardonnay", "Pino Grigio"},
	{"Baby", "Baby Food", "Diapers", "Formula"},
	{"Bakery", "Cake", "Donuts", "GF Bakery Items", "Pie"},
	{"Beverages", "Apple Juice", "Fruit Juices", "Lemonade", "Orange Juice", "Peach Juice", "Soft Drinks", "Water"},
	{"Breakfast & Cereal", "Cereal", "Oatmeal"},
	{"Bulk Foods", "Almonds", "Cashews", "Peanuts"},
	{"Canned Goods", "Beef Stew", "Canned Chicken", "Canned Tuna", "Chili", "Peaches", "Pears", "Soup", "Tomato Paste", "Tomato Sauce", "Tomatos Diced", "Tomatos Stewed"},
	{"Condiments", "Catsup", "Mayonnaise", "Mustard", "GF Salad Dressing"},
	{"Cooking & Baking", "Baking Soda", "Flour", "GF Flour", "Splenda"},
	{"Dairy", "Cheese", "Eggs", "GF Cheese", "GF Milk", "GF Yogurt", "Milk", "Yogurt"},
	{"Deli", "Deli Beef", "Deli Ham", "Potato Salad", "Sandwich Meat"},
	{"Ethnic Foods", "Chow Mein Noodles", "Refried Beans", "Taco Shells", "Tortillas"},
	{"Frozen Foods", "Frozen Dinners", "Frozen Hamburger", "Taquitos"},
	{"Grains & Pasta", "Bagels", "Bread", "Dinner Rolls", "English Muffins", "GF Bread", "GF Pasta", "Spaghetti"},
	{"Health & Personal Care", "Shampoo Hers", "Shampoo His", "Toothpaste"},
	{"Household & Cleaning", "Dishwasher Soap", "Hand Dish Soap", "Laundry Detergent", "Surface Cleaner"},
	{"Meat", "Chicken Breasts", "Chicken Tenders", "Hamburger", "Hot Dogs", "Meatballs", "Pork Chops", "Sausage Log", "Steaks", "Turkey"},
	{"Other"},
	{"Paper Products", "Kleenex Large", "Kleenex Small", "Napkins", "Paper Towels", "Toilet Tissue"},
	{"Pet Supplies", "Bird Seed", "Cat Food Cans", "Cat Food Dry", "Cat Grass", "Dog Food", "Litter"},
	{"Produce", "Bananas", "Cabbage", "Celery", "Cole Slaw", "Green Onions", "Lettuce", "Mixed Vegetables", "Mushrooms", "Oranges", "Red Peppers", "Salad Bag", "Spinach", "Strawberries", "Tomatoes"},
	{"Seafood", "Cod", "Halibut", "Salmon"},
	{"Snacks", "Candy", "Cookies", "Tic Tacs"},
}

// CategorySeeds converts rows in the InitialListData layout into repository
// seeds. Empty rows are skipped.
func CategorySeeds(rows [][]string) []repository.CategorySeed {
	seeds := make([]repository.CategorySeed, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		seeds = append(seeds, repository.CategorySeed{
			Name:  row[0],
			Items: append([]string(nil), row[1:]...),
		})
	}
	return seeds
}

// InitialCategories returns the default content for a new List.
func InitialCategories() []repository.CategorySeed {
	return CategorySeeds(InitialListData)
}
