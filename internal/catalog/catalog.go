// Package catalog holds the static menu: eight fixed items and their details.
// The catalogue is defined once at build time; nothing creates or edits items
// at runtime.
package catalog

import (
	"strings"

	"daggys-menu/internal/model"
)

var menuItems = []model.MenuItem{
	{ID: "1", Name: "Classic Burger", Price: "$12.99", Icon: "fast-food"},
	{ID: "2", Name: "Margherita Pizza", Price: "$15.99", Icon: "pizza"},
	{ID: "3", Name: "Caesar Salad", Price: "$9.99", Icon: "leaf"},
	{ID: "4", Name: "Grilled Chicken", Price: "$18.99", Icon: "flame"},
	{ID: "5", Name: "Fish & Chips", Price: "$16.99", Icon: "fish"},
	{ID: "6", Name: "Pasta Carbonara", Price: "$14.99", Icon: "restaurant"},
	{ID: "7", Name: "Choco Cake", Price: "$7.99", Icon: "ice-cream"},
	{ID: "8", Name: "Fresh Juice", Price: "$4.99", Icon: "wine"},
}

type detail struct {
	description string
	ingredients []string
	calories    string
}

var foodDetails = map[string]detail{
	"1": {
		description: "Juicy beef patty with fresh lettuce, tomato, onion, and our special sauce on a toasted bun.",
		ingredients: []string{"Beef Patty", "Lettuce", "Tomato", "Onion", "Special Sauce", "Sesame Bun"},
		calories:    "650 cal",
	},
	"2": {
		description: "Traditional Italian pizza with fresh mozzarella, tomato sauce, and basil leaves.",
		ingredients: []string{"Pizza Dough", "Mozzarella", "Tomato Sauce", "Fresh Basil", "Olive Oil"},
		calories:    "720 cal",
	},
	"3": {
		description: "Crispy golden fries seasoned with sea salt and served hot.",
		ingredients: []string{"Potatoes", "Sea Salt", "Vegetable Oil"},
		calories:    "365 cal",
	},
	"4": {
		description: "Fresh garden salad with mixed greens, cherry tomatoes, and balsamic dressing.",
		ingredients: []string{"Mixed Greens", "Cherry Tomatoes", "Cucumber", "Red Onion", "Balsamic Dressing"},
		calories:    "180 cal",
	},
	"5": {
		description: "Grilled chicken breast with herbs and spices, served with vegetables.",
		ingredients: []string{"Chicken Breast", "Herbs", "Spices", "Mixed Vegetables"},
		calories:    "320 cal",
	},
	"6": {
		description: "Classic Italian pasta with crispy bacon, eggs, and parmesan cheese.",
		ingredients: []string{"Pasta", "Bacon", "Eggs", "Parmesan", "Black Pepper", "Cream"},
		calories:    "680 cal",
	},
	"7": {
		description: "Rich and moist chocolate cake with chocolate ganache frosting.",
		ingredients: []string{"Chocolate", "Flour", "Sugar", "Eggs", "Butter", "Cocoa"},
		calories:    "420 cal",
	},
	"8": {
		description: "Freshly squeezed orange juice packed with vitamin C.",
		ingredients: []string{"Fresh Oranges", "Natural Pulp"},
		calories:    "110 cal",
	},
}

// Items returns a copy of the full menu, in catalogue order. Detail fields
// are not populated; use ByID for the merged view.
func Items() []model.MenuItem {
	items := make([]model.MenuItem, len(menuItems))
	copy(items, menuItems)
	return items
}

// ByID returns the menu item with the given id, with description, ingredients
// and calories merged in. The second return value reports whether the id
// exists in the catalogue.
func ByID(id string) (model.MenuItem, bool) {
	for _, item := range menuItems {
		if item.ID == id {
			if d, ok := foodDetails[id]; ok {
				item.Description = d.description
				item.Ingredients = append([]string(nil), d.ingredients...)
				item.Calories = d.calories
			}
			return item, true
		}
	}
	return model.MenuItem{}, false
}

// Search returns the menu items whose name contains query, case-insensitively.
// A blank query returns the full menu.
func Search(query string) []model.MenuItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return Items()
	}

	q := strings.ToLower(query)
	var matched []model.MenuItem
	for _, item := range menuItems {
		if strings.Contains(strings.ToLower(item.Name), q) {
			matched = append(matched, item)
		}
	}
	return matched
}
