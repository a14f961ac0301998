package domain

// Category groups products. Top-level categories only hold subcategories;
// products are filed under subcategories.
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    string
}

// IsLeaf reports whether products may be filed under c.
func (c *Category) IsLeaf() bool {
	return c.ParentID != ""
}

// CategorySeed is one top-level category with its subcategories.
type CategorySeed struct {
	Name        string
	Description string
	Children    []CategorySeed
}

// DefaultCategoryTree is the catalog's initial category layout.
var DefaultCategoryTree = []CategorySeed{
	{
		Name:        "Home Appliances & Household",
		Description: "Appliances and products for the home",
		Children: []CategorySeed{
			{Name: "Appliances", Description: "Washing machines, fridges and the like"},
			{Name: "Household Items", Description: "Utensils, decoration, cleaning"},
		},
	},
	{
		Name:        "Sweets & Gifts",
		Description: "Sweets, preserves and gift items",
		Children: []CategorySeed{
			{Name: "Sweets", Description: "Chocolates, candy, cookies"},
			{Name: "Preserves", Description: "Jams, jellies, traditional sweets"},
			{Name: "Gifts", Description: "Plush toys, boxes, gift items"},
		},
	},
	{
		Name:        "Toys",
		Description: "Toys for all ages",
		Children: []CategorySeed{
			{Name: "Kids' Toys", Description: "Educational and building toys"},
		},
	},
}
