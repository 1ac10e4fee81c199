package memory

import "github.com/MisakSofoyan1/product-app/internal/domain"

// SeedProducts returns the sample catalog served by the mock API.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Trail Runner 2", Category: "Shoes", Brand: "Northpeak", Price: 89.99, Rating: 4.5},
		{ID: 2, Name: "City Sneaker", Category: "Shoes", Brand: "Urbanline", Price: 64.5, Rating: 3.9},
		{ID: 3, Name: "Leather Boot", Category: "Shoes", Brand: "Hartwell", Price: 149, Rating: 4.7},
		{ID: 4, Name: "Canvas Slip-On", Category: "Shoes", Brand: "Urbanline", Price: 39.99, Rating: 3.2},
		{ID: 5, Name: "Daypack 20L", Category: "Bags", Brand: "Northpeak", Price: 54, Rating: 4.1},
		{ID: 6, Name: "Weekender Duffel", Category: "Bags", Brand: "Hartwell", Price: 189.95, Rating: 4.8},
		{ID: 7, Name: "Laptop Sleeve", Category: "Bags", Brand: "Urbanline", Price: 24.99, Rating: 3.6},
		{ID: 8, Name: "Crossbody Pouch", Category: "Bags", Brand: "Lumen", Price: 32, Rating: 2.9},
		{ID: 9, Name: "Rain Shell", Category: "Jackets", Brand: "Northpeak", Price: 129.99, Rating: 4.4},
		{ID: 10, Name: "Quilted Vest", Category: "Jackets", Brand: "Lumen", Price: 79, Rating: 3.8},
		{ID: 11, Name: "Wool Overcoat", Category: "Jackets", Brand: "Hartwell", Price: 349, Rating: 4.9},
		{ID: 12, Name: "Denim Jacket", Category: "Jackets", Brand: "Urbanline", Price: 99.5, Rating: 4},
		{ID: 13, Name: "Steel Watch", Category: "Accessories", Brand: "Hartwell", Price: 229, Rating: 4.6},
		{ID: 14, Name: "Knit Beanie", Category: "Accessories", Brand: "Lumen", Price: 18.5, Rating: 3.4},
		{ID: 15, Name: "Polarized Sunglasses", Category: "Accessories", Brand: "Northpeak", Price: 59.99, Rating: 4.2},
		{ID: 16, Name: "Leather Belt", Category: "Accessories", Brand: "Hartwell", Price: 45, Rating: 4.3},
		{ID: 17, Name: "Merino Tee", Category: "Shirts", Brand: "Northpeak", Price: 49, Rating: 4.5},
		{ID: 18, Name: "Oxford Shirt", Category: "Shirts", Brand: "Hartwell", Price: 69, Rating: 4.1},
		{ID: 19, Name: "Graphic Tee", Category: "Shirts", Brand: "Urbanline", Price: 19.99, Rating: 2.5},
		{ID: 20, Name: "Linen Shirt", Category: "Shirts", Brand: "Lumen", Price: 55, Rating: 3.7},
		{ID: 21, Name: "Running Shorts", Category: "Shorts", Brand: "Northpeak", Price: 34.99, Rating: 4},
		{ID: 22, Name: "Chino Shorts", Category: "Shorts", Brand: "Urbanline", Price: 42, Rating: 3.5},
		{ID: 23, Name: "Swim Trunks", Category: "Shorts", Brand: "Lumen", Price: 29.5, Rating: 3.1},
		{ID: 24, Name: "Cargo Shorts", Category: "Shorts", Brand: "Hartwell", Price: 58, Rating: 0},
		{ID: 25, Name: "Travel Wallet", Category: "Accessories", Brand: "Lumen", Price: 0, Rating: 5},
	}
}
