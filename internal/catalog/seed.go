package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Seed loads the demo catalog into an empty database. It is a no-op when
// categories already exist, so it is safe to run on every boot.
func Seed(ctx context.Context, repo Repository) error {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	categories := []Category{
		{Name: "Electronics", Description: "Latest electronic gadgets and devices"},
		{Name: "Fashion", Description: "Trendy clothing and accessories"},
		{Name: "Home & Garden", Description: "Everything for your home and garden"},
		{Name: "Sports", Description: "Sports equipment and accessories"},
	}
	byName := make(map[string]string, len(categories))
	for i := range categories {
		if err := repo.CreateCategory(ctx, &categories[i]); err != nil {
			return fmt.Errorf("seed category %s: %w", categories[i].Name, err)
		}
		byName[categories[i].Name] = categories[i].ID
	}

	products := []Product{
		{Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation", Price: decimal.NewFromFloat(99.99), Stock: 50, CategoryID: byName["Electronics"], Featured: true},
		{Name: "Smart Watch", Description: "Advanced smartwatch with health monitoring", Price: decimal.NewFromFloat(199.99), Stock: 30, CategoryID: byName["Electronics"], Featured: true},
		{Name: "Laptop Backpack", Description: "Durable laptop backpack with multiple compartments", Price: decimal.NewFromFloat(49.99), Stock: 75, CategoryID: byName["Fashion"], Featured: true},
		{Name: "Bluetooth Speaker", Description: "Portable Bluetooth speaker with excellent sound quality", Price: decimal.NewFromFloat(79.99), Stock: 40, CategoryID: byName["Electronics"], Featured: true},
		{Name: "Running Shoes", Description: "Comfortable running shoes for all terrains", Price: decimal.NewFromFloat(129.99), Stock: 60, CategoryID: byName["Sports"]},
		{Name: "Coffee Maker", Description: "Automatic coffee maker with programmable settings", Price: decimal.NewFromFloat(89.99), Stock: 25, CategoryID: byName["Home & Garden"]},
		{Name: "Yoga Mat", Description: "Non-slip yoga mat for comfortable workouts", Price: decimal.NewFromFloat(29.99), Stock: 100, CategoryID: byName["Sports"]},
		{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with long battery life", Price: decimal.NewFromFloat(39.99), Stock: 80, CategoryID: byName["Electronics"]},
	}
	for i := range products {
		if err := repo.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}

	return nil
}
