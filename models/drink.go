package models

import (
	"encoding/json"
	"fmt"
)

// Ingredient is one entry of a drink recipe.
// The recipe column stores a JSON array of these records.
type Ingredient struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Parts int    `json:"parts" validate:"gte=0"`
}

// ShortIngredient is the short-form projection of an ingredient (name dropped)
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink represents a persisted catalog entity. Recipe holds the serialized
// ingredient list exactly as stored in the database.
type Drink struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Recipe string `json:"-"`
}

// DrinkLong is the long-form representation with full ingredient detail
type DrinkLong struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// DrinkShort is the short-form representation with ingredient names dropped
type DrinkShort struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Ingredients deserializes the recipe blob
func (d *Drink) Ingredients() ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := json.Unmarshal([]byte(d.Recipe), &ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	return ingredients, nil
}

// SetIngredients serializes the ingredient list into the recipe blob
func (d *Drink) SetIngredients(ingredients []Ingredient) error {
	blob, err := json.Marshal(ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	d.Recipe = string(blob)
	return nil
}

// Long returns the long-form projection of the drink
func (d *Drink) Long() (DrinkLong, error) {
	ingredients, err := d.Ingredients()
	if err != nil {
		return DrinkLong{}, err
	}
	return DrinkLong{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: ingredients,
	}, nil
}

// Short returns the short-form projection of the drink
func (d *Drink) Short() (DrinkShort, error) {
	ingredients, err := d.Ingredients()
	if err != nil {
		return DrinkShort{}, err
	}
	recipe := make([]ShortIngredient, len(ingredients))
	for i, ing := range ingredients {
		recipe[i] = ShortIngredient{Color: ing.Color, Parts: ing.Parts}
	}
	return DrinkShort{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: recipe,
	}, nil
}

// ParseRecipe validates that a raw recipe payload decodes to an ingredient list
func ParseRecipe(raw []byte) ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := json.Unmarshal(raw, &ingredients); err != nil {
		return nil, fmt.Errorf("recipe is not a list of ingredients: %w", err)
	}
	return ingredients, nil
}
