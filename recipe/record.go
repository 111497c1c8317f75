// Package recipe owns the recipe table and its serialized block format. The
// table is read-only after load; derived diet/weight tags are computed once.
package recipe

import (
	"fmt"
	"strings"
)

// Diet tags derived from the category membership test.
const (
	DietVegan    = "vegan"
	DietNonVegan = "non vegan"
)

// Weight tags derived from the ingredient-count threshold.
const (
	WeightLight = "ringan"
	WeightHeavy = "berat"
)

// lightIngredientMax is the inclusive ingredient-count bound for a "ringan" meal.
const lightIngredientMax = 8

// nonVeganCategories marks the protein categories that make a recipe non-vegan.
var nonVeganCategories = map[string]struct{}{
	"ayam":    {},
	"kambing": {},
	"sapi":    {},
	"ikan":    {},
	"udang":   {},
	"telur":   {},
}

// Record is one recipe row. Immutable once loaded; Diet and Weight are
// derived at load time, never stored in the source table.
type Record struct {
	Title       string
	Category    string
	Ingredients []string
	Steps       string
	Difficulty  string
	Loves       int
	Diet        string
	Weight      string
}

// NewRecord builds a Record and computes its derived tags. ingredientCount
// overrides the parsed ingredient list length when the source table carries
// its own count column; pass 0 to use len(ingredients).
func NewRecord(title, category string, ingredients []string, steps, difficulty string, loves, ingredientCount int) Record {
	r := Record{
		Title:       title,
		Category:    category,
		Ingredients: ingredients,
		Steps:       steps,
		Difficulty:  difficulty,
		Loves:       loves,
	}
	if _, ok := nonVeganCategories[strings.ToLower(category)]; ok {
		r.Diet = DietNonVegan
	} else {
		r.Diet = DietVegan
	}
	count := ingredientCount
	if count <= 0 {
		count = len(ingredients)
	}
	if count <= lightIngredientMax {
		r.Weight = WeightLight
	} else {
		r.Weight = WeightHeavy
	}
	return r
}

// Block renders the record in the wire format all tools and the retriever
// operate on. Fields are `Label: value` lines; blocks are joined with a blank
// line, so the rendering must never contain one.
func (r Record) Block() string {
	return fmt.Sprintf(
		"Judul: %s  (Loved: %d)\n"+
			"Kategori: %s\n"+
			"Diet: %s\n"+
			"Difficulty: %s\n"+
			"Bahan: %s\n"+
			"Berat: %s\n"+
			"Loves: %d\n"+
			"Langkah:\n%s",
		r.Title, r.Loves,
		r.Category,
		r.Diet,
		r.Difficulty,
		strings.Join(r.Ingredients, ", "),
		r.Weight,
		r.Loves,
		strings.ReplaceAll(strings.TrimSpace(r.Steps), "\n\n", "\n"),
	)
}
