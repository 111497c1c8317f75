package tool

import (
	"strconv"
	"strings"

	"dapoerjuna/persona"
	"dapoerjuna/recipe"
	"dapoerjuna/retriever"
)

// stringArg returns args[key] as a string, or "" when absent or mistyped.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg returns args[key] as an int, tolerating the float64 that JSON
// decoding produces for numbers. def is returned when absent or mistyped.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// blocksArg resolves the recipe blob a filter should operate on: the
// explicit recipes argument when given, otherwise the session's last
// search results.
func blocksArg(toolCtx *Context, args map[string]any) string {
	if blob := stringArg(args, "recipes"); blob != "" {
		return blob
	}
	if sess := toolCtx.Session(); sess != nil {
		return sess.LastRecipes()
	}
	return ""
}

// RetrieveRecipe returns the semantic search tool: the k most relevant
// recipe blocks for a free-text query.
func RetrieveRecipe(retr *retriever.Retriever) Tool {
	return retrievalTool(retr, "retrieve_recipe", "RAG - k resep paling relevan untuk query.")
}

// GetRecipe is an alias of RetrieveRecipe kept because models frequently
// guess this name.
func GetRecipe(retr *retriever.Retriever) Tool {
	return retrievalTool(retr, "get_recipe", "Alias dari retrieve_recipe.")
}

func retrievalTool(retr *retriever.Retriever, name, description string) Tool {
	return NewFunctionTool(
		name,
		description,
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "Kata kunci pencarian resep"},
				"k":     map[string]any{"type": "number", "description": "Jumlah resep yang diambil"},
			},
			"required": []string{"query"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			k := intArg(args, "k", retriever.DefaultK)
			results, err := retr.Search(toolCtx.Context(), stringArg(args, "query"), k)
			if err != nil {
				return "", err
			}
			blocks := make([]string, 0, len(results))
			for _, res := range results {
				blocks = append(blocks, res.Text)
			}
			return recipe.JoinBlocks(blocks), nil
		},
	)
}

// FilterByCategory keeps the blocks whose Kategori line matches the
// requested category.
func FilterByCategory() Tool {
	return NewFunctionTool(
		"filter_by_category",
		"Filter blok resep berdasarkan kategori (contoh: 'ayam', 'sapi', dll).",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recipes":  map[string]any{"type": "string", "description": "Blok resep yang akan difilter"},
				"category": map[string]any{"type": "string", "description": "Kategori yang dicari"},
			},
			"required": []string{"category"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			needle := "kategori: " + strings.ToLower(stringArg(args, "category"))
			return filterBlocks(blocksArg(toolCtx, args), func(block string) bool {
				return strings.Contains(strings.ToLower(block), needle)
			}), nil
		},
	)
}

// FilterByWeight keeps blocks matching a meal weight, 'ringan' or 'berat'.
// Only the first word of the argument counts, so phrases like "ringan saja"
// still work.
func FilterByWeight() Tool {
	return NewFunctionTool(
		"filter_by_weight",
		"Filter blok resep berdasarkan berat makanan: 'ringan' atau 'berat'.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recipes":     map[string]any{"type": "string", "description": "Blok resep yang akan difilter"},
				"meal_weight": map[string]any{"type": "string", "description": "'ringan' atau 'berat'"},
			},
			"required": []string{"meal_weight"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			fields := strings.Fields(strings.ToLower(stringArg(args, "meal_weight")))
			if len(fields) == 0 {
				return "", nil
			}
			key := fields[0]
			return filterBlocks(blocksArg(toolCtx, args), func(block string) bool {
				return strings.Contains(strings.ToLower(block), key)
			}), nil
		},
	)
}

// FilterByDifficulty keeps blocks whose text mentions the requested
// difficulty level.
func FilterByDifficulty() Tool {
	return NewFunctionTool(
		"filter_by_difficulty",
		"Filter blok resep berdasarkan tingkat kesulitan: 'mudah', 'sedang', 'cukup rumit', atau 'sulit'.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recipes":    map[string]any{"type": "string", "description": "Blok resep yang akan difilter"},
				"difficulty": map[string]any{"type": "string", "description": "Tingkat kesulitan yang dicari"},
			},
			"required": []string{"difficulty"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			needle := strings.ToLower(stringArg(args, "difficulty"))
			return filterBlocks(blocksArg(toolCtx, args), func(block string) bool {
				return strings.Contains(strings.ToLower(block), needle)
			}), nil
		},
	)
}

// FilterByIngredients keeps the blocks whose Bahan line contains every
// ingredient in the user's comma separated list.
func FilterByIngredients() Tool {
	return NewFunctionTool(
		"filter_by_ingredients",
		"Filter resep yang semua bahannya ada dalam daftar bahan pengguna.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ingredients": map[string]any{"type": "string", "description": "Daftar bahan pengguna, dipisah koma"},
				"recipes":     map[string]any{"type": "string", "description": "Blok resep yang akan difilter"},
			},
			"required": []string{"ingredients"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			wanted := map[string]struct{}{}
			for _, item := range strings.Split(stringArg(args, "ingredients"), ",") {
				if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
					wanted[item] = struct{}{}
				}
			}
			return filterBlocks(blocksArg(toolCtx, args), func(block string) bool {
				if len(wanted) == 0 {
					return false
				}
				have := recipe.BlockIngredients(block)
				for ing := range wanted {
					if _, ok := have[ing]; !ok {
						return false
					}
				}
				return true
			}), nil
		},
	)
}

// GetMostLoved returns the top-n recipes by love count, rendered as full
// detail blocks straight from the store.
func GetMostLoved(store *recipe.Store) Tool {
	return NewFunctionTool(
		"get_most_loved",
		"Ambil top-n resep yang paling banyak disukai.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"top_n": map[string]any{"type": "number", "description": "Jumlah resep teratas"},
			},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			records := store.MostLoved(intArg(args, "top_n", 0))
			blocks := make([]string, 0, len(records))
			for _, r := range records {
				blocks = append(blocks, r.Block())
			}
			return recipe.JoinBlocks(blocks), nil
		},
	)
}

// GetRecipeDetails picks a single block from a recipe blob by 1-based
// number or partial title. A miss yields an empty string, never an error.
func GetRecipeDetails() Tool {
	return NewFunctionTool(
		"get_recipe_details",
		"Ambil 1 resep dari hasil pencarian sebelumnya berdasarkan nomor atau judul parsial.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"selection": map[string]any{"type": "string", "description": "Nomor (1-based) atau sebagian judul resep"},
				"recipes":   map[string]any{"type": "string", "description": "Blok resep sumber"},
			},
			"required": []string{"selection"},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			blocks := recipe.SplitBlocks(blocksArg(toolCtx, args))
			return pickBlock(blocks, stringArg(args, "selection")), nil
		},
	)
}

// SetJunaAttitude normalizes a mood token. The caller applies the returned
// value to the session; the tool itself has no side effects.
func SetJunaAttitude() Tool {
	return NewFunctionTool(
		"set_juna_attitude",
		"Ubah sikap Juna ke 'baik', 'galak', atau 'random'.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"attitude": map[string]any{"type": "string", "description": "'baik', 'galak/mean', atau 'random'"},
			},
		},
		func(toolCtx *Context, args map[string]any) (string, error) {
			token := stringArg(args, "attitude")
			if token == "" {
				token = string(persona.AttitudeSupportive)
			}
			return string(persona.Normalize(token)), nil
		},
	)
}

// RecipeToolkit assembles the full tool set over a recipe store and a
// retriever, in registry order.
func RecipeToolkit(store *recipe.Store, retr *retriever.Retriever) []Tool {
	return []Tool{
		RetrieveRecipe(retr),
		GetRecipe(retr),
		FilterByCategory(),
		FilterByWeight(),
		FilterByDifficulty(),
		FilterByIngredients(),
		GetMostLoved(store),
		GetRecipeDetails(),
		SetJunaAttitude(),
	}
}

// filterBlocks splits a blob, keeps the blocks the predicate accepts and
// rejoins them.
func filterBlocks(blob string, keep func(block string) bool) string {
	var out []string
	for _, block := range recipe.SplitBlocks(blob) {
		if keep(block) {
			out = append(out, block)
		}
	}
	return recipe.JoinBlocks(out)
}

// pickBlock resolves a selection against a block list: an all-digit
// selection is a 1-based index, anything else a case-insensitive substring
// match. Misses return "".
func pickBlock(blocks []string, selection string) string {
	sel := strings.ToLower(strings.TrimSpace(selection))
	if sel == "" {
		return ""
	}
	if isDigits(sel) {
		n, err := strconv.Atoi(sel)
		if err != nil {
			return ""
		}
		if idx := n - 1; idx >= 0 && idx < len(blocks) {
			return blocks[idx]
		}
		return ""
	}
	for _, b := range blocks {
		if strings.Contains(strings.ToLower(b), sel) {
			return b
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}
