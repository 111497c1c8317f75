package recipe

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Store holds the loaded recipe table. Read-only after Load.
type Store struct {
	records []Record
}

// NewStore wraps an already-built record slice, mainly for tests.
func NewStore(records []Record) *Store {
	return &Store{records: records}
}

// Load reads the recipe CSV, normalizes headers (trim, lowercase, spaces to
// underscores, difficulty_level renamed to difficulty) and computes derived
// tags for every row.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipe table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read recipe table: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("recipe table %s has no data rows", path)
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if name == "difficulty_level" {
			name = "difficulty"
		}
		col[name] = i
	}
	for _, required := range []string{"title", "category", "ingredients", "steps", "loves"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("recipe table %s missing column %q", path, required)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		loves, _ := strconv.Atoi(get("loves"))
		count, _ := strconv.Atoi(get("total_ingredients"))
		records = append(records, NewRecord(
			get("title"),
			get("category"),
			splitIngredients(get("ingredients")),
			get("steps"),
			get("difficulty"),
			loves,
			count,
		))
	}
	return &Store{records: records}, nil
}

func splitIngredients(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of loaded records.
func (s *Store) Len() int { return len(s.records) }

// Records returns a copy of the record slice.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Blocks renders every record in table order, ready for indexing.
func (s *Store) Blocks() []string {
	blocks := make([]string, len(s.records))
	for i, r := range s.records {
		blocks[i] = r.Block()
	}
	return blocks
}

// MostLoved returns the top-n records by Loves descending. The sort is
// stable: ties keep their original table order.
func (s *Store) MostLoved(n int) []Record {
	if n <= 0 {
		n = 5
	}
	out := s.Records()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loves > out[j].Loves })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
