package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord_DerivedTags(t *testing.T) {
	r := NewRecord("Ayam Geprek", "Ayam", []string{"ayam", "cabai", "garam"}, "Goreng ayam.", "Mudah", 120, 0)
	assert.Equal(t, DietNonVegan, r.Diet)
	assert.Equal(t, WeightLight, r.Weight)

	veg := NewRecord("Tumis Kangkung", "sayur", make9(), "Tumis.", "Mudah", 10, 0)
	assert.Equal(t, DietVegan, veg.Diet)
	assert.Equal(t, WeightHeavy, veg.Weight)
}

func TestNewRecord_CountColumnOverridesList(t *testing.T) {
	r := NewRecord("Sop", "sayur", []string{"wortel"}, "Rebus.", "Mudah", 3, 12)
	assert.Equal(t, WeightHeavy, r.Weight)
}

func TestBlock_Rendering(t *testing.T) {
	r := NewRecord("Ayam Geprek", "Ayam", []string{"ayam", "cabai"}, "Goreng.\n\nGeprek.", "Mudah", 120, 0)
	block := r.Block()

	assert.Contains(t, block, "Judul: Ayam Geprek  (Loved: 120)")
	assert.Contains(t, block, "Kategori: Ayam")
	assert.Contains(t, block, "Bahan: ayam, cabai")
	assert.Contains(t, block, "Langkah:")
	// A rendered block must survive split/join intact.
	assert.NotContains(t, block, Separator)
	assert.Equal(t, []string{block}, SplitBlocks(block))
}

func make9() []string {
	out := make([]string, 9)
	for i := range out {
		out[i] = strings.Repeat("x", i+1)
	}
	return out
}
