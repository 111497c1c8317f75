package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleBlocks = "Judul: Ayam Bakar  (Loved: 30)\nKategori: Ayam\nBahan: ayam, kecap, bawang\n\n" +
	"Judul: Sayur Asem  (Loved: 12)\nKategori: sayur\nBahan: asam jawa, jagung"

func TestSplitJoinRoundTrip(t *testing.T) {
	blocks := SplitBlocks(sampleBlocks)
	assert.Len(t, blocks, 2)
	assert.Equal(t, sampleBlocks, JoinBlocks(blocks))
}

func TestSplitBlocks_DropsEmptySegments(t *testing.T) {
	blocks := SplitBlocks("a\n\n\n\nb\n\n")
	assert.Equal(t, []string{"a", "b"}, blocks)
}

func TestBlockIngredients(t *testing.T) {
	blocks := SplitBlocks(sampleBlocks)
	set := BlockIngredients(blocks[0])
	assert.Contains(t, set, "ayam")
	assert.Contains(t, set, "kecap")
	assert.Contains(t, set, "bawang")
	assert.NotContains(t, set, "jagung")

	assert.Empty(t, BlockIngredients("Judul: Tanpa Bahan"))
}

func TestBlockTitle(t *testing.T) {
	blocks := SplitBlocks(sampleBlocks)
	assert.Equal(t, "Ayam Bakar", BlockTitle(blocks[0]))
	assert.Equal(t, "Sayur Asem", BlockTitle(blocks[1]))
	assert.Equal(t, "", BlockTitle("Bahan: ayam"))
}

func TestBlockTitles(t *testing.T) {
	assert.Equal(t, []string{"Ayam Bakar", "Sayur Asem"}, BlockTitles(sampleBlocks))
}

func TestIsDetailBlock(t *testing.T) {
	r := NewRecord("Ayam Bakar", "Ayam", []string{"ayam"}, "Bakar.", "Mudah", 1, 0)
	assert.True(t, IsDetailBlock(r.Block()))
	assert.False(t, IsDetailBlock(sampleBlocks))
}
