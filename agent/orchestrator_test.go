package agent

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dapoerjuna/model"
	"dapoerjuna/persona"
	"dapoerjuna/recipe"
	"dapoerjuna/retriever"
	"dapoerjuna/session"
	"dapoerjuna/tool"
)

func testStore() *recipe.Store {
	return recipe.NewStore([]recipe.Record{
		recipe.NewRecord("Ayam Kecap", "ayam", []string{"ayam", "kecap"}, "Tumis ayam.\nTuang kecap.", "mudah", 40, 2),
		recipe.NewRecord("Ayam Geprek", "ayam", []string{"ayam", "garam", "cabai"}, "Goreng lalu geprek.", "mudah", 30, 3),
		recipe.NewRecord("Ayam Kecap Pedas", "ayam", []string{"ayam", "kecap", "cabai"}, "Tumis dengan cabai.", "sedang", 20, 3),
		recipe.NewRecord("Sayur Asem", "sayur", []string{"asam", "jagung"}, "Rebus semua.", "sedang", 10, 2),
	})
}

func testRetriever(t *testing.T, store *recipe.Store) *retriever.Retriever {
	t.Helper()
	retr := retriever.New(retriever.NewTFIDFEmbedder())
	indexPath := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, retr.Build(context.Background(), store, indexPath, true))
	return retr
}

func testOrchestrator(t *testing.T, m model.Model) (*Orchestrator, *session.Session) {
	t.Helper()
	store := testStore()
	retr := testRetriever(t, store)

	registry, err := tool.NewRegistry(tool.RecipeToolkit(store, retr)...)
	require.NoError(t, err)

	orch := New(m, retr, registry, func(o *Options) {
		o.Rand = rand.New(rand.NewSource(1))
	})
	sess := session.New(session.NewID(), 8, persona.AttitudeSupportive)
	return orch, sess
}

func TestRespond_DefaultRouteSynthesizes(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("cara membuat kerak nasi renyah") // rewrite
	m.QueueResponse("Panaskan nasi di wajan tanpa minyak sampai garing.")

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "gimana cara bikin kerak nasi renyah?")
	require.NoError(t, err)

	assert.Equal(t, "Panaskan nasi di wajan tanpa minyak sampai garing.", reply)
	assert.Equal(t, 2, m.Calls())
}

func TestRespond_AttitudeRouteSkipsModelDecision(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("ubah sikap juna") // rewrite still runs first

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "Juna, galak dong!")
	require.NoError(t, err)

	assert.Equal(t, "Sikap Juna di-set ke 'galak'.", reply)
	assert.Equal(t, persona.AttitudeHarsh, sess.Attitude())
	assert.Equal(t, 1, m.Calls())
}

func TestRespond_IngredientRouteEndToEnd(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("resep dengan ayam dan kecap") // rewrite
	m.QueueResponse(`<tool>CALL_filter_by_ingredients {"ingredients": "ayam, kecap"}</tool>`)
	m.QueueResponse("Cuma ada satu: Ayam Kecap. Mau lihat detailnya?")

	orch, sess := testOrchestrator(t, m)
	// Seed the session blob the filter falls back on.
	sess.SetLastRecipes(recipe.JoinBlocks(testStore().Blocks()))

	reply, err := orch.Respond(context.Background(), sess, "ada ayam dan kecap, mau masak apa?")
	require.NoError(t, err)

	assert.Equal(t, "Cuma ada satu: Ayam Kecap. Mau lihat detailnya?", reply)
	assert.Equal(t, 3, m.Calls())

	// The tool output landed in the turn's memory trail. Both kecap dishes
	// cover the requested ingredients even though the second has extras.
	history := sess.Memory.Render()
	assert.Contains(t, history, "Ayam Kecap")
	assert.Contains(t, history, "Ayam Kecap Pedas")
	assert.NotContains(t, history, "Ayam Geprek")
	assert.NotContains(t, history, "Sayur Asem")
}

func TestRespond_LoopBoundTerminatesAtErrorResponder(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("resep ayam") // rewrite
	for i := 0; i < 10; i++ {
		m.QueueResponse(`<tool>CALL_get_most_loved {"top_n": 1}</tool>`)
	}

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "aku punya ayam")
	require.NoError(t, err)

	assert.Contains(t, reply, "Coba ulangi pertanyaanmu")
	// One rewrite plus at most MaxSteps decision calls.
	assert.LessOrEqual(t, m.Calls(), 1+DefaultMaxSteps)
}

func TestRespond_MalformedCallHitsErrorResponder(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("resep ayam") // rewrite
	m.QueueResponse("CALL_ {}")   // marker present, name missing

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "aku punya ayam")
	require.NoError(t, err)

	assert.Equal(t, "Tool format salah.", reply)
}

func TestRespond_UnknownToolHitsErrorResponder(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("resep ayam")
	m.QueueResponse(`CALL_order_gojek {"to": "warung"}`)

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "aku punya ayam")
	require.NoError(t, err)

	assert.Equal(t, "Tool `order_gojek` tidak dikenal.", reply)
}

func TestRespond_ModelFailureHitsErrorResponder(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueError(errors.New("rate limited"))

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "resep favorit dong")
	require.NoError(t, err)

	assert.Equal(t, "Maaf, terjadi kesalahan.", reply)
}

func TestRespond_DetailReplyCachedAsLastRecipes(t *testing.T) {
	store := testStore()
	detail := store.Records()[0].Block()

	m := model.NewMockModel("mock")
	m.QueueResponse("detail ayam kecap") // rewrite
	m.QueueResponse(`<tool>CALL_get_most_loved {"top_n": 1}</tool>`)
	m.QueueResponse(detail)

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "aku punya ayam, kasih detail")
	require.NoError(t, err)

	require.True(t, recipe.IsDetailBlock(reply))
	assert.Equal(t, reply, sess.LastRecipes())
}

func TestRespond_SetAttitudeToolAppliesToSession(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("ubah mood") // rewrite
	m.QueueResponse(`CALL_set_juna_attitude {"attitude": "mean"}`)
	m.QueueResponse("Oke, sekarang aku galak.")

	orch, sess := testOrchestrator(t, m)
	// Bypass the attitude route on purpose: the model decided to call the
	// tool from an ingredient turn.
	reply, err := orch.Respond(context.Background(), sess, "aku punya telur")
	require.NoError(t, err)

	assert.Equal(t, "Oke, sekarang aku galak.", reply)
	assert.Equal(t, persona.AttitudeHarsh, sess.Attitude())
}

func TestRespond_CanceledContext(t *testing.T) {
	m := model.NewMockModel("mock")
	orch, sess := testOrchestrator(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Respond(ctx, sess, "resep ayam")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRespond_StripsCallRemnantsFromFinalReply(t *testing.T) {
	m := model.NewMockModel("mock")
	m.QueueResponse("resep ayam")
	m.QueueResponse(`<tool>CALL_get_most_loved {"top_n": 1}</tool>`)
	m.QueueResponse("sudah selesai</tool>\nIni jawabannya: Ayam Kecap.")

	orch, sess := testOrchestrator(t, m)
	reply, err := orch.Respond(context.Background(), sess, "aku punya ayam")
	require.NoError(t, err)

	assert.False(t, strings.Contains(reply, "</tool>"))
	assert.Equal(t, "Ini jawabannya: Ayam Kecap.", reply)
}
