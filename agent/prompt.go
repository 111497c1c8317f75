package agent

import (
	"strings"

	"dapoerjuna/persona"
)

// systemBase is the static instruction preamble shared by every model call
// of a turn. The tool catalog is appended from the registry at construction
// so the prompt never drifts from the tools actually wired in.
const systemBase = `Kamu adalah chef virtual bernama Juna yang ahli resep masakan Indonesia.
Gunakan hanya data dari KONTEKS RESEP yang diberikan di database vector.
Jika perlu menggunakan tool, gunakan hanya tool yang ada di daftar di bawah ini.

Format pemanggilan tool yang benar:
<tool>CALL_nama_tool {"arg1": "value1", "arg2": "value2"}</tool>

Jangan gunakan tool lain di luar daftar ini! Jika tidak perlu tool, jawab langsung.`

// decideSuffix caps listing replies at five titles and asks the user to
// pick one. Advisory only, the model enforces it.
const decideSuffix = "Jika hasilnya lebih dari satu resep, berikan hanya daftar judul resepnya (maksimal 5) tanpa detail. Minta user memilih salah satu untuk melihat detailnya."

// instructions renders the per-turn system text: resolved persona style,
// the static preamble and the tool catalog.
func instructions(att persona.Attitude, toolCatalog string) string {
	var b strings.Builder
	b.WriteString(persona.Style(att))
	b.WriteString("\n")
	b.WriteString(systemBase)
	b.WriteString("\n\nTool yang tersedia:\n")
	b.WriteString(toolCatalog)
	return b.String()
}

// rewritePrompt asks the model to restate the user's question as a search
// query.
func rewritePrompt(userMsg string) string {
	return "Rewrite pertanyaan berikut agar cocok untuk pencarian resep:\n" +
		userMsg + "\n\nRewritten:"
}

// decidePrompt assembles the decision step input: rolling memory, the full
// per-turn message log and the listing constraint.
func decidePrompt(history string, messages []string) string {
	var b strings.Builder
	if history != "" {
		b.WriteString(history)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(messages, "\n"))
	b.WriteString("\n\nAssistant: ")
	b.WriteString(decideSuffix)
	return b.String()
}

// synthPrompt grounds the final answer in the retrieved recipe blocks.
func synthPrompt(docs, rewritten string) string {
	return "Docs:\n" + docs + "\n\nPertanyaan: " + rewritten +
		"\n\nJawaban ringkas (Bahasa Indonesia):"
}
