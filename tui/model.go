// Package tui renders the chat front end: a scrolling transcript, an input
// line and a mood selector, over a single conversation session. The
// assistant turn runs asynchronously in a tea.Cmd so the UI keeps painting
// its busy indicator while the model thinks.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dapoerjuna/persona"
	"dapoerjuna/session"
)

// Assistant is the TUI-facing subset of the orchestrator.
type Assistant interface {
	Respond(ctx context.Context, sess *session.Session, userMsg string) (string, error)
}

// chatLine is one rendered transcript entry.
type chatLine struct {
	role string // "user" or "chef"
	text string
}

// replyMsg delivers the result of an asynchronous assistant turn.
type replyMsg struct {
	reply string
	err   error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	assistant  Assistant
	sess       *session.Session
	input      textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	transcript []chatLine
	mood       persona.Attitude
	busy       bool
	ready      bool
	status     string
}

// New creates the chat model over an assistant and a session.
func New(assistant Assistant, sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Mau masak apa hari ini? Ketik aja…"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		assistant: assistant,
		sess:      sess,
		input:     ti,
		viewport:  viewport.New(0, 0),
		spin:      sp,
		mood:      sess.Attitude(),
		status:    "Siap. Tab ganti mood, Ctrl+L hapus riwayat, Ctrl+C keluar.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and turn-completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 3 + ih + 1 // header, subtitle, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "tab":
			m.mood = cycleMood(m.mood)
			m.sess.SetAttitude(m.mood)
			m.status = "Mood Chef Juna: " + moodLabel(m.mood)
			return m, nil
		case "ctrl+l":
			m.sess.Reset()
			m.transcript = nil
			m.status = "Riwayat chat dihapus."
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}

	case replyMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.transcript = append(m.transcript, chatLine{role: "chef", text: msg.reply})
			m.status = "Mood Chef Juna: " + moodLabel(m.sess.Attitude())
		}
		m.mood = m.sess.Attitude()
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit kicks off an assistant turn for the typed message.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.transcript = append(m.transcript, chatLine{role: "user", text: prompt})
	m.busy = true
	m.status = "Chef Juna sedang mikir…"
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spin.Tick, turnCmd(m.assistant, m.sess, prompt))
}

// turnCmd runs one assistant turn off the UI goroutine.
func turnCmd(assistant Assistant, sess *session.Session, prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := assistant.Respond(context.Background(), sess, prompt)
		return replyMsg{reply: reply, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	header := headerStyle.Render("🍳 DAPOERJUNA – Masakan Indonesia Gak Perlu Ribet")
	subtitle := subtitleStyle.Render("👨‍🍳 Chef Juna siap bantu. Mood: " + moodLabel(m.mood))
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := m.status
	if m.busy {
		status = m.spin.View() + " " + status
	}

	return header + "\n" + subtitle + "\n" + transcript + "\n" + input + "\n" + statusStyle.Render(status)
}

// renderTranscript formats the chat history for the viewport.
func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Belum ada chat. Coba tanya kayak gini dulu:\n\n" +
			"  \"Gimana sih cara bikin ayam geprek yang kriuk di luar, juicy di dalam?\"\n" +
			"  \"Berikan saya resep yang paling banyak disukai\"\n" +
			"  \"Chef Juna, aku mau resep makanan yang mudah dan cocok untuk diet vegan!\""
	}
	var b strings.Builder
	for i, line := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if line.role == "user" {
			b.WriteString(userStyle.Render("🧑 Kamu: "))
		} else {
			b.WriteString(chefStyle.Render("👨‍🍳 Chef Juna: "))
		}
		b.WriteString(line.text)
	}
	return b.String()
}

// cycleMood steps through the selectable moods in a fixed order.
func cycleMood(a persona.Attitude) persona.Attitude {
	switch a {
	case persona.AttitudeSupportive:
		return persona.AttitudeHarsh
	case persona.AttitudeHarsh:
		return persona.AttitudeRandom
	default:
		return persona.AttitudeSupportive
	}
}

// moodLabel renders the sidebar-style mood names.
func moodLabel(a persona.Attitude) string {
	switch a {
	case persona.AttitudeHarsh:
		return "Chef Juna Galak 😈"
	case persona.AttitudeRandom:
		return "Random Mood 🎭"
	default:
		return "Chef Juna Mengayomi 👼"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	subtitleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle          = lipgloss.NewStyle().Bold(true)
	chefStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)
