package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/snd"
	"github.com/cwbudde/snd/internal/display"
)

const (
	minCols    = 40
	minRows    = 24
	menuWidth  = 20
	headerRows = 2
	// maxGotoDigits bounds what the goto prompt accepts.
	maxGotoDigits = 15
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
)

type saveFunc func(path string, s *snd.SoundFile, f snd.Format) error

// model is the editor state. Edits replace sound wholesale; the previous
// value is never modified.
type model struct {
	path  string
	sound *snd.SoundFile
	save  saveFunc

	// frame numbers
	cursor int
	top    int
	mark   int

	clip     []int
	modified bool

	prompting bool
	input     string
	status    string

	width  int
	height int
}

func newModel(path string, sound *snd.SoundFile) model {
	return model{
		path:   path,
		sound:  sound,
		save:   snd.WriteFile,
		mark:   -1,
		width:  80,
		height: minRows,
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.prompting {
			return m.handlePrompt(msg), nil
		}

		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if len(key) == 1 {
		key = strings.ToLower(key)
	}

	m.status = ""

	switch key {
	case "q":
		return m, tea.Quit
	case "s":
		m.saveSound()
	case "^", "6":
		m.paste(m.cursor)
	case "v":
		m.paste(m.cursor + 1)
	}

	if m.sound.Frames == 0 {
		return m, nil
	}

	switch key {
	case "up":
		m.moveTo(m.cursor - 1)
	case "down":
		m.moveTo(m.cursor + 1)
	case "pgup":
		m.moveTo(m.cursor - m.pageFrames())
	case "pgdown":
		m.moveTo(m.cursor + m.pageFrames())
	case "g":
		m.prompting = true
		m.input = ""
	case "m":
		if m.mark < 0 {
			m.mark = m.cursor
		} else {
			m.mark = -1
		}
	case "c":
		m.copySelection()
	case "x":
		m.cutSelection()
	}

	return m, nil
}

func (m model) handlePrompt(msg tea.KeyMsg) model {
	key := msg.String()

	switch {
	case key == "enter":
		m.prompting = false

		n, err := strconv.Atoi(m.input)
		if err != nil || n >= m.sound.Frames {
			m.status = fmt.Sprintf("no frame %q", m.input)
		} else {
			m.cursor = n
			m.top = n
			m.scroll()
		}

		m.input = ""
	case key == "backspace":
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if len(m.input) < maxGotoDigits {
			m.input += key
		}
	default:
		m.prompting = false
		m.input = ""
	}

	return m
}

// selection returns the marked frames in ascending order.
func (m *model) selection() (int, int) {
	return min(m.mark, m.cursor), max(m.mark, m.cursor)
}

func (m *model) copySelection() {
	if m.mark < 0 {
		return
	}

	low, high := m.selection()

	clip, err := snd.CopyFrames(m.sound, low, high)
	if err != nil {
		m.status = err.Error()
		return
	}

	m.clip = clip
	m.status = fmt.Sprintf("copied %d frames", len(clip)/m.sound.Channels)
}

func (m *model) cutSelection() {
	if m.mark < 0 {
		return
	}

	low, high := m.selection()

	clip, err := snd.CopyFrames(m.sound, low, high)
	if err != nil {
		m.status = err.Error()
		return
	}

	cut, err := snd.Cut(m.sound, []snd.Range{{Low: low, High: high}})
	if err != nil {
		m.status = err.Error()
		return
	}

	m.clip = clip
	m.sound = cut
	m.mark = -1
	m.modified = true
	m.moveTo(low)
	m.status = fmt.Sprintf("cut %d frames", len(clip)/cut.Channels)
}

func (m *model) paste(at int) {
	if len(m.clip) == 0 {
		return
	}

	res, err := snd.Splice(m.sound, at, m.clip)
	if err != nil {
		m.status = err.Error()
		return
	}

	m.sound = res
	m.modified = true
	m.status = fmt.Sprintf("inserted %d frames", len(m.clip)/res.Channels)
}

func (m *model) saveSound() {
	if !m.modified {
		return
	}

	err := m.save(m.path, m.sound, m.sound.Format)
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}

	m.modified = false
	m.status = "saved"
}

func (m *model) pageFrames() int {
	return max(1, (m.height-headerRows)/m.sound.Channels)
}

func (m *model) moveTo(frame int) {
	m.cursor = max(0, min(frame, m.sound.Frames-1))
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	page := m.pageFrames()

	if m.cursor < m.top {
		m.top = m.cursor
	}

	if m.cursor >= m.top+page {
		m.top = m.cursor - page + 1
	}

	m.top = max(0, m.top)
}

// View renders the TUI
func (m model) View() string {
	if m.width < minCols || m.height < minRows {
		return fmt.Sprintf("window too small: need at least %dx%d", minCols, minRows)
	}

	body := m.height - headerRows
	title := fmt.Sprintf("%s(%s)", m.path, m.sound.Format)

	rows := make([]string, 0, m.height)
	rows = append(rows, titleStyle.Render(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)))
	rows = append(rows, strings.Repeat("=", m.width))

	data := m.dataLines(m.width-menuWidth, body)
	menu := m.menuLines(body)

	for i := 0; i < body; i++ {
		rows = append(rows, data[i]+menu[i])
	}

	return strings.Join(rows, "\n")
}

func (m model) dataLines(width, n int) []string {
	half := display.HalfWidth(width)
	low, high := m.selection()
	lines := make([]string, 0, n)

	for f := m.top; len(lines) < n; f++ {
		if f >= m.sound.Frames {
			lines = append(lines, fit("", width))
			continue
		}

		frame := m.sound.Frame(f)

		for ch := 0; ch < m.sound.Channels && len(lines) < n; ch++ {
			label := display.Label(-1)
			if ch == 0 {
				label = display.Label(f)
				if f == m.cursor {
					label = label[:len(label)-1] + ">"
				}
			}

			line := fit(label+display.Bar(frame[ch], m.sound.BitDepth, half), width)

			switch {
			case m.mark >= 0 && f >= low && f <= high:
				line = selectedStyle.Render(line)
			case f == m.cursor:
				line = cursorStyle.Render(line)
			}

			lines = append(lines, line)
		}
	}

	return lines
}

func (m model) menuLines(n int) []string {
	s := m.sound

	top := []string{
		fmt.Sprintf(" Sample Rate: %d", s.SampleRate),
		fmt.Sprintf(" Bit Depth: %d", s.BitDepth),
		fmt.Sprintf(" Channels: %d", s.Channels),
		fmt.Sprintf(" Samples: %d", s.Frames),
		" Length: " + display.Length(s.Frames, s.SampleRate),
		strings.Repeat("=", menuWidth),
	}

	if s.Frames > 0 {
		if m.mark >= 0 {
			top = append(top, "  m: unmark", "  c: copy", "  x: cut")
		} else {
			top = append(top, "  m: mark")
		}
	}

	if len(m.clip) > 0 {
		top = append(top, "  ^: insert before", "  v: insert after")
	}

	if m.modified {
		top = append(top, "  s: save")
	}

	top = append(top, "  q: quit", "", " Movement:", "  up/down", "  pgup/pgdn", "  g: goto")

	lines := make([]string, n)
	for i := range lines {
		if i < len(top) && i < n-4 {
			lines[i] = fit(top[i], menuWidth)
		} else {
			lines[i] = fit("", menuWidth)
		}
	}

	lines[n-4] = strings.Repeat("=", menuWidth)

	if m.mark >= 0 {
		lines[n-3] = fit(fmt.Sprintf(" Marked: %d", m.mark), menuWidth)
	}

	if len(m.clip) > 0 {
		lines[n-2] = fit(fmt.Sprintf(" Buffered: %d", len(m.clip)/s.Channels), menuWidth)
	}

	switch {
	case m.prompting:
		lines[n-1] = fit(" Goto: "+m.input, menuWidth)
	case m.status != "":
		lines[n-1] = fit(" "+m.status, menuWidth)
	}

	return lines
}

// fit pads or truncates s to exactly w columns.
func fit(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}

	return s + strings.Repeat(" ", w-len(s))
}
