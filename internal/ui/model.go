package ui

import (
	"context"
	"fmt"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ffstudio/internal/model"
	"ffstudio/internal/probe"
	"ffstudio/internal/supervisor"
	"ffstudio/internal/util"
)

// rowID identifies one adjustable option row in the form.
type rowID int

const (
	rowOperation rowID = iota
	rowFormat
	rowCodec
	rowAudioMode
	rowAudioQuality
	rowAudioBitrate
	rowVideoMode
	rowCRF
	rowVideoBitrate
	rowPreset
	rowFPSMode
	rowFPS
)

// The first two focus slots are the path inputs; option rows follow.
const (
	focusInput  = 0
	focusOutput = 1
	focusRows   = 2
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	sup    *supervisor.Supervisor
	prober *probe.Prober
	cfg    model.EncodingConfig

	inputPath  textinput.Model
	outputPath textinput.Model
	bar        bubblesprogress.Model
	logView    viewport.Model

	focus     int
	probedFor string
	probing   bool

	width, height int
	styles        Styles
}

func NewModel(ctx context.Context, sup *supervisor.Supervisor, prober *probe.Prober, cfg model.EncodingConfig) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	in := textinput.New()
	in.Placeholder = "/path/to/input.mp4"
	in.Prompt = ""
	in.SetValue(cfg.InputPath)
	in.Focus()

	out := textinput.New()
	out.Placeholder = "(derived from input)"
	out.Prompt = ""
	out.SetValue(cfg.OutputPath)

	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(40),
	)

	lv := viewport.New(80, 10)

	return Model{
		ctx:        c,
		cancel:     cancel,
		sup:        sup,
		prober:     prober,
		cfg:        cfg,
		inputPath:  in,
		outputPath: out,
		bar:        bar,
		logView:    lv,
		styles:     sty,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// probeCmd runs ffprobe in the background and reports back.
func (m Model) probeCmd(path string) tea.Cmd {
	prober := m.prober
	ctx := m.ctx
	return func() tea.Msg {
		return probedMsg{Path: path, Info: prober.Probe(ctx, path)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logView.Width = msg.Width - 4
		h := msg.Height - 20
		if h < 4 {
			h = 4
		}
		m.logView.Height = h

	case tickMsg:
		m.refreshFromTracker()
		var cmds []tea.Cmd
		if p := m.inputPath.Value(); p != "" && p != m.probedFor && !m.probing && util.Exists(p) {
			m.probing = true
			cmds = append(cmds, m.probeCmd(p))
		}
		cmds = append(cmds, m.tickCmd())
		return m, tea.Batch(cmds...)

	case repaintMsg:
		m.refreshFromTracker()

	case probedMsg:
		m.probing = false
		m.probedFor = msg.Path
		m.sup.RecordProbe(msg.Info)
		m.cfg.OriginalFPS = msg.Info.OriginalFPS
		m.cfg.FrameRate = msg.Info.FrameRate
		m.refreshFromTracker()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.focus == focusInput || m.focus == focusOutput

	switch msg.String() {
	case "ctrl+c":
		if m.sup.Running() {
			_ = m.sup.Cancel()
		}
		m.cancel()
		return m, tea.Quit
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		if editing {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		m.startJob()
		return m, nil
	case "left", "right":
		if !editing {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.adjust(m.currentRow(), delta)
			return m, nil
		}
	}

	if !editing {
		switch msg.String() {
		case "q":
			if m.sup.Running() {
				_ = m.sup.Cancel()
			}
			m.cancel()
			return m, tea.Quit
		case "s":
			m.startJob()
			return m, nil
		case "c":
			_ = m.sup.Cancel()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.inputPath, cmd = m.inputPath.Update(msg)
	} else {
		m.outputPath, cmd = m.outputPath.Update(msg)
	}
	return m, cmd
}

func (m *Model) startJob() {
	m.cfg.InputPath = m.inputPath.Value()
	m.cfg.OutputPath = m.outputPath.Value()
	_ = m.sup.Start(m.cfg)
}

func (m *Model) setFocus(f int) {
	n := focusRows + len(m.visibleRows())
	if f < 0 {
		f = n - 1
	}
	if f >= n {
		f = 0
	}
	m.focus = f

	m.inputPath.Blur()
	m.outputPath.Blur()
	if m.focus == focusInput {
		m.inputPath.Focus()
	}
	if m.focus == focusOutput {
		m.outputPath.Focus()
	}
}

func (m *Model) refreshFromTracker() {
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(m.sup.Log())
	if atBottom {
		m.logView.GotoBottom()
	}
}

func (m Model) currentRow() rowID {
	rows := m.visibleRows()
	idx := m.focus - focusRows
	if idx < 0 || idx >= len(rows) {
		return -1
	}
	return rows[idx]
}

// visibleRows returns the option rows that apply to the current operation
// and codec.
func (m Model) visibleRows() []rowID {
	rows := []rowID{rowOperation}

	switch m.cfg.Operation {
	case model.OpRemux:
		return append(rows, rowFormat)
	case model.OpCompressVideo:
		rows = append(rows, rowFormat, rowVideoMode)
		if m.cfg.BitrateVideo() {
			rows = append(rows, rowVideoBitrate)
		} else {
			rows = append(rows, rowCRF)
		}
		rows = append(rows, rowPreset, rowFPSMode)
		if m.cfg.FrameRateMode == model.CFR {
			rows = append(rows, rowFPS)
		}
	}

	rows = append(rows, rowCodec)
	switch m.cfg.AudioCodec {
	case model.CodecMP3:
		rows = append(rows, rowAudioMode)
		if m.cfg.UseAudioQuality {
			rows = append(rows, rowAudioQuality)
		} else {
			rows = append(rows, rowAudioBitrate)
		}
	case model.CodecOPUS, model.CodecAAC:
		rows = append(rows, rowAudioBitrate)
	case model.CodecFLAC:
		rows = append(rows, rowAudioQuality)
	}
	return rows
}

func (m Model) rowLabel(id rowID) string {
	switch id {
	case rowOperation:
		return "Operation"
	case rowFormat:
		return "Container"
	case rowCodec:
		return "Audio codec"
	case rowAudioMode:
		return "Audio mode"
	case rowAudioQuality:
		return "Audio quality"
	case rowAudioBitrate:
		return "Audio bitrate"
	case rowVideoMode:
		return "Video quality"
	case rowCRF:
		return "CRF"
	case rowVideoBitrate:
		return "Video bitrate"
	case rowPreset:
		return "Preset"
	case rowFPSMode:
		return "Frame timing"
	case rowFPS:
		return "Frame rate"
	default:
		return ""
	}
}

func (m Model) rowValue(id rowID) string {
	switch id {
	case rowOperation:
		return string(m.cfg.Operation)
	case rowFormat:
		return string(m.cfg.Container)
	case rowCodec:
		return string(m.cfg.AudioCodec)
	case rowAudioMode:
		if m.cfg.UseAudioQuality {
			return "quality (VBR)"
		}
		return "bitrate (CBR)"
	case rowAudioQuality:
		return fmt.Sprintf("%d", m.cfg.AudioQuality)
	case rowAudioBitrate:
		return fmt.Sprintf("%d kbps", m.cfg.AudioBitrateKbps)
	case rowVideoMode:
		if m.cfg.UseCRF && m.cfg.FrameRateMode == model.CFR {
			return "CRF"
		}
		if m.cfg.FrameRateMode == model.VFR {
			return "bitrate (forced by VFR)"
		}
		return "bitrate"
	case rowCRF:
		return fmt.Sprintf("%d", m.cfg.CRF)
	case rowVideoBitrate:
		return fmt.Sprintf("%d kbps", m.cfg.VideoBitrateKbps)
	case rowPreset:
		return m.cfg.Preset
	case rowFPSMode:
		if m.cfg.FrameRateMode == model.CFR {
			return "constant"
		}
		return "variable"
	case rowFPS:
		return fmt.Sprintf("%.3f fps (max %.3f)", m.cfg.FrameRate, m.maxFPS())
	default:
		return ""
	}
}

func (m Model) maxFPS() float64 {
	if m.cfg.OriginalFPS > probe.MaxSeedFPS {
		return m.cfg.OriginalFPS
	}
	return probe.MaxSeedFPS
}

// adjust applies a left/right step to one option row.
func (m *Model) adjust(id rowID, delta int) {
	switch id {
	case rowOperation:
		ops := model.Operations()
		m.cfg.Operation = cycle(ops, m.cfg.Operation, delta)
	case rowFormat:
		m.cfg.Container = cycle(model.Containers(), m.cfg.Container, delta)
	case rowCodec:
		m.cfg.AudioCodec = cycle(model.AudioCodecs(), m.cfg.AudioCodec, delta)
	case rowAudioMode:
		m.cfg.UseAudioQuality = !m.cfg.UseAudioQuality
	case rowAudioQuality:
		qmin, qmax := m.cfg.AudioCodec.QualityRange()
		m.cfg.AudioQuality = clampInt(m.cfg.AudioQuality+delta, qmin, qmax)
	case rowAudioBitrate:
		m.cfg.AudioBitrateKbps = clampInt(m.cfg.AudioBitrateKbps+delta*8, 8, 512)
	case rowVideoMode:
		if m.cfg.FrameRateMode == model.CFR {
			m.cfg.UseCRF = !m.cfg.UseCRF
		}
	case rowCRF:
		m.cfg.CRF = clampInt(m.cfg.CRF+delta, 0, 51)
	case rowVideoBitrate:
		m.cfg.VideoBitrateKbps = clampInt(m.cfg.VideoBitrateKbps+delta*100, 100, 50000)
	case rowPreset:
		m.cfg.Preset = cycle(model.Presets(), m.cfg.Preset, delta)
	case rowFPSMode:
		if m.cfg.FrameRateMode == model.CFR {
			m.cfg.FrameRateMode = model.VFR
		} else {
			m.cfg.FrameRateMode = model.CFR
		}
	case rowFPS:
		fps := m.cfg.FrameRate + float64(delta)
		if fps < 1 {
			fps = 1
		}
		if max := m.maxFPS(); fps > max {
			fps = max
		}
		m.cfg.FrameRate = fps
	}
}

func cycle[T comparable](values []T, current T, delta int) T {
	for i, v := range values {
		if v == current {
			n := (i + delta + len(values)) % len(values)
			return values[n]
		}
	}
	return values[0]
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
