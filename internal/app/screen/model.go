package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dummy-data/internal/app/shop"
	"dummy-data/internal/app/usecases"
	"dummy-data/internal/domain/model"
	"dummy-data/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var ErrNoService = errors.New("no network client attached")

const markdownWidth = 96

type Options struct {
	Context       context.Context
	Decoder       shop.Decoder
	ShopOpaqueID  string
	ToastTimeout  time.Duration
	MarkdownStyle string // glamour standard style name; empty means auto
	Logger        logging.LoggerService
}

// focusable is either a count input or an operation button.
type focusable struct {
	field model.CountField
	op    model.Operation
}

var countFields = [3]model.CountField{model.FieldProduct, model.FieldTag, model.FieldOrder}

func fieldIndex(field model.CountField) int {
	for i, f := range countFields {
		if f == field {
			return i
		}
	}
	return -1
}

var focusOrder = []focusable{
	{field: model.FieldProduct},
	{field: model.FieldTag},
	{op: model.OpLoadProductsAndTags},
	{field: model.FieldOrder},
	{op: model.OpLoadOrders},
	{op: model.OpLoadProductImages},
	{op: model.OpRemoveAllData},
}

// Model is the Dummy Data screen. Each mounted Model owns its form,
// notification and shop resolver.
type Model struct {
	ctx      context.Context
	service  usecases.DummyDataService
	resolver *shop.Resolver
	logger   logging.LoggerService

	opaque     string
	resolveErr error

	form         model.FormState
	notification model.Notification
	toastTimeout time.Duration
	toastGen     int

	inputs  [3]textinput.Model
	focus   int
	pending int
	ticking bool
	spinner spinner.Model

	keys   keyMap
	help   help.Model
	styles Styles

	exampleCard string
	helpCard    string
}

func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var inputs [3]textinput.Model
	for i := range countFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.CharLimit = 10
		ti.Width = 12
		ti.SetValue("0")
		inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	md := newMarkdown(opts.MarkdownStyle, markdownWidth)

	m := Model{
		ctx:          ctx,
		resolver:     shop.NewResolver(opts.Decoder),
		logger:       logger,
		opaque:       opts.ShopOpaqueID,
		form:         model.NewFormState(),
		notification: model.NewNotification(),
		toastTimeout: opts.ToastTimeout,
		inputs:       inputs,
		spinner:      sp,
		keys:         defaultKeyMap(),
		help:         help.New(),
		styles:       DefaultStyles(),
		exampleCard:  md.render(exampleCard),
		helpCard:     md.render(helpCard),
	}
	m.focusCurrent()
	return m
}

// WithService returns m with svc attached as its dispatcher.
func (m Model) WithService(svc usecases.DummyDataService) Model {
	m.service = svc
	return m
}

func (m Model) Form() model.FormState {
	return m.form
}

func (m Model) Notification() model.Notification {
	return m.notification
}

func (m Model) Pending() int {
	return m.pending
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.resolveCmd())
}

// SetShopReference re-resolves only when opaque differs from the last
// requested reference.
func (m Model) SetShopReference(opaque string) (Model, tea.Cmd) {
	m.opaque = opaque
	return m, m.resolveCmd()
}

func (m Model) resolveCmd() tea.Cmd {
	opaque := m.opaque
	if opaque == "" || !m.resolver.Begin(opaque) {
		return nil
	}
	ctx, resolver := m.ctx, m.resolver
	return func() tea.Msg {
		id, err := resolver.Decode(ctx, opaque)
		return shopResolvedMsg{opaque: opaque, id: id, err: err}
	}
}

// Invoke starts op against a snapshot of the current form. Several
// invocations may be pending at once.
func (m Model) Invoke(op model.Operation) (Model, tea.Cmd) {
	form := m.form.Clone()
	ctx, svc := m.ctx, m.service
	dispatch := func() tea.Msg {
		if svc == nil {
			return operationSettledMsg{op: op, outcome: model.Outcome{
				Operation: op,
				Message:   ErrNoService.Error(),
				Severity:  model.SeverityError,
				Err:       ErrNoService,
			}}
		}
		return operationSettledMsg{op: op, outcome: svc.Dispatch(ctx, op, form)}
	}

	m.pending++
	if !m.ticking {
		m.ticking = true
		return m, tea.Batch(dispatch, m.spinner.Tick)
	}
	return m, dispatch
}

// logCmd defers logging to a command so Update never waits on a log sink.
func (m Model) logCmd(fn func(logging.LoggerService)) tea.Cmd {
	logger := m.logger
	return func() tea.Msg {
		fn(logger)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case ShopReferenceMsg:
		return m.SetShopReference(msg.Opaque)

	case shopResolvedMsg:
		if !m.resolver.IsLatest(msg.opaque) {
			return m, nil
		}
		if msg.err != nil {
			m.resolveErr = msg.err
			err := msg.err
			return m, m.logCmd(func(l logging.LoggerService) {
				l.LogError("shop reference not resolved", err)
			})
		}
		if !m.resolver.Accept(msg.opaque, msg.id) {
			return m, nil
		}
		m.form.CurrentShopID = msg.id
		m.resolveErr = nil
		id := msg.id
		return m, m.logCmd(func(l logging.LoggerService) {
			l.Log("shop resolved", zap.String("shop_id", id))
		})

	case operationSettledMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.notification.Show(msg.outcome)
		m.toastGen++
		if m.toastTimeout <= 0 {
			return m, nil
		}
		gen := m.toastGen
		return m, tea.Tick(m.toastTimeout, func(time.Time) tea.Msg {
			return toastExpiredMsg{generation: gen}
		})

	case toastExpiredMsg:
		if msg.generation == m.toastGen {
			m.notification.Dismiss()
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			m.notification.Dismiss()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m.moveFocus(1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.moveFocus(-1), nil
		case key.Matches(msg, m.keys.Submit):
			if op := focusOrder[m.focus].op; op != "" {
				return m.Invoke(op)
			}
			return m.moveFocus(1), nil
		}
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	field := focusOrder[m.focus].field
	if field == "" {
		return m, nil
	}
	i := fieldIndex(field)
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if value := m.inputs[i].Value(); value != before {
		cmd = tea.Batch(cmd, m.setCount(field, value))
	}
	return m, cmd
}

// SetCount applies raw text to a count field as if it had been typed.
func (m Model) SetCount(field model.CountField, raw string) Model {
	if i := fieldIndex(field); i >= 0 {
		m.inputs[i].SetValue(raw)
	}
	_ = m.setCount(field, raw)
	return m
}

// setCount returns the command that logs a rejected value, or nil.
func (m *Model) setCount(field model.CountField, raw string) tea.Cmd {
	// copies of m share the error map until it is cloned
	m.form = m.form.Clone()
	if err := m.form.SetCount(field, raw); err != nil {
		return m.logCmd(func(l logging.LoggerService) {
			l.Log("count rejected", zap.String("field", string(field)), zap.String("raw", raw))
		})
	}
	return nil
}

func (m Model) moveFocus(delta int) Model {
	n := len(focusOrder)
	m.focus = ((m.focus+delta)%n + n) % n
	m.focusCurrent()
	return m
}

func (m *Model) focusCurrent() {
	for i, field := range countFields {
		if focusOrder[m.focus].field == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Dummy Data"))
	b.WriteString("\n")
	b.WriteString(m.shopLine())
	b.WriteString("\n\n")

	products := m.card("Products and Tags",
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.inputView(model.FieldProduct),
			"  ",
			m.inputView(model.FieldTag),
		),
		m.button(model.OpLoadProductsAndTags),
	)
	orders := m.card("Orders", m.inputView(model.FieldOrder), m.button(model.OpLoadOrders))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, products, orders))
	b.WriteString("\n")

	images := m.card("Product Images", productImagesText, m.button(model.OpLoadProductImages))
	armageddon := m.card("Armageddon", armageddonText(m.form.CurrentShopID), m.button(model.OpRemoveAllData))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, images, armageddon))
	b.WriteString("\n")

	b.WriteString(m.styles.CardTitle.Render("Example"))
	b.WriteString("\n")
	b.WriteString(m.exampleCard)
	b.WriteString("\n\n")
	b.WriteString(m.styles.CardTitle.Render("Help"))
	b.WriteString("\n")
	b.WriteString(m.helpCard)
	b.WriteString("\n\n")

	if m.pending > 0 {
		fmt.Fprintf(&b, "%s %d pending\n", m.spinner.View(), m.pending)
	}
	if m.notification.IsOpen {
		b.WriteString(m.styles.toast(m.notification.Severity).Render(m.notification.Message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) shopLine() string {
	switch {
	case m.resolveErr != nil:
		return m.styles.InputError.Render("Shop: " + m.resolveErr.Error())
	case m.form.CurrentShopID == "":
		return m.styles.Muted.Render("Shop: resolving...")
	}
	return m.styles.Muted.Render("Shop: " + m.form.CurrentShopID)
}

func (m Model) card(title, body, action string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardTitle.Render(title),
		"",
		body,
		"",
		action,
	)
	return m.styles.Card.Render(content)
}

func (m Model) inputView(field model.CountField) string {
	lines := []string{
		m.styles.Label.Render(field.Label()),
		m.inputs[fieldIndex(field)].View(),
	}
	if err := m.form.InputErrors[field]; err != nil {
		lines = append(lines, m.styles.InputError.Render(err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) button(op model.Operation) string {
	focused := focusOrder[m.focus].op == op
	style := m.styles.Button
	if op == model.OpRemoveAllData {
		style = m.styles.Danger
		if focused {
			style = m.styles.DangerFocus
		}
	} else if focused {
		style = m.styles.ButtonFocus
	}
	return style.Render(op.Title())
}
