// Package tui is the full-screen pet browser: a filterable list of
// listings with a detail pane, clipboard and map shortcuts, and the
// owner-only status toggle and delete.
package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"petway/cli/internal/browser"
	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/listing"
)

// Listings is the part of listing.Service the browser drives.
type Listings interface {
	All(ctx context.Context) ([]domain.Pet, error)
	Mine(ctx context.Context) ([]domain.Pet, error)
	Describe(p domain.Pet) *listing.Detail
	ToggleStatus(ctx context.Context, d *listing.Detail) (string, error)
	Delete(ctx context.Context, d *listing.Detail, confirm listing.Confirm) (bool, string, error)
}

const maxFilterLen = 100

type mode int

const (
	modeList mode = iota
	modeFilter
	modeDetail
	modeConfirmDelete
)

// Model is the bubbletea model of the browser.
type Model struct {
	svc Listings

	// copy and open are seams for the clipboard and the browser.
	copy func(string) error
	open func(string) error

	all       []domain.Pet
	shown     []domain.Pet
	filter    string
	mine      bool
	cursor    int
	mode      mode
	detail    *listing.Detail
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int
}

type petsLoadedMsg struct {
	pets []domain.Pet
	err  error
}

type copyResultMsg struct {
	what string
	err  error
}

type openResultMsg struct{ err error }

type statusResultMsg struct {
	detail *listing.Detail
	msg    string
	err    error
}

type deleteResultMsg struct {
	id  string
	msg string
	err error
}

// New builds the browser. mine starts on the signed-in user's own pets.
func New(svc Listings, mine bool) Model {
	return Model{
		svc:     svc,
		copy:    clipboard.WriteAll,
		open:    browser.Open,
		mine:    mine,
		loading: true,
		width:   80,
		height:  24,
	}
}

func (m Model) load() tea.Cmd {
	mine := m.mine
	return func() tea.Msg {
		var pets []domain.Pet
		var err error
		if mine {
			pets, err = m.svc.Mine(context.Background())
		} else {
			pets, err = m.svc.All(context.Background())
		}
		return petsLoadedMsg{pets: pets, err: err}
	}
}

func (m Model) Init() tea.Cmd { return m.load() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case petsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.all = msg.pets
		m.applyFilter()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = msg.what + " copied to clipboard"
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("could not open browser: %v", msg.err)
		} else {
			m.statusMsg = "opened directions in your browser"
		}
		return m, nil

	case statusResultMsg:
		if msg.err != nil {
			m.statusMsg = failure(msg.err)
			return m, nil
		}
		m.detail = msg.detail
		m.replace(msg.detail.Pet)
		m.statusMsg = statusText(msg.msg, "status updated")
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.mode = modeDetail
			m.statusMsg = failure(msg.err)
			return m, nil
		}
		m.remove(msg.id)
		m.detail = nil
		m.mode = modeList
		m.statusMsg = statusText(msg.msg, "pet deleted")
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.statusMsg = ""
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
	case "esc":
		m.mode = modeList
		m.filter = ""
	case "backspace":
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	default:
		k := msg.String()
		if msg.Type == tea.KeySpace {
			k = " "
		}
		if utf8.RuneCountInString(k) == 1 && utf8.RuneCountInString(m.filter) < maxFilterLen {
			m.filter += k
		}
	}
	m.applyFilter()
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.mode = modeFilter
	case "enter":
		if m.cursor < len(m.shown) {
			m.detail = m.svc.Describe(m.shown[m.cursor])
			m.mode = modeDetail
		}
	case "m":
		m.mine = !m.mine
		m.loading = true
		m.cursor = 0
		return m, m.load()
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		m.detail = nil
	case "c":
		if !d.PhoneVisible() {
			m.statusMsg = d.PhoneLine()
			return m, nil
		}
		return m, m.copyCmd("phone", d.Pet.Phone)
	case "y":
		if !d.HasLocation() {
			m.statusMsg = "this pet has no location"
			return m, nil
		}
		return m, m.copyCmd("coordinates", d.CoordinatesText())
	case "o":
		if !d.HasLocation() {
			m.statusMsg = "this pet has no location"
			return m, nil
		}
		u := d.MapsURL()
		return m, func() tea.Msg { return openResultMsg{err: m.open(u)} }
	case "t":
		if !d.CanManage() {
			return m, nil
		}
		cp := *d
		return m, func() tea.Msg {
			msg, err := m.svc.ToggleStatus(context.Background(), &cp)
			return statusResultMsg{detail: &cp, msg: msg, err: err}
		}
	case "d":
		if d.CanManage() {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		d := m.detail
		return m, func() tea.Msg {
			ok, text, err := m.svc.Delete(context.Background(), d, func(string) bool { return true })
			if err == nil && !ok {
				err = apperrors.New(apperrors.Validation, "not deleted")
			}
			return deleteResultMsg{id: d.Pet.ID, msg: text, err: err}
		}
	default:
		m.mode = modeDetail
		m.statusMsg = "delete cancelled"
	}
	return m, nil
}

func (m Model) copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg { return copyResultMsg{what: what, err: m.copy(text)} }
}

func (m *Model) applyFilter() {
	m.shown = listing.Filter(m.all, m.filter)
	if m.cursor >= len(m.shown) {
		m.cursor = max(len(m.shown)-1, 0)
	}
}

func (m *Model) replace(p domain.Pet) {
	for i := range m.all {
		if m.all[i].ID == p.ID {
			m.all[i] = p
		}
	}
	m.applyFilter()
}

func (m *Model) remove(id string) {
	kept := m.all[:0:0]
	for _, p := range m.all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.all = kept
	m.applyFilter()
}

func failure(err error) string {
	if apperrors.Is(err, apperrors.Unauthenticated) {
		return apperrors.UserMessage(err) + " (run: petway login)"
	}
	return apperrors.UserMessage(err)
}

func statusText(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func (m Model) View() string {
	var b strings.Builder
	heading := "PETWAY  all pets"
	if m.mine {
		heading = "PETWAY  my pets"
	}
	b.WriteString(" " + titleStyle.Render(heading) + "\n")

	switch {
	case m.mode == modeFilter:
		b.WriteString(" " + searchStyle.Render("/ "+m.filter+"█") + "\n")
	case m.filter != "":
		b.WriteString(" " + searchStyle.Render("/ "+m.filter) + "\n")
	default:
		b.WriteString(" " + dimStyle.Render("/ filter by name, type, city or status") + "\n")
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + statusLineStyle.Render(m.statusMsg) + "\n")
	}

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	case m.err != nil:
		b.WriteString(" " + warnStyle.Render(failure(m.err)))
		return b.String()
	}

	if (m.mode == modeDetail || m.mode == modeConfirmDelete) && m.detail != nil {
		b.WriteString(m.viewDetail())
		return b.String()
	}
	b.WriteString(m.viewList())
	return truncateToHeight(b.String(), m.height)
}

func (m Model) viewList() string {
	if len(m.shown) == 0 {
		return " " + dimStyle.Render("no pets found") + "\n\n " + helpBar("/", "filter", "m", "all/mine", "r", "reload", "q", "quit")
	}
	var b strings.Builder
	visible := max(m.height-7, 3)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.shown) && i < start+visible; i++ {
		p := m.shown[i]
		cursor := "  "
		style := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			style = normalStyle.Bold(true)
		}
		name := truncStr(p.Name, 20)
		line := cursor + style.Render(fmt.Sprintf("%-20s %-10s %-14s", name, truncStr(p.Kind, 10), truncStr(p.City, 14))) + " " + statusBadge(p.Status)
		if i == m.cursor {
			line += strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			line = selectedRowBg.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n " + helpBar("enter", "details", "/", "filter", "m", "all/mine", "r", "reload", "q", "quit"))
	return b.String()
}

func (m Model) viewDetail() string {
	d := m.detail
	p := d.Pet
	var rows []string
	rows = append(rows, titleStyle.Render(p.Name)+"  "+statusBadge(p.Status))
	rows = append(rows,
		"Type:        "+listing.Field(p.Kind),
		"Breed:       "+listing.Field(p.Breed),
		"Age:         "+listing.Field(string(p.Age)),
		"City:        "+listing.Field(p.City),
		"Phone:       "+d.PhoneLine(),
		"Published by "+d.OwnerName(),
	)
	if when := d.Published(); when != "" {
		rows = append(rows, "Published:   "+when)
	}
	if p.Description != "" {
		rows = append(rows, "", lipgloss.NewStyle().Width(max(m.width-8, 20)).Render(p.Description))
	}
	if d.HasLocation() {
		rows = append(rows, "", "Location:    "+d.CoordinatesText())
		if note := d.LocationNote(); note != "" {
			rows = append(rows, metaStyle.Render(note))
		}
	}
	if d.NeedsLoginForPhone() {
		rows = append(rows, "", dimStyle.Render("Log in or register to see the contact phone."))
	}

	var b strings.Builder
	b.WriteString(detailBox.Render(strings.Join(rows, "\n")) + "\n")
	if m.mode == modeConfirmDelete {
		b.WriteString(" " + warnStyle.Render(listing.DeleteQuestion+" [y/N]") + "\n")
		return b.String()
	}
	keys := []string{"esc", "back", "c", "copy phone", "y", "copy coords", "o", "directions"}
	if d.CanManage() {
		keys = append(keys, "t", "mark "+p.Status.Toggle().Label(), "d", "delete")
	}
	b.WriteString(" " + helpBar(keys...))
	return b.String()
}

func truncStr(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// truncateToHeight limits output to maxLines newline-delimited lines.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
