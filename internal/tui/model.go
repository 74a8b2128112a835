// Package tui renders the storefront page in the terminal: header with the
// cart counter, category navigation, the product grid and the cart section.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/legostore/internal/domain"
	"github.com/nikolayk812/legostore/internal/shop"
)

const (
	cardWidth    = 36
	defaultWidth = 80

	emptyCartText     = "Ingen varer i handlevognen enda."
	emptyCategoryText = "Ingen produkter i denne kategorien."
	addButtonText     = "[ Legg til handlevogn ]"
)

type focus int

const (
	focusProducts focus = iota
	focusCart
)

type Options struct {
	Nav      []string
	Category string

	// ShowTotalPrice prints the derived total instead of the fixed 0.
	ShowTotalPrice bool
}

// Model is the storefront page. It keeps no cart data of its own: every
// change goes through the shop.Store and the page re-renders from the
// committed State it gets back.
type Model struct {
	// ctx is handed to the Store on every key action; tea.Model.Update has
	// no context parameter of its own.
	ctx   context.Context
	store *shop.Store

	catalog  []domain.Product
	nav      []string
	navIndex int
	visible  []domain.Product
	cursor   int

	state     shop.State
	cartOpen  bool
	focus     focus
	cartTable table.Model

	showTotalPrice bool
	status         string
	err            error

	width  int
	keys   keyMap
	help   help.Model
	styles Styles
}

func New(ctx context.Context, store *shop.Store, opts Options) (Model, error) {
	products, err := store.Catalog().ListProducts(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("catalog.ListProducts: %w", err)
	}

	nav := opts.Nav
	if len(nav) == 0 {
		nav, err = store.Catalog().Categories(ctx)
		if err != nil {
			return Model{}, fmt.Errorf("catalog.Categories: %w", err)
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Produkt", Width: 24},
			{Title: "Pris", Width: 12},
			{Title: "Antall", Width: 8},
		}),
		table.WithHeight(6),
	)

	m := Model{
		ctx:            ctx,
		store:          store,
		catalog:        products,
		nav:            nav,
		cartTable:      t,
		showTotalPrice: opts.ShowTotalPrice,
		width:          defaultWidth,
		keys:           defaultKeyMap(),
		help:           help.New(),
		styles:         DefaultStyles(),
	}

	if i := slices.Index(nav, opts.Category); i >= 0 {
		m.navIndex = i
	}

	m.applyCategory()
	m.setState(store.State())

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.ToggleCart):
		m.cartOpen = !m.cartOpen
		if m.cartOpen {
			m.setFocus(focusCart)
		} else {
			m.setFocus(focusProducts)
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.cartOpen && m.focus == focusProducts {
			m.setFocus(focusCart)
		} else {
			m.setFocus(focusProducts)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevCat):
		m.moveCategory(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextCat):
		m.moveCategory(1)
		return m, nil
	}

	if m.focus == focusCart {
		if key.Matches(msg, m.keys.Remove) {
			m.removeSelected()
			return m, nil
		}

		var cmd tea.Cmd
		m.cartTable, cmd = m.cartTable.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
	}

	return m, nil
}

func (m *Model) addSelected() {
	if m.cursor >= len(m.visible) {
		return
	}
	p := m.visible[m.cursor]

	st, err := m.store.Add(m.ctx, p)
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.status = "Lagt i handlevognen: " + p.Title
	m.setState(st)
}

func (m *Model) removeSelected() {
	i := m.cartTable.Cursor()
	if i < 0 || i >= len(m.state.Items) {
		return
	}
	item := m.state.Items[i]

	st, err := m.store.Remove(m.ctx, item.ID)
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.status = "Fjernet fra handlevognen: " + item.Title
	m.setState(st)
}

func (m *Model) setState(st shop.State) {
	m.state = st

	rows := make([]table.Row, 0, len(st.Items))
	for _, item := range st.Items {
		rows = append(rows, table.Row{
			item.Title,
			item.Price.Amount.String(),
			strconv.Itoa(item.Quantity),
		})
	}
	m.cartTable.SetRows(rows)

	// the table leaves its cursor at -1 when rows were set while empty
	if n := len(rows); n > 0 {
		if c := m.cartTable.Cursor(); c < 0 || c >= n {
			m.cartTable.SetCursor(min(max(c, 0), n-1))
		}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusCart {
		m.cartTable.Focus()
	} else {
		m.cartTable.Blur()
	}
}

func (m *Model) moveCategory(delta int) {
	if len(m.nav) == 0 {
		return
	}

	m.navIndex = (m.navIndex + delta + len(m.nav)) % len(m.nav)
	m.applyCategory()
}

func (m *Model) applyCategory() {
	m.cursor = 0
	m.visible = nil

	category := m.Category()
	for _, p := range m.catalog {
		if category == "" || p.Category == category {
			m.visible = append(m.visible, p)
		}
	}
}

// Category is the category currently shown in the product grid.
func (m Model) Category() string {
	if len(m.nav) == 0 {
		return ""
	}

	return m.nav[m.navIndex]
}

// State is the cart state the page is currently showing.
func (m Model) State() shop.State {
	return m.state
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewNav())
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(m.Category()))
	b.WriteString("\n")
	b.WriteString(m.viewProducts())
	b.WriteString("\n")

	if m.cartOpen {
		b.WriteString(m.viewCart())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Feil: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewHeader() string {
	logo := m.styles.Logo.Render("LEGOdudes")
	cart := m.styles.CartButton.Render(fmt.Sprintf("Handlevogn (%d)", m.state.TotalQuantity))

	gap := m.width - lipgloss.Width(logo) - lipgloss.Width(cart)
	if gap < 1 {
		gap = 1
	}

	return logo + strings.Repeat(" ", gap) + cart
}

func (m Model) viewNav() string {
	items := make([]string, 0, len(m.nav))
	for i, name := range m.nav {
		if i == m.navIndex {
			items = append(items, m.styles.NavActive.Render(name))
		} else {
			items = append(items, m.styles.NavItem.Render(name))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m Model) viewProducts() string {
	if len(m.visible) == 0 {
		return m.styles.Empty.Render(emptyCategoryText)
	}

	perRow := max(m.width/(cardWidth+2), 1)

	var rows []string
	for start := 0; start < len(m.visible); start += perRow {
		end := min(start+perRow, len(m.visible))

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.viewCard(m.visible[i], i == m.cursor && m.focus == focusProducts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCard(p domain.Product, selected bool) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardImage.Render(p.ImagePath()),
		m.styles.CardCategory.Render(p.Category),
		m.styles.CardTitle.Render(p.Title),
		m.styles.CardPrice.Render(p.Price.Display()),
		addButtonText,
	)

	if selected {
		return m.styles.CardSelected.Render(body)
	}

	return m.styles.Card.Render(body)
}

func (m Model) viewCart() string {
	var body string
	if len(m.state.Items) == 0 {
		body = m.styles.Empty.Render(emptyCartText)
	} else {
		body = m.cartTable.View()
	}

	return m.styles.Cart.Render(lipgloss.JoinVertical(lipgloss.Left, body, m.totalPriceLine()))
}

// totalPriceLine prints a fixed 0 unless the derived total was asked for.
func (m Model) totalPriceLine() string {
	if !m.showTotalPrice {
		return fmt.Sprintf("Total pris: 0 %s", m.state.TotalPrice.Currency)
	}

	return fmt.Sprintf("Total pris: %s %s", m.state.TotalPrice.Amount.String(), m.state.TotalPrice.Currency)
}
