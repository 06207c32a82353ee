package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atinyakov/shopina/internal/client/api"
	"github.com/atinyakov/shopina/internal/client/state"
)

type section int

const (
	sectionProducts section = iota
	sectionPlans
	sectionCart
)

var sectionNames = [...]string{"Products", "Plans", "Cart"}

type mode int

const (
	modeBrowse mode = iota
	modeLogin
	modeRegister
	modeCheckout
)

// Model is the root bubbletea model of the storefront.
type Model struct {
	app    *state.App
	gw     Gateway
	styles Styles

	width  int
	height int

	section section
	mode    mode
	cursor  [3]int

	products []productView
	plans    []planView

	inputs []textinput.Model
	focus  int

	notice     string
	noticeErr  bool
	paymentURL string
}

type productView struct {
	ID       string
	Name     string
	Price    float64
	Stock    int
	Category string
}

type planView struct {
	ID           string
	Name         string
	Price        float64
	BillingCycle string
}

// New creates the storefront model.
func New(app *state.App, gw Gateway) Model {
	return Model{
		app:    app,
		gw:     gw,
		styles: DefaultStyles(),
	}
}

// Init seeds demo data and issues the initial fetches. The cart fetch is
// tagged so a slow response cannot clobber a later one.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		initSampleDataCmd(m.gw),
		fetchProductsCmd(m.gw),
		fetchPlansCmd(m.gw),
		fetchCartCmd(m.gw, m.app.SessionID(), m.app.NextCartSeq()),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)

	case productsMsg:
		if msg.err != nil {
			// Read failures degrade silently; the gateway logged it and the
			// last fetched catalog stays on screen.
			return m, nil
		}
		m.products = m.products[:0]
		for _, p := range msg.products {
			m.products = append(m.products, productView{
				ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, Category: p.Category,
			})
		}
		return m, nil

	case plansMsg:
		if msg.err != nil {
			return m, nil
		}
		m.plans = m.plans[:0]
		for _, p := range msg.plans {
			m.plans = append(m.plans, planView{
				ID: p.ID, Name: p.Name, Price: p.Price, BillingCycle: p.BillingCycle,
			})
		}
		return m, nil

	case cartMsg:
		if msg.err != nil {
			// The previously fetched cart stays on screen; no notice.
			return m, nil
		}
		m.app.SetCart(msg.seq, *msg.cart)
		if n := len(m.app.Cart().Items); m.cursor[sectionCart] >= n && n > 0 {
			m.cursor[sectionCart] = n - 1
		}
		return m, nil

	case cartMutatedMsg:
		if msg.err != nil {
			// Removals fail silently like reads; adds tell the user why
			// (out of stock, vanished product).
			if msg.quiet {
				return m, nil
			}
			return m.withError(msg.err), nil
		}
		// The server owns the cart; re-fetch rather than patching locally.
		return m, fetchCartCmd(m.gw, m.app.SessionID(), m.app.NextCartSeq())

	case authMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.app.SetUser(msg.result.User, msg.result.AccessToken)
		m.mode = modeBrowse
		m.inputs = nil
		m.setNotice(fmt.Sprintf("Welcome, %s!", msg.result.User.Name), false)
		return m, nil

	case checkoutMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.paymentURL = msg.result.PaymentURL
		m.setNotice(fmt.Sprintf("Order %s placed. Complete payment at the link below.", msg.result.OrderID), false)
		// The server cleared the cart; pick up the empty cart.
		return m, fetchCartCmd(m.gw, m.app.SessionID(), m.app.NextCartSeq())

	case sampleDataMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right":
		m.section = (m.section + 1) % 3
		return m, nil
	case "shift+tab", "left":
		m.section = (m.section + 2) % 3
		return m, nil
	case "1":
		m.section = sectionProducts
		return m, nil
	case "2":
		m.section = sectionPlans
		return m, nil
	case "3":
		m.section = sectionCart
		return m, nil

	case "up", "k":
		if m.cursor[m.section] > 0 {
			m.cursor[m.section]--
		}
		return m, nil
	case "down", "j":
		if m.cursor[m.section] < m.sectionLen()-1 {
			m.cursor[m.section]++
		}
		return m, nil

	case "enter", " ":
		if m.section == sectionProducts && m.cursor[sectionProducts] < len(m.products) {
			p := m.products[m.cursor[sectionProducts]]
			return m, addToCartCmd(m.gw, m.app.SessionID(), p.ID, 1)
		}
		return m, nil

	case "d", "x":
		if m.section == sectionCart {
			items := m.app.Cart().Items
			if i := m.cursor[sectionCart]; i < len(items) {
				return m, removeFromCartCmd(m.gw, items[i].ID)
			}
		}
		return m, nil

	case "c":
		return m.startCheckout()

	case "l":
		if m.app.LoggedIn() {
			m.app.Logout()
			m.setNotice("Logged out.", false)
			return m, nil
		}
		m.mode = modeLogin
		m.inputs = newInputs("Email", "Password")
		m.focus = 0
		return m, textinput.Blink
	case "r":
		if !m.app.LoggedIn() {
			m.mode = modeRegister
			m.inputs = newInputs("Name", "Email", "Password")
			m.focus = 0
			return m, textinput.Blink
		}
		return m, nil
	}

	return m, nil
}

// startCheckout begins the order flow. An empty cart never reaches the
// network; the guard lives here on purpose.
func (m Model) startCheckout() (tea.Model, tea.Cmd) {
	if len(m.app.Cart().Items) == 0 {
		m.setNotice("Your cart is empty", true)
		return m, nil
	}
	if u := m.app.User(); u != nil && u.Email != "" {
		return m, checkoutCmd(m.gw, m.app.SessionID(), u.Email)
	}
	m.mode = modeCheckout
	m.inputs = newInputs("Email")
	m.focus = 0
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.inputs = nil
		return m, nil

	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		return m.refocus()
	case "shift+tab", "up":
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		return m.refocus()

	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.focus++
			return m.refocus()
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) refocus() (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
			continue
		}
		m.inputs[i].Blur()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = strings.TrimSpace(m.inputs[i].Value())
	}

	switch m.mode {
	case modeLogin:
		m.mode = modeBrowse
		m.inputs = nil
		return m, loginCmd(m.gw, values[0], values[1])
	case modeRegister:
		m.mode = modeBrowse
		m.inputs = nil
		return m, registerCmd(m.gw, api.RegisterInput{
			Name: values[0], Email: values[1], Password: values[2],
		})
	case modeCheckout:
		m.mode = modeBrowse
		m.inputs = nil
		return m, checkoutCmd(m.gw, m.app.SessionID(), values[0])
	}
	return m, nil
}

func (m Model) sectionLen() int {
	switch m.section {
	case sectionProducts:
		return len(m.products)
	case sectionPlans:
		return len(m.plans)
	default:
		return len(m.app.Cart().Items)
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m Model) withError(err error) Model {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		m.setNotice(apiErr.Error(), true)
	} else {
		m.setNotice(err.Error(), true)
	}
	return m
}

// View renders the storefront.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("ShopINA"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.mode != modeBrowse {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderSection())
	}

	if m.notice != "" {
		b.WriteString("\n")
		if m.noticeErr {
			b.WriteString(m.styles.Error.Render(m.notice))
		} else {
			b.WriteString(m.styles.Success.Render(m.notice))
		}
		b.WriteString("\n")
	}
	if m.paymentURL != "" {
		b.WriteString(m.styles.Notice.Render("Payment: " + m.paymentURL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, 4)
	for i, name := range sectionNames {
		if i == int(sectionCart) {
			name = fmt.Sprintf("%s (%d)", name, len(m.app.Cart().Items))
		}
		if section(i) == m.section {
			tabs = append(tabs, m.styles.TabOn.Render(name))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(name))
		}
	}
	if u := m.app.User(); u != nil {
		tabs = append(tabs, m.styles.Muted.Render("· "+u.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSection() string {
	var b strings.Builder
	switch m.section {
	case sectionProducts:
		if len(m.products) == 0 {
			return m.styles.Muted.Render("  No products yet.")
		}
		for i, p := range m.products {
			line := fmt.Sprintf("%s  %s  %s",
				p.Name,
				m.styles.Price.Render(formatIDR(p.Price)),
				m.styles.Muted.Render(fmt.Sprintf("stock %d", p.Stock)))
			b.WriteString(m.renderLine(line, i == m.cursor[sectionProducts]))
		}
	case sectionPlans:
		if len(m.plans) == 0 {
			return m.styles.Muted.Render("  No subscription plans yet.")
		}
		for i, p := range m.plans {
			line := fmt.Sprintf("%s  %s  %s",
				p.Name,
				m.styles.Price.Render(formatIDR(p.Price)),
				m.styles.Muted.Render(p.BillingCycle))
			b.WriteString(m.renderLine(line, i == m.cursor[sectionPlans]))
		}
	case sectionCart:
		cart := m.app.Cart()
		if len(cart.Items) == 0 {
			return m.styles.Muted.Render("  Your cart is empty.")
		}
		for i, item := range cart.Items {
			line := fmt.Sprintf("%s ×%d  %s",
				item.Product.Name, item.Quantity,
				m.styles.Price.Render(formatIDR(item.Total)))
			b.WriteString(m.renderLine(line, i == m.cursor[sectionCart]))
		}
		b.WriteString("\n  Total: " + m.styles.Price.Render(formatIDR(cart.Total)) + "\n")
	}
	return b.String()
}

func (m Model) renderLine(line string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("> "+line) + "\n"
	}
	return m.styles.Item.Render(line) + "\n"
}

func (m Model) renderForm() string {
	titles := map[mode]string{
		modeLogin:    "Log in",
		modeRegister: "Create account",
		modeCheckout: "Checkout",
	}
	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render(titles[m.mode]))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString("  " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n" + m.styles.Muted.Render("  enter: submit · esc: cancel"))
	return b.String()
}

func (m Model) helpLine() string {
	if m.mode != modeBrowse {
		return ""
	}
	auth := "l: log in · r: register"
	if m.app.LoggedIn() {
		auth = "l: log out"
	}
	return "tab: switch · ↑/↓: move · enter: add to cart · d: remove · c: checkout · " + auth + " · q: quit"
}

func newInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, ph := range placeholders {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 120
		if ph == "Password" {
			in.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}
	return inputs
}

func formatIDR(amount float64) string {
	return fmt.Sprintf("Rp %.0f", amount)
}
