package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskshop/internal/config"
	"github.com/jask/jaskshop/internal/database/repository"
	"github.com/jask/jaskshop/internal/secrets"
	"github.com/jask/jaskshop/internal/service"
	"github.com/jask/jaskshop/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
)

// App is the storefront menu. It is strictly a caller of InventoryService:
// all state and invariants live in the service, the App only renders and
// dispatches.
type App struct {
	ctx      context.Context
	inv      *service.InventoryService
	sales    *repository.SaleRepo
	cfg      config.Config
	adminPwd string // resolved at wiring: secrets store, then config fallback

	state       appState
	products    []store.Product
	entries     []service.CartEntry
	total       int64
	history     []repository.Sale
	prodCursor  int
	cartCursor  int
	searchQuery string
	searching   bool
	status      string
	currency    string

	modal       modalState
	inputBuffer string
	loginUser   string
	admined     bool

	reg     regDraft
	regStep int
}

type appState string

const (
	viewStorefront appState = "storefront"
	viewCart       appState = "cart"
	viewHistory    appState = "history"
	viewRegister   appState = "register"
)

type modalState string

const (
	modalNone            modalState = ""
	modalAddQty          modalState = "addQty"
	modalUpdateQty       modalState = "updateQty"
	modalLoginUser       modalState = "loginUser"
	modalLoginPass       modalState = "loginPass"
	modalConfirmCheckout modalState = "confirmCheckout"
)

// regDraft collects register-product inputs step by step.
type regDraft struct {
	Kind  store.Kind
	ID    string
	Name  string
	Price string
	Stock string
	Extra string
}

func New(ctx context.Context, cfg config.Config, inv *service.InventoryService, sales *repository.SaleRepo) *App {
	adminPwd := cfg.Admin.Password
	if pw, err := secrets.FetchAdminPassword(); err == nil {
		adminPwd = pw
	}
	return &App{
		ctx:      ctx,
		inv:      inv,
		sales:    sales,
		cfg:      cfg,
		adminPwd: adminPwd,
		state:    viewStorefront,
		currency: cfg.UI.CurrencySymbol,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadProducts(), a.loadCart())
}

// messages

type productsMsg []store.Product

type cartMsg struct {
	Entries []service.CartEntry
	Total   int64
}

type salesMsg []repository.Sale

type statusMsg string

type errMsg struct{ err error }

type checkoutDoneMsg service.CheckoutResult

// commands

func (a *App) loadProducts() tea.Cmd {
	return func() tea.Msg {
		return productsMsg(a.inv.Find(a.searchQuery))
	}
}

func (a *App) loadCart() tea.Cmd {
	return func() tea.Msg {
		return cartMsg{Entries: a.inv.CartEntries(), Total: a.inv.CartTotal()}
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if a.sales == nil {
			return salesMsg(nil)
		}
		sales, err := a.sales.ListRecent(a.ctx, 20)
		if err != nil {
			return errMsg{err}
		}
		return salesMsg(sales)
	}
}

func (a *App) addCmd(id string, qty int) tea.Cmd {
	return func() tea.Msg {
		if err := a.inv.AddToCart(id, qty); err != nil {
			return errMsg{err}
		}
		return statusMsg("added to cart")
	}
}

func (a *App) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.inv.RemoveFromCart(id); err != nil {
			return errMsg{err}
		}
		return statusMsg("removed from cart")
	}
}

func (a *App) updateCmd(id string, qty int) tea.Cmd {
	return func() tea.Msg {
		if err := a.inv.UpdateQuantity(id, qty); err != nil {
			return errMsg{err}
		}
		return statusMsg("quantity updated")
	}
}

func (a *App) checkoutCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := a.inv.Checkout(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return checkoutDoneMsg(res)
	}
}

func (a *App) registerCmd(d regDraft) tea.Cmd {
	return func() tea.Msg {
		p := store.Product{
			ID:   strings.TrimSpace(d.ID),
			Kind: d.Kind,
			Name: strings.TrimSpace(d.Name),
		}
		price, err := parsePriceCents(d.Price)
		if err != nil {
			return errMsg{fmt.Errorf("price: %w", store.ErrInvalidQuantity)}
		}
		p.PriceCents = price
		stock, err := strconv.Atoi(strings.TrimSpace(d.Stock))
		if err != nil {
			return errMsg{fmt.Errorf("stock: %w", store.ErrInvalidQuantity)}
		}
		p.Stock = stock
		switch d.Kind {
		case store.KindPhysical:
			w, err := strconv.ParseFloat(strings.TrimSpace(d.Extra), 64)
			if err != nil {
				return errMsg{fmt.Errorf("weight: %w", store.ErrInvalidQuantity)}
			}
			p.WeightKg = w
		case store.KindDigital:
			p.DownloadLink = strings.TrimSpace(d.Extra)
		}
		created, err := a.inv.Register(p)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("registered " + created.ID)
	}
}

// update loop

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewRegister {
			return a.handleRegisterKey(m)
		}
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	case productsMsg:
		a.products = []store.Product(m)
		if a.prodCursor >= len(a.products) {
			a.prodCursor = 0
		}
	case cartMsg:
		a.entries = m.Entries
		a.total = m.Total
		if a.cartCursor >= len(a.entries) {
			a.cartCursor = 0
		}
	case salesMsg:
		a.history = []repository.Sale(m)
	case statusMsg:
		a.status = string(m)
		return a, tea.Batch(a.loadProducts(), a.loadCart())
	case checkoutDoneMsg:
		if m.Lines == 0 {
			a.status = "cart was already empty"
		} else {
			a.status = fmt.Sprintf("checked out %d items for %s", m.Lines, a.money(m.TotalCents))
		}
		a.state = viewStorefront
		return a, tea.Batch(a.loadProducts(), a.loadCart(), a.loadHistory())
	case errMsg:
		a.status = failMessage(m.err)
		return a, tea.Batch(a.loadProducts(), a.loadCart())
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "s":
		a.state = viewStorefront
		a.status = ""
	case "c":
		a.state = viewCart
		a.status = ""
	case "h":
		a.state = viewHistory
		a.status = ""
		return a, a.loadHistory()
	case "n":
		if a.admined {
			a.startRegister()
		} else {
			a.modal = modalLoginUser
			a.inputBuffer = ""
		}
	case "/":
		if a.state == viewStorefront {
			a.searching = true
			a.searchQuery = ""
		}
	case "up", "k":
		if a.state == viewStorefront && a.prodCursor > 0 {
			a.prodCursor--
		}
		if a.state == viewCart && a.cartCursor > 0 {
			a.cartCursor--
		}
	case "down", "j":
		if a.state == viewStorefront && a.prodCursor < len(a.products)-1 {
			a.prodCursor++
		}
		if a.state == viewCart && a.cartCursor < len(a.entries)-1 {
			a.cartCursor++
		}
	case "enter", "a":
		if a.state == viewStorefront && len(a.products) > 0 {
			a.modal = modalAddQty
			a.inputBuffer = ""
		}
	case "u":
		if a.state == viewCart && len(a.entries) > 0 {
			a.modal = modalUpdateQty
			a.inputBuffer = ""
		}
	case "x":
		if a.state == viewCart && len(a.entries) > 0 {
			id := a.entries[a.cartCursor].Line.ProductID
			return a, a.removeCmd(id)
		}
	case "o":
		if a.state == viewCart && len(a.entries) > 0 {
			a.modal = modalConfirmCheckout
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchQuery = ""
		return a, a.loadProducts()
	case tea.KeyEnter:
		a.searching = false
		return a, a.loadProducts()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.searchQuery) > 0 {
			a.searchQuery = a.searchQuery[:len(a.searchQuery)-1]
		}
		return a, a.loadProducts()
	case tea.KeySpace:
		a.searchQuery += " "
		return a, a.loadProducts()
	case tea.KeyRunes:
		a.searchQuery += string(m.Runes)
		return a, a.loadProducts()
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalConfirmCheckout {
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.checkoutCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	}

	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.inputBuffer = ""
		a.loginUser = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(a.inputBuffer)
		modal := a.modal
		a.modal = modalNone
		a.inputBuffer = ""
		switch modal {
		case modalAddQty:
			if len(a.products) == 0 {
				return a, nil
			}
			qty, err := strconv.Atoi(text)
			if err != nil {
				a.status = "quantity must be a number"
				return a, nil
			}
			id := a.products[a.prodCursor].ID
			return a, a.addCmd(id, qty)
		case modalUpdateQty:
			if len(a.entries) == 0 {
				return a, nil
			}
			qty, err := strconv.Atoi(text)
			if err != nil {
				a.status = "quantity must be a number"
				return a, nil
			}
			id := a.entries[a.cartCursor].Line.ProductID
			return a, a.updateCmd(id, qty)
		case modalLoginUser:
			a.loginUser = text
			a.modal = modalLoginPass
		case modalLoginPass:
			if a.loginUser == a.cfg.Admin.Username && secrets.Verify(text, a.adminPwd) {
				a.admined = true
				a.status = "admin unlocked"
				a.startRegister()
			} else {
				a.status = "authentication failed"
			}
			a.loginUser = ""
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
	case tea.KeySpace:
		a.inputBuffer += " "
	case tea.KeyRunes:
		a.inputBuffer += string(m.Runes)
	}
	return a, nil
}

// register flow: one field per step, esc backs out entirely.

var regSteps = []string{"Kind (product/physical/digital)", "Product ID (blank to generate)", "Name", "Price", "Initial stock", "Extra"}

func (a *App) startRegister() {
	a.state = viewRegister
	a.reg = regDraft{}
	a.regStep = 0
	a.inputBuffer = ""
	a.status = ""
}

func (a *App) handleRegisterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewStorefront
		a.inputBuffer = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(a.inputBuffer)
		a.inputBuffer = ""
		switch a.regStep {
		case 0:
			switch strings.ToLower(text) {
			case "", "product":
				a.reg.Kind = store.KindBase
			case "physical":
				a.reg.Kind = store.KindPhysical
			case "digital":
				a.reg.Kind = store.KindDigital
			default:
				a.status = "kind must be product, physical or digital"
				return a, nil
			}
		case 1:
			a.reg.ID = text
		case 2:
			if text == "" {
				a.status = "name required"
				return a, nil
			}
			a.reg.Name = text
		case 3:
			a.reg.Price = text
		case 4:
			a.reg.Stock = text
		case 5:
			a.reg.Extra = text
		}
		a.regStep++
		if a.regStep == 5 && a.reg.Kind == store.KindBase {
			a.regStep++ // base kind has no extra field
		}
		if a.regStep >= len(regSteps) {
			a.state = viewStorefront
			return a, a.registerCmd(a.reg)
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
	case tea.KeySpace:
		a.inputBuffer += " "
	case tea.KeyRunes:
		a.inputBuffer += string(m.Runes)
	}
	return a, nil
}

// views

func (a *App) View() string {
	var body string
	switch a.state {
	case viewCart:
		body = a.renderCart()
	case viewHistory:
		body = a.renderHistory()
	case viewRegister:
		body = a.renderRegister()
	default:
		body = a.renderStorefront()
	}
	if a.modal != modalNone {
		body += "\n\n" + modalStyle.Render(a.renderModal())
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	return body
}

func (a *App) renderStorefront() string {
	title := titleStyle.Render("JaskShop Storefront")
	out := title + "\n"
	if a.searching || a.searchQuery != "" {
		out += fmt.Sprintf("search: %s\n", a.searchQuery)
	}
	if len(a.products) == 0 {
		out += "No products available.\n"
	}
	for i, p := range a.products {
		marker := " "
		if i == a.prodCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-10s %-28s %10s  stock %3d  %s\n",
			marker, p.ID, p.Name, a.money(p.PriceCents), p.Stock, variantNote(p))
	}
	out += faintStyle.Render("[enter] Add to cart  [/] Search  [c] Cart  [h] History  [n] New product (admin)  [q] Quit")
	return out
}

func (a *App) renderCart() string {
	title := titleStyle.Render("Your Cart")
	out := title + "\n"
	if len(a.entries) == 0 {
		out += "Your cart is empty.\n"
	}
	for i, e := range a.entries {
		marker := " "
		if i == a.cartCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-28s x%-3d @ %10s = %10s\n",
			marker, e.Product.Name, e.Line.Quantity, a.money(e.Product.PriceCents), a.money(e.Line.Subtotal(&e.Product)))
	}
	out += fmt.Sprintf("Grand total: %s\n", a.money(a.total))
	out += faintStyle.Render("[u] Update quantity  [x] Remove  [o] Checkout  [s] Storefront  [q] Quit")
	return out
}

func (a *App) renderHistory() string {
	title := titleStyle.Render("Sales History")
	out := title + "\n"
	if a.sales == nil {
		out += "History ledger is disabled.\n"
	} else if len(a.history) == 0 {
		out += "No sales recorded yet.\n"
	}
	for _, s := range a.history {
		out += fmt.Sprintf("%s  %-36s %10s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.ID, a.money(s.TotalCents))
	}
	out += faintStyle.Render("[s] Storefront  [c] Cart  [q] Quit")
	return out
}

func (a *App) renderRegister() string {
	title := titleStyle.Render("Register New Product")
	out := title + "\n"
	for i := 0; i < a.regStep && i < len(regSteps); i++ {
		out += faintStyle.Render(fmt.Sprintf("%s: %s\n", regSteps[i], a.regValue(i)))
	}
	if a.regStep < len(regSteps) {
		label := regSteps[a.regStep]
		if a.regStep == 5 {
			if a.reg.Kind == store.KindPhysical {
				label = "Weight (kg)"
			} else {
				label = "Download link"
			}
		}
		out += fmt.Sprintf("%s: %s\n", label, a.inputBuffer)
	}
	out += faintStyle.Render("[enter] Next  [esc] Cancel")
	return out
}

func (a *App) regValue(step int) string {
	switch step {
	case 0:
		return string(a.reg.Kind)
	case 1:
		return a.reg.ID
	case 2:
		return a.reg.Name
	case 3:
		return a.reg.Price
	case 4:
		return a.reg.Stock
	default:
		return a.reg.Extra
	}
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAddQty:
		p := a.products[a.prodCursor]
		return titleStyle.Render("Add "+p.Name) + fmt.Sprintf("\nQuantity: %s\n[enter] Add  [esc] Cancel", a.inputBuffer)
	case modalUpdateQty:
		e := a.entries[a.cartCursor]
		return titleStyle.Render("Update "+e.Product.Name) + fmt.Sprintf("\nNew quantity (0 removes): %s\n[enter] Update  [esc] Cancel", a.inputBuffer)
	case modalLoginUser:
		return titleStyle.Render("Admin Authentication") + fmt.Sprintf("\nUsername: %s\n[enter] Next  [esc] Cancel", a.inputBuffer)
	case modalLoginPass:
		return titleStyle.Render("Admin Authentication") + fmt.Sprintf("\nPassword: %s\n[enter] Login  [esc] Cancel", strings.Repeat("*", len(a.inputBuffer)))
	case modalConfirmCheckout:
		return titleStyle.Render("Checkout?") + fmt.Sprintf("\n%d items, total %s\n[y] Confirm  [n] Cancel", len(a.entries), a.money(a.total))
	default:
		return ""
	}
}

func (a *App) money(cents int64) string {
	return fmt.Sprintf("%s%.2f", a.currency, float64(cents)/100)
}

func variantNote(p store.Product) string {
	switch p.Kind {
	case store.KindPhysical:
		return fmt.Sprintf("%.1f kg", p.WeightKg)
	case store.KindDigital:
		return "digital"
	default:
		return ""
	}
}

func failMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrNotFound):
		return "product not found"
	case errors.Is(err, store.ErrInsufficientStock):
		return "not enough stock for that quantity"
	case errors.Is(err, store.ErrInvalidQuantity):
		return "quantity must not be negative"
	case errors.Is(err, store.ErrDuplicateID):
		return "that product id already exists"
	case errors.Is(err, store.ErrPersistence):
		return "could not save changes to disk"
	default:
		return "error: " + err.Error()
	}
}

func parsePriceCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, store.ErrInvalidQuantity
	}
	return int64(math.Round(f * 100)), nil
}
