package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"galaxy-cinema-cli/booking"
	"galaxy-cinema-cli/config"
	"galaxy-cinema-cli/model"
	"galaxy-cinema-cli/seatmap"
	"galaxy-cinema-cli/service"
	"galaxy-cinema-cli/store"
)

type appState int

const (
	stateLoadingFilms appState = iota
	stateSelectFilm
	stateLoadingProjections
	stateSelectProjection
	stateLoadingSeats
	stateShowSeatMap
	stateCheckout
	statePaying
	statePaymentDone
	stateLogin
	stateLoggingIn
	stateLoadingHistory
	stateShowHistory
	stateError
)

const historyFetchSize = 500

type appModel struct {
	client *service.Client
	cfg    config.Config

	state     appState
	lastState appState
	err       error

	width  int
	height int

	session    store.Session
	hasSession bool

	films      []model.Film
	film       model.Film
	projection model.Projection

	filmList       list.Model
	projectionList list.Model
	historyList    list.Model

	layout    []model.Seat
	sold      map[string]bool
	selection *seatmap.Selection
	seatRows  [][]seatmap.Cell
	cursorRow int
	cursorCol int

	groups []booking.Group

	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginNext     appState

	paymentOK bool

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type filmsMsg struct {
	films []model.Film
	err   error
}

type projectionsMsg struct {
	projections []model.Projection
	err         error
}

type seatsMsg struct {
	seats []model.Seat
	err   error
}

type loginMsg struct {
	session store.Session
	err     error
}

type bookedMsg struct {
	paid bool
	err  error
}

type historyMsg struct {
	groups []booking.Group
	err    error
}

type deletedMsg struct {
	key string
	err error
}

func New() tea.Model {
	cfg := config.Load()
	client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout})
	client.SetBaseURL(cfg.BaseURL)

	m := appModel{
		client:    client,
		cfg:       cfg,
		state:     stateLoadingFilms,
		sold:      map[string]bool{},
		selection: seatmap.NewSelection(),
	}

	if session, ok, err := store.LoadSession(); err == nil && ok {
		m.session = session
		m.hasSession = true
		client.SetToken(session.Token)
	}

	m.filmList = newList("Select Film")
	m.projectionList = newList("Select Showtime")
	m.historyList = newList("My Bookings")

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "email"
	m.emailInput.CharLimit = 120
	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchFilmsCmd(false), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateLogin {
			return m.handleLoginKey(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case filmsMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.films = msg.films
		m.filmList.SetItems(buildFilmItems(msg.films))
		m.state = stateSelectFilm
		return m, nil

	case projectionsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateSelectFilm)
		}
		if len(msg.projections) == 0 {
			return m, errWithReturnCmd(fmt.Errorf("no showtimes scheduled for %s", m.film.Title), stateSelectFilm)
		}
		m.projectionList.Title = fmt.Sprintf("Showtimes • %s", m.film.Title)
		m.projectionList.SetItems(buildProjectionItems(msg.projections))
		m.state = stateSelectProjection
		return m, nil

	case seatsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateSelectProjection)
		}
		m.layout = msg.seats
		m.sold = seatmap.SoldSet(msg.seats)
		m.selection.Prune(m.sold)
		m.rebuildSeatRows()
		m.cursorRow = 0
		m.cursorCol = 0
		m.state = stateShowSeatMap
		return m, nil

	case loginMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateLogin)
		}
		m.session = msg.session
		m.hasSession = true
		m.passwordInput.SetValue("")
		return m.afterLogin()

	case bookedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateCheckout)
		}
		m.paymentOK = msg.paid
		m.selection.Clear()
		m.state = statePaymentDone
		return m, nil

	case historyMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateSelectFilm)
		}
		m.groups = msg.groups
		m.historyList.SetItems(buildBookingItems(msg.groups))
		m.state = stateShowHistory
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateShowHistory)
		}
		m.groups = booking.DeleteGroup(m.groups, msg.key)
		index := m.historyList.Index()
		m.historyList.SetItems(buildBookingItems(m.groups))
		if count := len(m.historyList.Items()); count > 0 {
			if index >= count {
				index = count - 1
			}
			m.historyList.Select(index)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFilm:
		m.filmList, cmd = m.filmList.Update(msg)
	case stateSelectProjection:
		m.projectionList, cmd = m.projectionList.Update(msg)
	case stateShowHistory:
		m.historyList, cmd = m.historyList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingFilms, stateLoadingProjections, stateLoadingSeats, statePaying, stateLoggingIn, stateLoadingHistory:
		return header + "\n\n" + m.loadingView()
	case stateSelectFilm:
		return header + "\n\n" + m.filmList.View()
	case stateSelectProjection:
		return header + "\n\n" + m.projectionList.View()
	case stateShowSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case stateCheckout:
		return header + "\n\n" + m.checkoutView()
	case statePaymentDone:
		return header + "\n\n" + m.paymentDoneView()
	case stateLogin:
		return header + "\n\n" + m.loginView()
	case stateShowHistory:
		return header + "\n\n" + m.historyList.View()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Galaxy Cinema")
	sub := []string{}
	if m.hasSession && m.session.Fullname != "" {
		sub = append(sub, fmt.Sprintf("User: %s", m.session.Fullname))
	}
	if m.film.Title != "" && m.state != stateSelectFilm {
		sub = append(sub, fmt.Sprintf("Film: %s", m.film.Title))
	}
	if m.projection.Id != "" && (m.state == stateShowSeatMap || m.state == stateCheckout || m.state == statePaying) {
		sub = append(sub, fmt.Sprintf("Showtime: %s", m.projection.StartTime.Format("Mon 02/01 15:04")))
		if m.projection.Room != nil && m.projection.Room.RoomNumber != "" {
			sub = append(sub, fmt.Sprintf("Room: %s", m.projection.Room.RoomNumber))
		}
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateSelectFilm:
		hints = "ctrl+c quit • enter select • type to filter • ctrl+b my bookings • ctrl+r refresh"
	case stateShowSeatMap:
		hints = "ctrl+c quit • esc back • arrows move • space toggle seat • enter checkout"
	case stateCheckout:
		hints = "ctrl+c quit • esc back • enter confirm and pay"
	case statePaymentDone:
		hints = "ctrl+c quit • enter my bookings • esc back to films"
	case stateShowHistory:
		hints = "ctrl+c quit • esc back • type to filter • x cancel booking"
	case stateLogin:
		hints = "ctrl+c quit • esc back • tab next field • enter submit"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		model, cmd := m.goBack()
		return model, cmd, true
	case "ctrl+b":
		if m.state == stateSelectFilm {
			return m.openHistory()
		}
	case "ctrl+r":
		if m.state == stateSelectFilm {
			m.state = stateLoadingFilms
			return m, tea.Batch(m.fetchFilmsCmd(true), m.spinner.Tick), true
		}
	case "x":
		if m.state == stateShowHistory {
			return m.deleteSelectedBooking()
		}
	}

	if m.state == stateShowSeatMap {
		if model, cmd, handled := m.handleSeatMapKey(msg); handled {
			return model, cmd, true
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectFilm:
			item, ok := m.filmList.SelectedItem().(filmItem)
			if !ok {
				return m, nil, true
			}
			m.film = item.film
			_ = store.RememberFilm(m.film)
			m.state = stateLoadingProjections
			return m, tea.Batch(m.fetchProjectionsCmd(m.film.Id), m.spinner.Tick), true
		case stateSelectProjection:
			item, ok := m.projectionList.SelectedItem().(projectionItem)
			if !ok {
				return m, nil, true
			}
			m.projection = item.projection
			m.selection.Clear()
			m.state = stateLoadingSeats
			return m, tea.Batch(m.fetchSeatsCmd(m.projection.Id), m.spinner.Tick), true
		case stateCheckout:
			if !m.hasSession {
				return m.requireLogin(stateCheckout)
			}
			m.state = statePaying
			return m, tea.Batch(m.createBookingCmd(), m.spinner.Tick), true
		case statePaymentDone:
			return m.openHistory()
		case stateError:
			model, cmd := m.goBack()
			return model, cmd, true
		}
	}
	return m, nil, false
}

func (m appModel) handleSeatMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
		return m, nil, true
	case "down", "j":
		m.moveCursor(1, 0)
		return m, nil, true
	case "left", "h":
		m.moveCursor(0, -1)
		return m, nil, true
	case "right", "l":
		m.moveCursor(0, 1)
		return m, nil, true
	case " ":
		cell, ok := m.cursorCell()
		if !ok {
			return m, nil, true
		}
		m.selection.Toggle(cell.SeatId, m.sold)
		m.rebuildSeatRows()
		return m, nil, true
	case "enter":
		if m.selection.Count() == 0 {
			return m, errCmd(errors.New("select at least one seat before checkout")), true
		}
		if !m.hasSession {
			return m.requireLogin(stateCheckout)
		}
		m.state = stateCheckout
		return m, nil, true
	}
	return m, nil, false
}

func (m *appModel) moveCursor(dr int, dc int) {
	if len(m.seatRows) == 0 {
		return
	}
	row := m.cursorRow + dr
	if row < 0 {
		row = 0
	}
	if row >= len(m.seatRows) {
		row = len(m.seatRows) - 1
	}
	col := m.cursorCol + dc
	if col < 0 {
		col = 0
	}
	if col >= len(m.seatRows[row]) {
		col = len(m.seatRows[row]) - 1
	}
	m.cursorRow = row
	m.cursorCol = col
}

func (m appModel) cursorCell() (seatmap.Cell, bool) {
	if m.cursorRow < 0 || m.cursorRow >= len(m.seatRows) {
		return seatmap.Cell{}, false
	}
	row := m.seatRows[m.cursorRow]
	if m.cursorCol < 0 || m.cursorCol >= len(row) {
		return seatmap.Cell{}, false
	}
	return row[m.cursorCol], true
}

func (m *appModel) rebuildSeatRows() {
	cells := seatmap.Reconcile(m.layout, m.sold, m.selection.Set())
	m.seatRows = groupSeatRows(cells)
}

// groupSeatRows splits the flat reconciled cells into display rows keyed
// by the letter prefix of the seat number ("A1" -> row "A"), keeping the
// layout order inside each row.
func groupSeatRows(cells []seatmap.Cell) [][]seatmap.Cell {
	var rows [][]seatmap.Cell
	index := map[string]int{}
	for _, cell := range cells {
		label := seatRowLabel(cell.SeatNumber)
		i, ok := index[label]
		if !ok {
			i = len(rows)
			index[label] = i
			rows = append(rows, nil)
		}
		rows[i] = append(rows[i], cell)
	}
	return rows
}

func seatRowLabel(seatNumber string) string {
	trimmed := strings.TrimSpace(seatNumber)
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			if i == 0 {
				return ""
			}
			return trimmed[:i]
		}
	}
	return trimmed
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSelectFilm:
		return m, tea.Quit
	case stateSelectProjection:
		m.state = stateSelectFilm
	case stateShowSeatMap:
		m.state = stateSelectProjection
	case stateCheckout:
		m.state = stateShowSeatMap
	case statePaymentDone:
		m.film = model.Film{}
		m.projection = model.Projection{}
		m.state = stateSelectFilm
	case stateLogin:
		m.state = stateSelectFilm
	case stateShowHistory:
		m.state = stateSelectFilm
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

func (m appModel) requireLogin(next appState) (tea.Model, tea.Cmd, bool) {
	m.loginNext = next
	m.loginFocus = 0
	m.emailInput.Focus()
	m.passwordInput.Blur()
	m.state = stateLogin
	return m, textinput.Blink, true
}

func (m appModel) afterLogin() (tea.Model, tea.Cmd) {
	switch m.loginNext {
	case stateCheckout:
		m.state = stateCheckout
		return m, nil
	case stateShowHistory:
		m.state = stateLoadingHistory
		return m, tea.Batch(m.fetchHistoryCmd(), m.spinner.Tick)
	default:
		m.state = stateSelectFilm
		return m, nil
	}
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		model, cmd := m.goBack()
		return model, cmd
	case "tab", "shift+tab":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, textinput.Blink
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			return m, errCmd(errors.New("email and password are required"))
		}
		m.state = stateLoggingIn
		return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) openHistory() (tea.Model, tea.Cmd, bool) {
	if !m.hasSession {
		return m.requireLogin(stateShowHistory)
	}
	m.state = stateLoadingHistory
	return m, tea.Batch(m.fetchHistoryCmd(), m.spinner.Tick), true
}

func (m appModel) deleteSelectedBooking() (tea.Model, tea.Cmd, bool) {
	item, ok := m.historyList.SelectedItem().(bookingItem)
	if !ok {
		return m, nil, true
	}
	return m, tea.Batch(m.deleteBookingCmd(item.group), m.spinner.Tick), true
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectFilm:
		return &m.filmList
	case stateSelectProjection:
		return &m.projectionList
	case stateShowHistory:
		return &m.historyList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingFilms ||
		m.state == stateLoadingProjections ||
		m.state == stateLoadingSeats ||
		m.state == statePaying ||
		m.state == stateLoggingIn ||
		m.state == stateLoadingHistory
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingFilms:
		title = "Loading films"
	case stateLoadingProjections:
		title = "Loading showtimes"
	case stateLoadingSeats:
		title = "Loading seat map"
	case statePaying:
		title = "Processing payment"
	case stateLoggingIn:
		title = "Signing in"
	case stateLoadingHistory:
		title = "Loading bookings"
	}

	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.filmList.SetSize(m.width, h)
	m.projectionList.SetSize(m.width, h)
	m.historyList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingFilms:
		return stateSelectFilm
	case stateLoadingProjections:
		return stateSelectFilm
	case stateLoadingSeats:
		return stateSelectProjection
	case statePaying:
		return stateCheckout
	case stateLoggingIn:
		return stateLogin
	case stateLoadingHistory:
		return stateSelectFilm
	case stateError:
		return stateSelectFilm
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchFilmsCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		if !force {
			if cached, fresh, err := store.LoadFilmCache(); err == nil && fresh && len(cached) > 0 {
				return filmsMsg{films: cached}
			}
		}
		ctx := context.Background()
		films, err := m.client.GetFilms(ctx)
		if err == nil && len(films) > 0 {
			_ = store.SaveFilmCache(films)
		}
		return filmsMsg{films: films, err: err}
	}
}

func (m appModel) fetchProjectionsCmd(filmID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		projections, err := m.client.GetProjectionsByFilm(ctx, filmID)
		if err != nil {
			if service.IsNotFound(err) {
				return projectionsMsg{projections: nil, err: nil}
			}
			return projectionsMsg{err: err}
		}
		return projectionsMsg{projections: projections}
	}
}

func (m appModel) fetchSeatsCmd(projectionID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := m.client.GetSeats(ctx, projectionID)
		if err == nil && len(seats) == 0 && m.projection.Room != nil {
			seats = m.projection.Room.Seats
		}
		if err == nil && len(seats) == 0 {
			return seatsMsg{err: errors.New("no seat layout available for this showtime")}
		}
		return seatsMsg{seats: seats, err: err}
	}
}

func (m appModel) loginCmd(email string, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		token, err := m.client.Login(ctx, email, password)
		if err != nil {
			return loginMsg{err: err}
		}
		user, err := m.client.Profile(ctx)
		if err != nil {
			return loginMsg{err: err}
		}
		session := store.Session{
			Token:    token,
			UserId:   user.Id,
			Fullname: user.Fullname,
			Role:     user.Role,
		}
		_ = store.SaveSession(session)
		return loginMsg{session: session}
	}
}

func (m appModel) createBookingCmd() tea.Cmd {
	seatIDs := m.selection.IDs()
	projectionID := m.projection.Id
	userID := m.session.UserId
	return func() tea.Msg {
		ctx := context.Background()
		for _, seatID := range seatIDs {
			req := model.CreateTicketRequest{
				ProjectionId: projectionID,
				SeatId:       seatID,
				UserId:       userID,
			}
			if err := m.client.CreateTicket(ctx, req); err != nil {
				return bookedMsg{err: err}
			}
		}
		paid, err := m.client.WaitForPayment(ctx, m.cfg.PaymentPollAttempts, m.cfg.PaymentPollInterval)
		if err != nil {
			return bookedMsg{err: err}
		}
		return bookedMsg{paid: paid}
	}
}

func (m appModel) fetchHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		page, err := m.client.GetMyTickets(ctx, 1, historyFetchSize)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{groups: booking.GroupTickets(page.Items)}
	}
}

func (m appModel) deleteBookingCmd(group booking.Group) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.DeleteBooking(ctx, group.Key, group.TicketIDs()); err != nil {
			return deletedMsg{key: group.Key, err: err}
		}
		return deletedMsg{key: group.Key}
	}
}

type filmItem struct {
	film   model.Film
	recent bool
}

func (f filmItem) Title() string {
	return f.film.Title
}

func (f filmItem) Description() string {
	parts := []string{}
	if f.recent {
		parts = append(parts, "Recent")
	}
	if genres := strings.Join(f.film.FilmGenres, ", "); genres != "" {
		parts = append(parts, genres)
	}
	if f.film.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", f.film.Duration))
	}
	if f.film.IsShowing() {
		parts = append(parts, "Now showing")
	} else if !f.film.ReleaseDate.IsZero() {
		parts = append(parts, "From "+f.film.ReleaseDate.Format(time.DateOnly))
	}
	return strings.Join(parts, " • ")
}

func (f filmItem) FilterValue() string {
	parts := append([]string{f.film.Title, f.film.Director}, f.film.FilmGenres...)
	return strings.ToLower(strings.Join(parts, " "))
}

func buildFilmItems(films []model.Film) []list.Item {
	recents, _ := store.LoadRecentFilms()
	byID := map[string]model.Film{}
	for _, film := range films {
		byID[film.Id] = film
	}

	var items []list.Item
	used := map[string]bool{}
	for _, recent := range recents {
		if film, ok := byID[recent.ID]; ok && !used[film.Id] {
			items = append(items, filmItem{film: film, recent: true})
			used[film.Id] = true
		}
	}

	remaining := make([]model.Film, 0, len(films))
	for _, film := range films {
		if !used[film.Id] {
			remaining = append(remaining, film)
		}
	}

	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].IsShowing() != remaining[j].IsShowing() {
			return remaining[i].IsShowing()
		}
		return strings.ToLower(remaining[i].Title) < strings.ToLower(remaining[j].Title)
	})

	for _, film := range remaining {
		items = append(items, filmItem{film: film})
	}
	return items
}

type projectionItem struct {
	projection model.Projection
}

func (p projectionItem) Title() string {
	return p.projection.StartTime.Format("Mon 02/01 • 15:04")
}

func (p projectionItem) Description() string {
	parts := []string{}
	if p.projection.Room != nil && p.projection.Room.RoomNumber != "" {
		room := "Room " + p.projection.Room.RoomNumber
		if p.projection.Room.RoomType != "" {
			room += " (" + p.projection.Room.RoomType + ")"
		}
		parts = append(parts, room)
	}
	if p.projection.Price > 0 {
		parts = append(parts, formatPrice(p.projection.Price))
	}
	return strings.Join(parts, " • ")
}

func (p projectionItem) FilterValue() string {
	parts := []string{p.projection.StartTime.Format("2006-01-02 15:04")}
	if p.projection.Room != nil {
		parts = append(parts, p.projection.Room.RoomNumber, p.projection.Room.RoomType)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func buildProjectionItems(projections []model.Projection) []list.Item {
	sorted := append([]model.Projection{}, projections...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime.Time)
	})

	items := make([]list.Item, 0, len(sorted))
	for _, projection := range sorted {
		items = append(items, projectionItem{projection: projection})
	}
	return items
}

type bookingItem struct {
	group booking.Group
}

func (b bookingItem) Title() string {
	first, _ := b.group.First()
	title := first.Title
	if title == "" {
		title = b.group.Key
	}
	return fmt.Sprintf("%s • %d seat(s)", title, len(b.group.Tickets))
}

func (b bookingItem) Description() string {
	first, _ := b.group.First()
	parts := []string{}
	if len(b.group.SeatNames()) > 0 {
		parts = append(parts, strings.Join(b.group.SeatNames(), ", "))
	}
	if first.RoomNumber != "" {
		parts = append(parts, "Room "+first.RoomNumber)
	}
	if total := b.group.TotalPrice(); total > 0 {
		parts = append(parts, formatPrice(total))
	}
	if !first.PurchaseTime.IsZero() {
		parts = append(parts, first.PurchaseTime.Format("2006-01-02 15:04"))
	}
	if b.group.IsFullyPaid() {
		parts = append(parts, "paid")
	} else {
		parts = append(parts, "pending")
	}
	if b.group.Incomplete() {
		parts = append(parts, "incomplete record")
	}
	return strings.Join(parts, " • ")
}

func (b bookingItem) FilterValue() string {
	first, _ := b.group.First()
	parts := append([]string{b.group.Key, first.Title, first.RoomNumber}, b.group.SeatNames()...)
	return strings.ToLower(strings.Join(parts, " "))
}

func buildBookingItems(groups []booking.Group) []list.Item {
	sorted := append([]booking.Group{}, groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, _ := sorted[i].First()
		right, _ := sorted[j].First()
		return right.PurchaseTime.Before(left.PurchaseTime.Time)
	})

	items := make([]list.Item, 0, len(sorted))
	for _, group := range sorted {
		items = append(items, bookingItem{group: group})
	}
	return items
}

func (m appModel) renderSeatMap() string {
	if len(m.seatRows) == 0 {
		return "No seat map data."
	}

	styleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleSold := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleCursor := lipgloss.NewStyle().Reverse(true)

	cellWidth := 2
	for _, row := range m.seatRows {
		for _, cell := range row {
			if len(cell.SeatNumber) > cellWidth {
				cellWidth = len(cell.SeatNumber)
			}
		}
	}

	rowWidth := 2
	for _, row := range m.seatRows {
		if len(row) == 0 {
			continue
		}
		if label := seatRowLabel(row[0].SeatNumber); len(label) > rowWidth {
			rowWidth = len(label)
		}
	}

	available := 0
	sold := 0
	selected := 0

	var b strings.Builder
	for r, row := range m.seatRows {
		label := ""
		if len(row) > 0 {
			label = seatRowLabel(row[0].SeatNumber)
		}
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))
		for c, cell := range row {
			text := padCell(cell.SeatNumber, cellWidth)
			switch cell.Status {
			case seatmap.Sold:
				sold++
				text = styleSold.Render(text)
			case seatmap.Selected:
				selected++
				text = styleSelected.Render(text)
			default:
				available++
				text = styleAvailable.Render(text)
			}
			if r == m.cursorRow && c == m.cursorCol {
				text = styleCursor.Render(padCell(cell.SeatNumber, cellWidth))
			}
			b.WriteString(text)
			if c < len(row)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	gridWidth := 0
	for _, row := range m.seatRows {
		if w := len(row)*(cellWidth+1) - 1; w > gridWidth {
			gridWidth = w
		}
	}

	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBar := screenBarBlock(gridWidth, "SCREEN")

	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenStyle.Render(screenBar.mid))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(hint("Front / Screen"))
	b.WriteString("\n\n")

	total := m.selection.Count()
	price := float64(total) * m.projection.Price
	legend := "Legend: green available • yellow selected • red sold"
	counts := fmt.Sprintf("Available: %d • Sold: %d • Selected: %d • Total: %s", available, sold, total, formatPrice(price))
	return b.String() + hint(legend) + "\n" + hint(counts)
}

func (m appModel) checkoutView() string {
	seats := make([]string, 0, m.selection.Count())
	for _, row := range m.seatRows {
		for _, cell := range row {
			if cell.Status == seatmap.Selected {
				seats = append(seats, cell.SeatNumber)
			}
		}
	}
	total := float64(len(seats)) * m.projection.Price

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Checkout"),
		"",
		fmt.Sprintf("Film:     %s", m.film.Title),
		fmt.Sprintf("Showtime: %s", m.projection.StartTime.Format("Mon 02/01 15:04")),
	}
	if m.projection.Room != nil {
		lines = append(lines, fmt.Sprintf("Room:     %s", m.projection.Room.RoomNumber))
	}
	lines = append(lines,
		fmt.Sprintf("Seats:    %s", strings.Join(seats, ", ")),
		fmt.Sprintf("Total:    %s", formatPrice(total)),
		"",
		hint("Press enter to confirm and pay, esc to go back."),
	)
	return strings.Join(lines, "\n")
}

func (m appModel) paymentDoneView() string {
	if m.paymentOK {
		ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
		return ok.Render("Payment confirmed!") + "\n\n" + hint("Press enter to see your bookings.")
	}
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	return warn.Render("Payment is still pending.") + "\n\n" + hint("The booking was created. Check \"my bookings\" later for its status.")
}

func (m appModel) loginView() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Sign in"),
		"",
		"Email:    " + m.emailInput.View(),
		"Password: " + m.passwordInput.View(),
		"",
		hint("Press tab to switch fields, enter to submit."),
	}
	return strings.Join(lines, "\n")
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	mid string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	labelText := " " + label + " "
	padding := width - len(labelText)
	left := padding / 2
	right := padding - left
	mid := strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right)
	return screenBlock{mid: mid}
}

func formatPrice(price float64) string {
	if price <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f VND", price)
}
