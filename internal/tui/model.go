// Package tui is the interactive seat grid: a rows×cols board of seats that
// staff use to book, search and reset seats. Free seats are green, occupied
// seats red with the occupant's name and the minutes left.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seatBooker/internal/models"
	"seatBooker/internal/seats"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Service is the part of seats.Service the grid needs.
type Service interface {
	Grid(ctx context.Context) ([]models.SeatStatus, error)
	Active(ctx context.Context) ([]models.Booking, error)
	Lookup(ctx context.Context, seat int) (models.SeatStatus, error)
	Book(ctx context.Context, req seats.BookRequest) (models.Booking, error)
	Release(ctx context.Context, seat int) (models.Booking, error)
	ReleaseAll(ctx context.Context) (int, error)
	Now() time.Time
}

type mode int

const (
	modeGrid mode = iota
	modeBookForm
	modeConfirmRelease
	modeConfirmReleaseAll
	modeSearch
)

const (
	fieldName = iota
	fieldMobile
	fieldDuration
	fieldEntry
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Mobile",
	"Duration (min)",
	"Entry Time (HH:MM 24hr)",
}

type tickMsg time.Time

type expiredMsg []models.Booking

// Model implements tea.Model.
type Model struct {
	ctx             context.Context
	service         Service
	rows            int
	cols            int
	refreshInterval time.Duration
	expired         <-chan []models.Booking
	keys            KeyMap
	theme           Theme

	grid   []models.SeatStatus
	active []models.Booking
	cursor int // Index into grid.

	mode mode

	// Booking form.
	formSeat  int
	inputs    [fieldCount]textinput.Model
	focus     int
	formError string

	// Search dialog.
	searchInput   textinput.Model
	searchResult  string
	searchIsError bool

	status        string
	statusIsError bool
}

// NewModel builds the grid and loads the current bookings. expired may be
// nil; otherwise every batch received on it is announced in the status line.
func NewModel(ctx context.Context, service Service, rows, cols int, refreshInterval time.Duration, expired <-chan []models.Booking) Model {
	model := Model{
		ctx:             ctx,
		service:         service,
		rows:            rows,
		cols:            cols,
		refreshInterval: refreshInterval,
		expired:         expired,
		keys:            DefaultKeyMap,
		theme:           DefaultTheme(),
	}
	model.reload()
	return model
}

// Init implements tea.Model. Starts the refresh ticker and, when a channel
// was given, listens for expired bookings.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{model.tick()}
	if model.expired != nil {
		commands = append(commands, listenForExpired(model.expired))
	}
	return tea.Batch(commands...)
}

func (model Model) tick() tea.Cmd {
	return tea.Tick(model.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenForExpired blocks until a batch arrives on the channel, then
// delivers it as an expiredMsg.
func listenForExpired(channel <-chan []models.Booking) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-channel
		if !ok {
			return nil
		}
		return expiredMsg(batch)
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tickMsg:
		model.reload()
		return model, model.tick()

	case expiredMsg:
		notices := make([]string, 0, len(message))
		for _, b := range message {
			notices = append(notices, fmt.Sprintf("Seat %d (%s) time ended.", b.Seat, b.Name))
		}
		model.setInfo(strings.Join(notices, " "))
		model.reload()
		return model, listenForExpired(model.expired)

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}

		switch model.mode {
		case modeBookForm:
			return model.handleFormKeys(message)
		case modeSearch:
			return model.handleSearchKeys(message)
		case modeConfirmRelease, modeConfirmReleaseAll:
			return model.handleConfirmKeys(message)
		default:
			return model.handleGridKeys(message)
		}
	}

	return model, nil
}

func (model Model) handleGridKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor >= model.cols {
			model.cursor -= model.cols
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor+model.cols < len(model.grid) {
			model.cursor += model.cols
		}

	case key.Matches(message, model.keys.Left):
		if model.cursor%model.cols != 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Right):
		if model.cursor%model.cols != model.cols-1 && model.cursor+1 < len(model.grid) {
			model.cursor++
		}

	case key.Matches(message, model.keys.Select):
		if model.cursor >= len(model.grid) {
			return model, nil
		}
		seat := model.grid[model.cursor]
		if seat.Occupied {
			model.mode = modeConfirmRelease
			return model, nil
		}
		command := model.openForm(seat.Seat)
		return model, command

	case key.Matches(message, model.keys.Search):
		model.mode = modeSearch
		model.searchInput = textinput.New()
		model.searchInput.Prompt = ""
		model.searchInput.Placeholder = fmt.Sprintf("1-%d", model.seats())
		model.searchInput.CharLimit = 4
		model.searchResult = ""
		model.searchIsError = false
		command := model.searchInput.Focus()
		return model, command

	case key.Matches(message, model.keys.ResetAll):
		model.mode = modeConfirmReleaseAll
	}

	return model, nil
}

func (model *Model) openForm(seat int) tea.Cmd {
	model.mode = modeBookForm
	model.formSeat = seat
	model.formError = ""
	model.focus = fieldName

	for i := range model.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 64
		model.inputs[i] = input
	}
	model.inputs[fieldMobile].CharLimit = 20
	model.inputs[fieldDuration].CharLimit = 4
	model.inputs[fieldEntry].CharLimit = 16
	model.inputs[fieldEntry].SetValue(model.service.Now().Format("15:04"))

	return model.inputs[fieldName].Focus()
}

func (model *Model) focusField(index int) tea.Cmd {
	model.inputs[model.focus].Blur()
	model.focus = (index + fieldCount) % fieldCount
	return model.inputs[model.focus].Focus()
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.mode = modeGrid
		return model, nil

	case key.Matches(message, model.keys.NextField):
		command := model.focusField(model.focus + 1)
		return model, command

	case key.Matches(message, model.keys.PrevField):
		command := model.focusField(model.focus - 1)
		return model, command

	case key.Matches(message, model.keys.Submit):
		if model.focus < fieldCount-1 {
			command := model.focusField(model.focus + 1)
			return model, command
		}
		model.submitBooking()
		return model, nil
	}

	var command tea.Cmd
	model.inputs[model.focus], command = model.inputs[model.focus].Update(message)
	return model, command
}

func (model *Model) submitBooking() {
	duration, err := strconv.Atoi(strings.TrimSpace(model.inputs[fieldDuration].Value()))
	if err != nil {
		model.formError = "Invalid input: duration must be a whole number of minutes."
		return
	}

	booking, err := model.service.Book(model.ctx, seats.BookRequest{
		Seat:      model.formSeat,
		Name:      model.inputs[fieldName].Value(),
		Mobile:    model.inputs[fieldMobile].Value(),
		Duration:  duration,
		EntryTime: model.inputs[fieldEntry].Value(),
	})
	if err != nil {
		model.formError = describeBookingError(err)
		return
	}

	model.mode = modeGrid
	model.setInfo(fmt.Sprintf("Seat %d booked for %d mins.", booking.Seat, booking.Duration))
	model.reload()
}

func describeBookingError(err error) string {
	switch {
	case errors.Is(err, seats.ErrValidation):
		return "Invalid input: " + err.Error() + "."
	case errors.Is(err, seats.ErrInvalidEntryTime):
		return "Invalid input: entry time must be HH:MM (24hr)."
	case errors.Is(err, seats.ErrAlreadyExpired):
		return "Invalid input: that booking would already be over."
	case errors.Is(err, seats.ErrSeatOccupied):
		return "Seat is already occupied."
	default:
		return "Booking failed: " + err.Error()
	}
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.mode = modeGrid
		return model, nil

	case key.Matches(message, model.keys.Submit):
		model.search(model.searchInput.Value())
		model.searchInput.SetValue("")
		return model, nil
	}

	var command tea.Cmd
	model.searchInput, command = model.searchInput.Update(message)
	return model, command
}

func (model *Model) search(value string) {
	seat, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seat < 1 || seat > model.seats() {
		model.searchResult = fmt.Sprintf("Enter a valid seat number (1–%d).", model.seats())
		model.searchIsError = true
		return
	}

	status, err := model.service.Lookup(model.ctx, seat)
	if err != nil {
		model.searchResult = "Search failed: " + err.Error()
		model.searchIsError = true
		return
	}

	model.searchIsError = false
	model.cursor = seat - 1

	if !status.Occupied {
		model.searchResult = fmt.Sprintf("Seat %d is FREE", seat)
		return
	}

	b := status.Booking
	model.searchResult = fmt.Sprintf("Seat %d is OCCUPIED\n%s, %s\nEntry: %s\nLeft: %dm",
		seat, b.Name, b.Mobile, b.EntryTime.Format("15:04"), status.MinutesLeft)
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Yes):
		if model.mode == modeConfirmReleaseAll {
			model.releaseAll()
		} else {
			model.releaseSeat()
		}
		model.mode = modeGrid
		model.reload()

	case key.Matches(message, model.keys.No):
		model.mode = modeGrid
	}

	return model, nil
}

func (model *Model) releaseSeat() {
	if model.cursor >= len(model.grid) {
		return
	}
	seat := model.grid[model.cursor].Seat

	_, err := model.service.Release(model.ctx, seat)
	switch {
	case errors.Is(err, seats.ErrSeatFree):
		model.setInfo(fmt.Sprintf("Seat %d is already free.", seat))
	case err != nil:
		model.setError(fmt.Sprintf("Reset of seat %d failed: %v", seat, err))
	default:
		model.setInfo(fmt.Sprintf("Seat %d reset.", seat))
	}
}

func (model *Model) releaseAll() {
	if _, err := model.service.ReleaseAll(model.ctx); err != nil {
		model.setError("Reset failed: " + err.Error())
		return
	}
	model.setInfo("All seats reset successfully!")
}

func (model *Model) reload() {
	grid, err := model.service.Grid(model.ctx)
	if err != nil {
		model.setError("Cannot load seats: " + err.Error())
		return
	}

	active, err := model.service.Active(model.ctx)
	if err != nil {
		model.setError("Cannot load bookings: " + err.Error())
		return
	}

	model.grid = grid
	model.active = active
	if model.cursor >= len(model.grid) {
		model.cursor = 0
	}
}

func (model *Model) setInfo(text string) {
	model.status = text
	model.statusIsError = false
}

func (model *Model) setError(text string) {
	model.status = text
	model.statusIsError = true
}

func (model Model) seats() int {
	return model.rows * model.cols
}

// View implements tea.Model.
func (model Model) View() string {
	var view strings.Builder

	view.WriteString(model.theme.Title.Render("Library Seat Booking"))
	view.WriteString("  ")
	view.WriteString(model.legend())
	view.WriteString("\n\n")
	view.WriteString(model.renderGrid())
	view.WriteString("\n\n")

	switch model.mode {
	case modeBookForm:
		view.WriteString(model.renderForm())
	case modeSearch:
		view.WriteString(model.renderSearch())
	case modeConfirmRelease:
		seat := model.grid[model.cursor].Seat
		view.WriteString(model.theme.Dialog.Render(fmt.Sprintf("Seat %d is occupied. Reset it? (y/n)", seat)))
	case modeConfirmReleaseAll:
		view.WriteString(model.theme.Dialog.Render("Are you sure to reset ALL seats? (y/n)"))
	default:
		view.WriteString(model.renderBookings())
	}
	view.WriteString("\n\n")

	if model.status != "" {
		style := model.theme.Info
		if model.statusIsError {
			style = model.theme.Error
		}
		view.WriteString(style.Render(model.status))
		view.WriteString("\n")
	}

	view.WriteString(model.theme.Help.Render(model.help()))
	view.WriteString("\n")

	return view.String()
}

func (model Model) legend() string {
	free := model.theme.FreeSeat.UnsetBorderStyle().UnsetWidth().UnsetHeight().Render(" Free ")
	taken := model.theme.TakenSeat.UnsetBorderStyle().UnsetWidth().UnsetHeight().Render(" Occupied ")
	return free + " " + taken
}

func (model Model) help() string {
	keys := model.keys
	switch model.mode {
	case modeBookForm:
		return helpLine(keys.NextField, keys.PrevField, keys.Submit, keys.Back)
	case modeSearch:
		return helpLine(keys.Submit, keys.Back)
	case modeConfirmRelease, modeConfirmReleaseAll:
		return helpLine(keys.Yes, keys.No)
	default:
		return helpLine(keys.Up, keys.Down, keys.Left, keys.Right, keys.Select, keys.Search, keys.ResetAll, keys.Quit)
	}
}

func (model Model) renderGrid() string {
	rows := make([]string, 0, model.rows)
	for start := 0; start < len(model.grid); start += model.cols {
		end := min(start+model.cols, len(model.grid))
		cells := make([]string, 0, model.cols)
		for index := start; index < end; index++ {
			cells = append(cells, model.renderCell(index))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (model Model) renderCell(index int) string {
	seat := model.grid[index]
	lines := []string{strconv.Itoa(seat.Seat), "", ""}

	style := model.theme.FreeSeat
	if seat.Occupied {
		style = model.theme.TakenSeat
		lines[1] = ansi.Truncate(seat.Booking.Name, cellWidth-2, "…")
		lines[2] = fmt.Sprintf("%dm left", seat.MinutesLeft)
	}

	if index == model.cursor && model.mode != modeSearch {
		style = style.BorderForeground(model.theme.Cursor).BorderStyle(lipgloss.ThickBorder())
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (model Model) renderForm() string {
	var form strings.Builder

	form.WriteString(model.theme.TableHead.Render(fmt.Sprintf("Booking Seat %d", model.formSeat)))
	form.WriteString("\n")

	for i, label := range fieldLabels {
		labelStyle := model.theme.Label
		if i == model.focus {
			labelStyle = model.theme.FocusLabel
		}
		form.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", label)))
		form.WriteString(" ")
		form.WriteString(model.inputs[i].View())
		form.WriteString("\n")
	}

	if model.formError != "" {
		form.WriteString(model.theme.Error.Render(model.formError))
		form.WriteString("\n")
	}

	return model.theme.Dialog.Render(strings.TrimRight(form.String(), "\n"))
}

func (model Model) renderSearch() string {
	var search strings.Builder

	search.WriteString(model.theme.TableHead.Render(fmt.Sprintf("Enter Seat Number (1–%d):", model.seats())))
	search.WriteString(" ")
	search.WriteString(model.searchInput.View())

	if model.searchResult != "" {
		style := model.theme.Label
		if model.searchIsError {
			style = model.theme.Error
		}
		search.WriteString("\n")
		search.WriteString(style.Render(model.searchResult))
	}

	return model.theme.Dialog.Render(search.String())
}

func (model Model) renderBookings() string {
	var table strings.Builder

	table.WriteString(model.theme.TableHead.Render("Current Active Bookings"))
	table.WriteString("\n")

	if len(model.active) == 0 {
		table.WriteString("No active bookings.")
		return table.String()
	}

	now := model.service.Now()
	table.WriteString(fmt.Sprintf("%-6s%-15s%-15s%-10s%-10s\n", "Seat", "Name", "Mobile", "Entry", "Left"))
	table.WriteString(strings.Repeat("-", 56))
	for _, b := range model.active {
		table.WriteString("\n")
		table.WriteString(fmt.Sprintf("%-6d%-15s%-15s%-10s%dm",
			b.Seat,
			ansi.Truncate(b.Name, 14, "…"),
			ansi.Truncate(b.Mobile, 14, "…"),
			b.EntryTime.Format("15:04"),
			b.MinutesLeft(now),
		))
	}

	return table.String()
}
