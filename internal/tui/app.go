package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/arcmail/arctui/internal/config"
	"github.com/arcmail/arctui/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Page names for the root Pages primitive.
const (
	pageMailbox = "mailbox"
	pageSearch  = "search"
	pageConfirm = "confirm"
	pageTags    = "tags"
)

// App encapsulates the terminal UI and the archive services.
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config
	Keys   config.KeyBindings

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex

	// Services
	messageService services.MessageService
	tagService     services.TagService
	accountService services.AccountService
	historyService services.HistoryService

	// Views. Each view owns its selection containers and its coordinator;
	// a dispatch in flight in one view never blocks edits in the other.
	mailbox *MailboxView
	search  *SearchView

	statusView   *tview.TextView
	errorHandler *ErrorHandler
	theme        *config.Theme
	accounts     map[int64]archive.Account

	logger  *log.Logger
	logFile *os.File
}

// NewApp creates the application with its views wired but no data loaded.
func NewApp(cfg *config.Config, theme *config.Theme, messageService services.MessageService, tagService services.TagService, accountService services.AccountService, historyService services.HistoryService, logger *log.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	if theme == nil {
		theme = config.DefaultTheme()
	}

	a := &App{
		Application:    tview.NewApplication(),
		Pages:          tview.NewPages(),
		Config:         cfg,
		Keys:           cfg.Keys,
		ctx:            ctx,
		cancel:         cancel,
		messageService: messageService,
		tagService:     tagService,
		accountService: accountService,
		historyService: historyService,
		theme:          theme,
		logger:         logger,
		accounts:       map[int64]archive.Account{},
	}

	a.statusView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	a.errorHandler = NewErrorHandler(a.Application, a.statusView, logger)

	a.mailbox = newMailboxView(a)
	a.search = newSearchView(a)

	a.Pages.AddPage(pageMailbox, a.mailbox.root(), true, true)
	a.Pages.AddPage(pageSearch, a.search.root(), true, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.Pages, 0, 1, true).
		AddItem(a.statusView, 1, 0, false)

	a.SetRoot(root, true)
	return a
}

// GetErrorHandler returns the status-line error handler.
func (a *App) GetErrorHandler() *ErrorHandler {
	return a.errorHandler
}

// Run starts the UI and kicks off the initial data load.
func (a *App) Run() error {
	go a.bootstrap()
	defer a.cancel()
	defer a.closeLog()
	return a.Application.Run()
}

// SetLogFile attaches the debug log file so it is closed on exit.
func (a *App) SetLogFile(f *os.File) {
	a.logFile = f
}

func (a *App) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// bootstrap resolves the initial account and mailbox, then loads page one.
func (a *App) bootstrap() {
	accounts, err := a.accountService.ListAccounts(a.ctx)
	if err != nil {
		a.errorHandler.HandleError(a.ctx, err, "Could not load accounts")
		return
	}
	if len(accounts) == 0 {
		a.errorHandler.ShowWarning(a.ctx, "No accounts in the archive yet")
		return
	}

	a.mu.Lock()
	for _, acct := range accounts {
		a.accounts[acct.ID] = acct
	}
	a.mu.Unlock()

	account := accounts[0]

	mailboxes, err := a.accountService.ListMailboxes(a.ctx, account.ID)
	if err != nil {
		a.errorHandler.HandleError(a.ctx, err, "Could not load mailboxes")
		return
	}
	if len(mailboxes) == 0 {
		a.errorHandler.ShowWarning(a.ctx, fmt.Sprintf("Account %s has no mailboxes", account.Email))
		return
	}

	// View state is owned by the UI goroutine.
	a.QueueUpdateDraw(func() {
		a.mailbox.attach(account, mailboxes[0])
		a.mailbox.load(1)
	})
}

// switchView flips between the mailbox page and the search page.
func (a *App) switchView() {
	front, _ := a.Pages.GetFrontPage()
	if front == pageMailbox {
		a.Pages.SwitchToPage(pageSearch)
		a.SetFocus(a.search.table)
		a.search.updateBaseline()
		return
	}
	a.Pages.SwitchToPage(pageMailbox)
	a.SetFocus(a.mailbox.table)
	a.mailbox.updateBaseline()
}

// closeDialog removes any open modal page.
func (a *App) closeDialog() {
	if a.Pages.HasPage(pageConfirm) {
		a.Pages.RemovePage(pageConfirm)
	}
	if a.Pages.HasPage(pageTags) {
		a.Pages.RemovePage(pageTags)
	}
}

// accountEmail resolves an account id to its email for display, falling back
// to the raw id for accounts that joined the archive after startup.
func (a *App) accountEmail(id int64) string {
	a.mu.RLock()
	acct, ok := a.accounts[id]
	a.mu.RUnlock()
	if !ok {
		return fmt.Sprintf("account %d", id)
	}
	return acct.Email
}

// color resolves a theme color name to a tcell color.
func (a *App) color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}

// handleGlobalKey processes keys shared by both list views. It returns nil
// when the event was consumed.
func (a *App) handleGlobalKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() != tcell.KeyRune {
		return ev
	}
	switch string(ev.Rune()) {
	case a.Keys.Quit:
		a.Stop()
		return nil
	case a.Keys.SwitchView:
		a.switchView()
		return nil
	}
	return ev
}
