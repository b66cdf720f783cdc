package tui

import (
	"fmt"
	"strings"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/arcmail/arctui/internal/render"
	"github.com/arcmail/arctui/internal/selection"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// SearchView lists cross-account search results. Selection here is
// composite: results from different accounts can share a message id, so
// every selected row is tracked by its (account, id) pair.
type SearchView struct {
	app   *App
	flex  *tview.Flex
	input *tview.InputField
	table *tview.Table

	sel   *selection.CompositeSet
	coord *selection.Coordinator
	page  *archive.EnvelopePage
	query string

	history     []string
	pendingTags []string
	loading     bool
}

func newSearchView(app *App) *SearchView {
	v := &SearchView{
		app:   app,
		sel:   selection.NewCompositeSet(),
		coord: selection.NewCoordinator(),
	}

	v.input = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldBackgroundColor(tcell.ColorDefault)
	v.input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			v.runSearch(strings.TrimSpace(v.input.GetText()))
		case tcell.KeyEscape:
			app.SetFocus(v.table)
		}
	})
	v.input.SetAutocompleteFunc(func(current string) []string {
		if current == "" {
			return nil
		}
		var out []string
		for _, h := range v.history {
			if strings.HasPrefix(h, current) {
				out = append(out, h)
			}
		}
		return out
	})

	v.table = tview.NewTable()
	v.table.SetSelectable(true, false)
	v.table.SetFixed(1, 0)
	v.table.SetBorder(true)
	v.table.SetTitle(" Search Results ")
	v.table.SetSelectedStyle(tcell.StyleDefault.
		Background(app.color(app.theme.RowSelected)).
		Foreground(tcell.ColorBlack))
	v.table.SetInputCapture(v.handleKey)

	v.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.input, 1, 0, false).
		AddItem(v.table, 0, 1, true)

	v.refreshHistory()
	return v
}

func (v *SearchView) root() tview.Primitive {
	return v.flex
}

func (v *SearchView) refreshHistory() {
	go func() {
		history, err := v.app.historyService.SearchHistory(v.app.ctx, 20)
		if err != nil {
			return
		}
		v.app.QueueUpdateDraw(func() {
			v.history = history
		})
	}()
}

// runSearch starts a new query on page one. The previous selection survives
// across result pages but not across a new query.
func (v *SearchView) runSearch(query string) {
	if query == "" {
		return
	}
	v.query = query
	v.sel = selection.NewCompositeSet()
	v.load(1)

	go func() {
		if err := v.app.historyService.SaveSearch(v.app.ctx, query); err == nil {
			v.refreshHistory()
		}
	}()
	v.app.SetFocus(v.table)
}

// load fetches one result page. Must be called on the UI goroutine; the
// fetch runs in the background and re-enters through QueueUpdateDraw.
func (v *SearchView) load(page int64) {
	if v.loading || v.query == "" {
		return
	}
	v.loading = true
	v.app.errorHandler.ShowProgress(v.app.ctx, "Searching…")

	// Snapshot for the goroutine; view fields belong to the UI goroutine.
	filter := archive.SearchFilter{Text: v.query}
	go func() {
		result, err := v.app.messageService.SearchMessages(v.app.ctx, filter, page, v.app.Config.PageSize)

		v.app.QueueUpdateDraw(func() {
			v.loading = false
			if err == nil {
				v.page = result
				v.render()
				v.updateBaseline()
			}
		})

		v.app.errorHandler.ClearProgress()
		if err != nil {
			v.app.errorHandler.HandleError(v.app.ctx, err, "Search failed")
		}
	}()
}

// visibleKeys returns the composite keys of the rendered result page.
func (v *SearchView) visibleKeys() []selection.Key {
	if v.page == nil {
		return nil
	}
	keys := make([]selection.Key, 0, len(v.page.Items))
	for _, e := range v.page.Items {
		keys = append(keys, selection.Key{AccountID: e.AccountID, MessageID: e.ID})
	}
	return keys
}

func (v *SearchView) render() {
	row, _ := v.table.GetSelection()
	v.table.Clear()

	visible := v.visibleKeys()
	header := v.sel.HeaderState(len(visible))

	// Escape keeps checkbox glyphs and untrusted subjects from being eaten
	// as tview color tags.
	headers := []string{header.Symbol(), "Account", "From", "Subject", "Date", "Tags"}
	for col, h := range headers {
		cell := tview.NewTableCell(tview.Escape(h)).
			SetTextColor(v.app.color(v.app.theme.Header)).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		if col == 3 {
			cell.SetExpansion(1)
		}
		v.table.SetCell(0, col, cell)
	}

	if v.page == nil {
		return
	}
	for i, e := range v.page.Items {
		k := selection.Key{AccountID: e.AccountID, MessageID: e.ID}
		v.setResultRow(i+1, e, v.sel.Contains(k))
	}

	if row > v.table.GetRowCount()-1 {
		row = v.table.GetRowCount() - 1
	}
	if row < 1 {
		row = 1
	}
	if v.table.GetRowCount() > 1 {
		v.table.Select(row, 0)
	}

	v.table.SetTitle(fmt.Sprintf(" Results: %q ", v.query))
}

func (v *SearchView) setResultRow(row int, e archive.Envelope, selected bool) {
	check := selection.Unchecked
	if selected {
		check = selection.Checked
	}
	color := tcell.ColorDefault
	if selected {
		color = v.app.color(v.app.theme.Selection)
	}

	cells := []string{
		check.Symbol(),
		render.FitWidth(v.app.accountEmail(e.AccountID), 22),
		render.FitWidth(e.From, 24),
		e.Subject,
		render.FormatDate(e.Date),
		render.FormatTags(e.Tags),
	}
	for col, text := range cells {
		cell := tview.NewTableCell(tview.Escape(text)).SetTextColor(color)
		if col == 3 {
			cell.SetExpansion(1)
		}
		v.table.SetCell(row, col, cell)
	}
}

func (v *SearchView) currentKey() (selection.Key, bool) {
	if v.page == nil {
		return selection.Key{}, false
	}
	row, _ := v.table.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(v.page.Items) {
		return selection.Key{}, false
	}
	e := v.page.Items[idx]
	return selection.Key{AccountID: e.AccountID, MessageID: e.ID}, true
}

func (v *SearchView) updateBaseline() {
	var pageInfo string
	if v.page != nil {
		pageInfo = fmt.Sprintf("page %d/%d · %d hits", v.page.CurrentPage, v.page.TotalPages, v.page.TotalItems)
	}
	v.app.errorHandler.SetBaseline(fmt.Sprintf("search · %s · %d selected across %d account(s)",
		pageInfo, v.sel.Count(), len(v.sel.Accounts())))
}

func (v *SearchView) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev = v.app.handleGlobalKey(ev); ev == nil {
		return nil
	}
	if ev.Key() != tcell.KeyRune {
		return ev
	}

	keys := v.app.Keys
	switch string(ev.Rune()) {
	case keys.Search:
		v.app.SetFocus(v.input)
		return nil
	case keys.ToggleSelect:
		if k, ok := v.currentKey(); ok {
			v.sel = v.sel.Toggle(k)
			v.render()
			v.updateBaseline()
		}
		return nil
	case keys.SelectAll:
		v.sel = v.sel.ToggleAll(v.visibleKeys())
		v.render()
		v.updateBaseline()
		return nil
	case keys.ClearSelection:
		v.sel = selection.NewCompositeSet()
		v.render()
		v.updateBaseline()
		return nil
	case keys.Delete:
		v.stageAndConfirm(selection.ActionDelete)
		return nil
	case keys.Restore:
		v.app.errorHandler.ShowWarning(v.app.ctx, "Restore runs from the mailbox view, one account at a time")
		return nil
	case keys.Tag:
		v.openTagEditor()
		return nil
	case keys.Refresh:
		if v.page != nil {
			v.load(v.page.CurrentPage)
		}
		return nil
	case keys.NextPage:
		if v.page != nil && v.page.CurrentPage < v.page.TotalPages {
			v.load(v.page.CurrentPage + 1)
		}
		return nil
	case keys.PrevPage:
		if v.page != nil && v.page.CurrentPage > 1 {
			v.load(v.page.CurrentPage - 1)
		}
		return nil
	}
	return ev
}

func (v *SearchView) stage(action selection.Action) error {
	if v.sel.IsEmpty() {
		k, ok := v.currentKey()
		if !ok {
			return selection.ErrNothingStaged
		}
		return v.coord.StageSingle(action, k)
	}
	return v.coord.StageBulk(action, v.sel)
}

func (v *SearchView) stageAndConfirm(action selection.Action) {
	if err := v.stage(action); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}
	if err := v.coord.OpenConfirm(); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}

	staged := v.coord.Staging()
	detail := ""
	if n := len(staged.Accounts()); n > 1 {
		detail = fmt.Sprintf("across %d accounts", n)
	}
	modal := newConfirmModal(action, staged.Count(), detail,
		func() { v.dispatch() },
		func() { v.cancelDialog() })
	v.app.Pages.AddPage(pageConfirm, modal, true, true)
	v.app.SetFocus(modal)
}

func (v *SearchView) cancelDialog() {
	if err := v.coord.Cancel(); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, "Action still running, cannot cancel")
		return
	}
	v.pendingTags = nil
	v.app.closeDialog()
	v.app.SetFocus(v.table)
}

func (v *SearchView) openTagEditor() {
	if err := v.stage(selection.ActionTagUpdate); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}
	if err := v.coord.OpenConfirm(); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}
	v.pendingTags = nil

	form := newTagEditor(v.app, v.coord.Staging().Count(),
		func(tag string) {
			merged, _ := v.app.tagService.MergeTag(v.pendingTags, tag)
			v.pendingTags = merged
		},
		func() []string { return v.pendingTags },
		func() {
			if len(v.pendingTags) == 0 {
				v.app.errorHandler.ShowWarning(v.app.ctx, "Add at least one tag")
				return
			}
			v.dispatch()
		},
		func() { v.cancelDialog() })
	v.app.Pages.AddPage(pageTags, form, true, true)
	v.app.SetFocus(form)
}

func (v *SearchView) dispatch() {
	action, staged, err := v.coord.Begin()
	if err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}

	// Snapshot on the UI goroutine: the tag editor stays open on failure, so
	// later edits must not leak into the request that was confirmed.
	tags := v.pendingTags

	v.app.errorHandler.ShowProgress(v.app.ctx, fmt.Sprintf("Running %s…", action))

	go func() {
		callErr := v.execute(action, staged, tags)
		v.app.errorHandler.ClearProgress()

		v.app.QueueUpdateDraw(func() {
			drained := v.coord.Finish(callErr)
			if drained == nil {
				return
			}
			v.sel = v.sel.Subtract(drained)
			v.pendingTags = nil
			v.app.closeDialog()
			v.app.SetFocus(v.table)

			if v.page != nil {
				v.load(v.page.CurrentPage)
			}
		})

		if callErr != nil {
			v.app.errorHandler.ShowError(v.app.ctx, callErr.Error())
			return
		}
		v.app.errorHandler.ShowSuccess(v.app.ctx, fmt.Sprintf("%s applied to %d message(s)", action, staged.Count()))
	}()
}

// execute issues the outbound call. It runs on the dispatch goroutine and
// touches only its arguments: staged is immutable and tags is the snapshot
// taken when the dispatch began.
func (v *SearchView) execute(action selection.Action, staged *selection.CompositeSet, tags []string) error {
	switch action {
	case selection.ActionDelete:
		return v.app.messageService.DeleteMessages(v.app.ctx, archive.BulkActionRequest(staged.Grouped()))
	case selection.ActionTagUpdate:
		return v.app.tagService.UpdateTags(v.app.ctx, archive.BulkActionRequest(staged.Grouped()), tags)
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
