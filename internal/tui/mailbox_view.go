package tui

import (
	"fmt"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/arcmail/arctui/internal/render"
	"github.com/arcmail/arctui/internal/selection"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// MailboxView lists one mailbox of one account, page by page. Selection here
// is single-scope: the account is fixed, so only message ids are tracked.
type MailboxView struct {
	app   *App
	table *tview.Table
	flex  *tview.Flex

	account archive.Account
	mailbox archive.Mailbox

	sel   *selection.Set
	coord *selection.Coordinator
	page  *archive.EnvelopePage

	pendingTags []string
	loading     bool
}

func newMailboxView(app *App) *MailboxView {
	v := &MailboxView{
		app:   app,
		table: tview.NewTable(),
		sel:   selection.NewSet(),
		coord: selection.NewCoordinator(),
	}

	v.table.SetSelectable(true, false)
	v.table.SetFixed(1, 0)
	v.table.SetBorder(true)
	v.table.SetTitle(" Mailbox ")
	v.table.SetSelectedStyle(tcell.StyleDefault.
		Background(app.color(app.theme.RowSelected)).
		Foreground(tcell.ColorBlack))
	v.table.SetInputCapture(v.handleKey)

	v.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true)
	return v
}

func (v *MailboxView) root() tview.Primitive {
	return v.flex
}

// attach binds the view to an account and mailbox without loading data.
func (v *MailboxView) attach(account archive.Account, mailbox archive.Mailbox) {
	v.account = account
	v.mailbox = mailbox
	v.sel = selection.NewSet()
	v.coord = selection.NewCoordinator()
}

// load fetches one page and re-renders. Must be called on the UI goroutine;
// the fetch runs in the background and re-enters through QueueUpdateDraw.
func (v *MailboxView) load(page int64) {
	if v.loading {
		return
	}
	v.loading = true
	v.app.errorHandler.ShowProgress(v.app.ctx, "Loading messages…")

	// Snapshot for the goroutine; view fields belong to the UI goroutine.
	account, mailbox := v.account, v.mailbox
	go func() {
		result, err := v.app.messageService.ListMessages(
			v.app.ctx, account.ID, mailbox.ID, page, v.app.Config.PageSize)

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
			v.app.errorHandler.HandleError(v.app.ctx, err, fmt.Sprintf("Could not load %s", mailbox.Name))
		}
	}()
}

// visibleIDs returns the envelope ids of the currently rendered page.
func (v *MailboxView) visibleIDs() []int64 {
	if v.page == nil {
		return nil
	}
	ids := make([]int64, 0, len(v.page.Items))
	for _, e := range v.page.Items {
		ids = append(ids, e.ID)
	}
	return ids
}

// render redraws the table from the current page and selection. Must run on
// the UI goroutine.
func (v *MailboxView) render() {
	row, _ := v.table.GetSelection()
	v.table.Clear()

	visible := v.visibleIDs()
	header := v.sel.HeaderState(len(visible))

	// Escape keeps checkbox glyphs and untrusted subjects from being eaten
	// as tview color tags.
	headers := []string{header.Symbol(), "From", "Subject", "Date", "Size", "Tags"}
	for col, h := range headers {
		cell := tview.NewTableCell(tview.Escape(h)).
			SetTextColor(v.app.color(v.app.theme.Header)).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		if col == 2 {
			cell.SetExpansion(1)
		}
		v.table.SetCell(0, col, cell)
	}

	if v.page == nil {
		return
	}
	for i, e := range v.page.Items {
		v.setEnvelopeRow(i+1, e, v.sel.Contains(e.ID))
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

	v.table.SetTitle(fmt.Sprintf(" %s — %s ", v.account.Email, v.mailbox.Name))
}

func (v *MailboxView) setEnvelopeRow(row int, e archive.Envelope, selected bool) {
	check := selection.Unchecked
	if selected {
		check = selection.Checked
	}
	color := tcell.ColorDefault
	if selected {
		color = v.app.color(v.app.theme.Selection)
	}

	subject := e.Subject
	if e.HasAttachment {
		subject = "📎 " + subject
	}

	cells := []string{
		check.Symbol(),
		render.FitWidth(e.From, 28),
		subject,
		render.FormatDate(e.Date),
		render.RightFit(render.FormatSize(e.Size), 9),
		render.FormatTags(e.Tags),
	}
	for col, text := range cells {
		cell := tview.NewTableCell(tview.Escape(text)).SetTextColor(color)
		if col == 2 {
			cell.SetExpansion(1)
		}
		v.table.SetCell(row, col, cell)
	}
}

// currentEnvelope returns the envelope under the cursor, if any.
func (v *MailboxView) currentEnvelope() (archive.Envelope, bool) {
	if v.page == nil {
		return archive.Envelope{}, false
	}
	row, _ := v.table.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(v.page.Items) {
		return archive.Envelope{}, false
	}
	return v.page.Items[idx], true
}

func (v *MailboxView) updateBaseline() {
	var pageInfo string
	if v.page != nil {
		pageInfo = fmt.Sprintf("page %d/%d · %d messages", v.page.CurrentPage, v.page.TotalPages, v.page.TotalItems)
	}
	v.app.errorHandler.SetBaseline(fmt.Sprintf("%s · %s · %d selected", v.mailbox.Name, pageInfo, v.sel.Count()))
}

func (v *MailboxView) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev = v.app.handleGlobalKey(ev); ev == nil {
		return nil
	}
	if ev.Key() != tcell.KeyRune {
		return ev
	}

	keys := v.app.Keys
	switch string(ev.Rune()) {
	case keys.ToggleSelect:
		if e, ok := v.currentEnvelope(); ok {
			v.sel = v.sel.Toggle(e.ID)
			v.render()
			v.updateBaseline()
		}
		return nil
	case keys.SelectAll:
		v.sel = v.sel.ToggleAll(v.visibleIDs())
		v.render()
		v.updateBaseline()
		return nil
	case keys.ClearSelection:
		v.sel = selection.NewSet()
		v.render()
		v.updateBaseline()
		return nil
	case keys.Delete:
		v.stageAndConfirm(selection.ActionDelete)
		return nil
	case keys.Restore:
		v.stageAndConfirm(selection.ActionRestore)
		return nil
	case keys.Tag:
		v.openTagEditor()
		return nil
	case keys.Refresh:
		page := int64(1)
		if v.page != nil {
			page = v.page.CurrentPage
		}
		v.load(page)
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

// stage puts either the live selection or, when nothing is selected, the row
// under the cursor into the coordinator. Staging the cursor row goes through
// StageSingle so an unrelated multi-select elsewhere is never disturbed.
func (v *MailboxView) stage(action selection.Action) error {
	if v.sel.IsEmpty() {
		e, ok := v.currentEnvelope()
		if !ok {
			return selection.ErrNothingStaged
		}
		return v.coord.StageSingle(action, selection.Key{AccountID: v.account.ID, MessageID: e.ID})
	}
	return v.coord.StageBulk(action, selection.FromIDs(v.account.ID, v.sel.IDs()))
}

func (v *MailboxView) stageAndConfirm(action selection.Action) {
	if err := v.stage(action); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}
	if err := v.coord.OpenConfirm(); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, stageErrorText(err))
		return
	}
	v.showConfirm(action, v.coord.Staging().Count())
}

func (v *MailboxView) showConfirm(action selection.Action, count int) {
	modal := newConfirmModal(action, count, "",
		func() { v.dispatch() },
		func() { v.cancelDialog() })
	v.app.Pages.AddPage(pageConfirm, modal, true, true)
	v.app.SetFocus(modal)
}

func (v *MailboxView) cancelDialog() {
	if err := v.coord.Cancel(); err != nil {
		v.app.errorHandler.ShowWarning(v.app.ctx, "Action still running, cannot cancel")
		return
	}
	v.pendingTags = nil
	v.app.closeDialog()
	v.app.SetFocus(v.table)
}

func (v *MailboxView) openTagEditor() {
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

// dispatch runs the staged action through the coordinator: exactly one
// outbound call, then success drains staging and the ambient selection while
// failure keeps both for retry with the dialog still open.
func (v *MailboxView) dispatch() {
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
			v.sel = v.sel.Subtract(drained.IDs(v.account.ID))
			v.pendingTags = nil
			v.app.closeDialog()
			v.app.SetFocus(v.table)

			page := int64(1)
			if v.page != nil {
				page = v.page.CurrentPage
			}
			v.load(page)
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
func (v *MailboxView) execute(action selection.Action, staged *selection.CompositeSet, tags []string) error {
	switch action {
	case selection.ActionDelete:
		return v.app.messageService.DeleteMessages(v.app.ctx, archive.BulkActionRequest(staged.Grouped()))
	case selection.ActionTagUpdate:
		return v.app.tagService.UpdateTags(v.app.ctx, archive.BulkActionRequest(staged.Grouped()), tags)
	case selection.ActionRestore:
		accountID := staged.Accounts()[0]
		return v.app.messageService.RestoreMessages(v.app.ctx, accountID, staged.IDs(accountID))
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

func stageErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case err == selection.ErrNothingStaged:
		return "No messages selected"
	case err == selection.ErrDispatchInFlight:
		return "An action is already running"
	default:
		return err.Error()
	}
}
