package tui

import (
	"fmt"
	"strings"

	"github.com/arcmail/arctui/internal/selection"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// newConfirmModal builds the confirmation dialog for a staged action. Only
// Confirm dispatches; Cancel and Escape drop the staging and leave the
// ambient selection untouched.
func newConfirmModal(action selection.Action, count int, detail string, onConfirm, onCancel func()) *tview.Modal {
	var verb string
	switch action {
	case selection.ActionDelete:
		verb = "Permanently delete"
	case selection.ActionRestore:
		verb = "Restore"
	default:
		verb = "Update tags on"
	}

	text := fmt.Sprintf("%s %d message(s)?", verb, count)
	if detail != "" {
		text += "\n" + detail
	}
	if action == selection.ActionDelete {
		text += "\nThis cannot be undone."
	}

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Confirm", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			if label == "Confirm" {
				onConfirm()
				return
			}
			onCancel()
		})
	modal.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape {
			onCancel()
			return nil
		}
		return ev
	})
	return modal
}

// newTagEditor builds the tag dialog: a free-form input whose entries are
// normalized and merged into the pending list, plus Apply/Cancel.
func newTagEditor(app *App, count int, onAdd func(tag string), pending func() []string, onApply, onCancel func()) *tview.Flex {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" Tag %d message(s) ", count))

	var input *tview.InputField
	var listView *tview.TextView

	refresh := func() {
		tags := pending()
		if len(tags) == 0 {
			listView.SetText("[gray]no tags yet[-]")
			return
		}
		listView.SetText(strings.Join(tags, ", "))
	}

	addCurrent := func() {
		raw := input.GetText()
		if strings.TrimSpace(raw) == "" {
			return
		}
		tag, err := app.tagService.NormalizeTag(raw)
		if err != nil {
			app.errorHandler.ShowWarning(app.ctx, err.Error())
			return
		}
		onAdd(tag)
		go func() { _ = app.historyService.TouchTag(app.ctx, tag) }()
		input.SetText("")
		refresh()
	}

	input = tview.NewInputField().
		SetLabel("Tag path ").
		SetFieldWidth(40)
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			addCurrent()
		}
	})

	// Completions: recently used tags first, then the server's tag facets.
	var known []string
	go func() {
		recent, _ := app.historyService.RecentTags(app.ctx, 10)
		seen := map[string]bool{}
		merged := make([]string, 0, len(recent))
		for _, t := range recent {
			if !seen[t] {
				seen[t] = true
				merged = append(merged, t)
			}
		}
		if facets, err := app.tagService.ListTags(app.ctx); err == nil {
			for _, f := range facets {
				if !seen[f.Tag] {
					seen[f.Tag] = true
					merged = append(merged, f.Tag)
				}
			}
		}
		app.QueueUpdateDraw(func() {
			known = merged
		})
	}()
	input.SetAutocompleteFunc(func(current string) []string {
		if current == "" {
			return nil
		}
		var out []string
		for _, t := range known {
			if strings.HasPrefix(t, current) {
				out = append(out, t)
			}
		}
		return out
	})

	listView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)

	form.AddFormItem(input)
	form.AddButton("Apply", onApply)
	form.AddButton("Cancel", onCancel)
	form.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape {
			onCancel()
			return nil
		}
		return ev
	})

	refresh()

	inner := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 9, 0, true).
		AddItem(listView, 2, 0, false)

	// Center the dialog the way tview modals do.
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(inner, 12, 0, true).
			AddItem(nil, 0, 1, false), 60, 0, true).
		AddItem(nil, 0, 1, false)
}
