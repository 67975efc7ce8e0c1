// Command ui is a Gio desktop client for the todo API.
package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"todod/internal/client"
	"todod/pkg/todo"
)

var theme *material.Theme

type UI struct {
	api *client.Client

	mu     sync.Mutex
	todos  []todo.Todo
	status client.Status

	list       widget.List
	editor     widget.Editor
	addBtn     widget.Clickable
	refreshBtn widget.Clickable
	toggleBtn  []widget.Clickable
	deleteBtn  []widget.Clickable
}

func main() {
	base := os.Getenv("TODO_SERVER")
	if base == "" {
		base = "http://localhost:8080"
	}

	theme = material.NewTheme()
	theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	theme.Palette.Bg = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	theme.Palette.Fg = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	theme.Palette.ContrastBg = color.NRGBA{R: 0x30, G: 0x60, B: 0xA0, A: 0xFF}
	theme.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	ui := &UI{api: client.New(base)}
	ui.list.Axis = layout.Vertical
	ui.editor.SingleLine = true

	go ui.pollData()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("todod"))
		w.Option(app.Size(unit.Dp(480), unit.Dp(640)))
		if err := ui.run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func (ui *UI) run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.handleClicks(gtx)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *UI) handleClicks(gtx layout.Context) {
	if ui.addBtn.Clicked(gtx) {
		title := strings.TrimSpace(ui.editor.Text())
		if title != "" {
			go ui.create(title)
			ui.editor.SetText("")
		}
	}
	if ui.refreshBtn.Clicked(gtx) {
		go ui.fetchAll()
	}

	ui.mu.Lock()
	todos := ui.todos
	ui.mu.Unlock()
	for i := range ui.toggleBtn {
		if i < len(todos) && ui.toggleBtn[i].Clicked(gtx) {
			go ui.toggle(todos[i].ID)
		}
	}
	for i := range ui.deleteBtn {
		if i < len(todos) && ui.deleteBtn[i].Clicked(gtx) {
			go ui.delete(todos[i].ID)
		}
	}
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	ui.mu.Lock()
	todos := ui.todos
	status := ui.status
	ui.mu.Unlock()

	// Keep button slices in step with the data.
	for len(ui.toggleBtn) < len(todos) {
		ui.toggleBtn = append(ui.toggleBtn, widget.Clickable{})
		ui.deleteBtn = append(ui.deleteBtn, widget.Clickable{})
	}

	return layout.Inset{Top: unit.Dp(16), Right: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.H5(theme, "Todos").Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Caption(theme, statusLine(status))
				label.Color = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
				return label.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						ed := material.Editor(theme, &ui.editor, "What needs doing?")
						return ed.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.addBtn, "Add").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.refreshBtn, "Refresh").Layout(gtx)
					}),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return material.List(theme, &ui.list).Layout(gtx, len(todos), func(gtx layout.Context, i int) layout.Dimensions {
					return ui.layoutRow(gtx, todos[i], i)
				})
			}),
		)
	})
}

func (ui *UI) layoutRow(gtx layout.Context, t todo.Todo, i int) layout.Dimensions {
	titleColor := theme.Palette.Fg
	doneLabel := "Done"
	if t.Completed {
		titleColor = color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xFF}
		doneLabel = "Undo"
	}
	return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := material.Body1(theme, t.Title)
						label.Color = titleColor
						if t.Completed {
							label.Font.Style = font.Italic
						}
						return label.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := material.Caption(theme, t.CreatedAt.Format("Jan 2 15:04"))
						label.Color = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
						return label.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(theme, &ui.toggleBtn[i], doneLabel).Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(theme, &ui.deleteBtn[i], "Delete")
				btn.Background = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
				return btn.Layout(gtx)
			}),
		)
	})
}

func statusLine(s client.Status) string {
	if s.Todos == 0 {
		return "nothing to do"
	}
	switch s.Pending {
	case 0:
		return "all done"
	case 1:
		return "1 item left"
	default:
		return fmt.Sprintf("%d items left", s.Pending)
	}
}

// Data fetching

func (ui *UI) pollData() {
	ui.fetchAll()
	ticker := time.NewTicker(5 * time.Second)
	for range ticker.C {
		ui.fetchAll()
	}
}

func (ui *UI) fetchAll() {
	ctx := context.Background()
	todos, err := ui.api.List(ctx)
	if err != nil {
		log.Printf("fetch todos: %v", err)
		return
	}
	status, err := ui.api.Status(ctx)
	if err != nil {
		log.Printf("fetch status: %v", err)
		return
	}
	ui.mu.Lock()
	ui.todos = todos
	ui.status = *status
	ui.mu.Unlock()
}

func (ui *UI) create(title string) {
	if _, err := ui.api.Create(context.Background(), title); err != nil {
		log.Printf("create todo: %v", err)
		return
	}
	ui.fetchAll()
}

func (ui *UI) toggle(id int64) {
	if _, err := ui.api.Toggle(context.Background(), id); err != nil {
		log.Printf("toggle todo: %v", err)
		return
	}
	ui.fetchAll()
}

func (ui *UI) delete(id int64) {
	if err := ui.api.Delete(context.Background(), id); err != nil {
		log.Printf("delete todo: %v", err)
		return
	}
	ui.fetchAll()
}
