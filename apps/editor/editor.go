// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/editor/editor.go
// Summary: Sample code editor built on the widget toolkit.
// Usage: cmd/cellkit-edit creates the app, then editor.New and a.Run with
// the editor's RunConfig.

package editor

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/framegrace/cellkit/app"
	"github.com/framegrace/cellkit/config"
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/plugin"
	"github.com/framegrace/cellkit/task"
	"github.com/framegrace/cellkit/widgets"
	"github.com/go-enry/go-enry/v2"
)

// Options configures New. Nil fields get defaults: the embedded config,
// the current directory, an in-memory plugin loader and StartPTY.
type Options struct {
	Config *config.Config
	Files  FileSystem
	Loader *plugin.Loader
	Start  StartFunc
}

// Editor owns the widgets of the editor screen.
type Editor struct {
	Code    *widgets.CodeEditor
	Status  *StatusBar
	Output  *widgets.ListView
	Toolbar []*widgets.Button

	app    *app.App
	cfg    *config.Config
	files  FileSystem
	loader *plugin.Loader
	start  StartFunc

	path    string
	lang    string
	picker  *widgets.FilePicker
	confirm *widgets.Dialog
	running *task.Task
}

var keywords = map[string][]string{
	"Go": {"break", "case", "chan", "const", "continue", "default", "defer", "else", "fallthrough",
		"for", "func", "go", "goto", "if", "import", "interface", "map", "package", "range",
		"return", "select", "struct", "switch", "type", "var"},
	"Python": {"and", "class", "def", "elif", "else", "except", "finally", "for", "from", "import",
		"lambda", "return", "while", "with", "yield"},
}

// New builds the editor inside a, registers the status service and the
// built-in plugins, and loads them. Plugin failures are shown as toasts.
func New(a *app.App, opts Options) *Editor {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Files == nil {
		opts.Files = NewOSFiles(".")
	}
	if opts.Loader == nil {
		opts.Loader = plugin.NewLoader(nil, a.Log.WithName("plugins"))
	}
	if opts.Start == nil {
		opts.Start = StartPTY
	}
	e := &Editor{
		app:    a,
		cfg:    opts.Config,
		files:  opts.Files,
		loader: opts.Loader,
		start:  opts.Start,
	}

	for _, b := range []struct {
		text string
		fn   func()
	}{
		{"Open", e.ShowOpen},
		{"Save", func() { e.SaveOrAsk() }},
		{"Run", e.Run},
		{"Quit", e.RequestQuit},
	} {
		e.Toolbar = append(e.Toolbar, widgets.NewButton(widgets.ButtonConfig{
			Config:  core.Config{Name: strings.ToLower(b.text)},
			Text:    b.text,
			OnPress: b.fn,
		}))
	}
	ed := opts.Config.Editor
	e.Code = widgets.NewCodeEditor(widgets.CodeEditorConfig{
		Config:      core.Config{Name: "code"},
		Style:       ed.Style,
		TabWidth:    ed.TabWidth,
		UseTabs:     ed.UseTabs,
		LineNumbers: ed.LineNumbers,
		OnChange:    e.changed,
	})
	e.Status = NewStatusBar()
	e.Output = widgets.NewListView(widgets.ListViewConfig{
		Config: core.Config{Name: "output"},
		Follow: true,
	})
	for _, b := range e.Toolbar {
		a.Add(b)
	}
	a.Add(e.Code, e.Status, e.Output)
	w, h := a.Screen.Size()
	e.Layout(w, h)
	a.Ctx.SetFocus(e.Code)
	e.updateFileStatus()

	if err := e.loader.Services.Register(StatusService, Status(e.Status)); err != nil {
		a.Log.Error(err, "Editor: status service")
	}
	if opts.Config.PluginEnabled("stats") {
		if err := e.loader.Register(NewStatsPlugin()); err != nil {
			a.Log.Error(err, "Editor: register stats plugin")
		}
	}
	if err := e.loader.LoadAll(a); err != nil {
		a.Toast(fmt.Sprintf("Plugins: %v", err), widgets.SeverityError)
	}
	return e
}

// Layout places the toolbar on the first row, the output list at the
// bottom and the code editor with its status line in between.
func (e *Editor) Layout(w, h int) {
	outH := max(3, h/4)
	codeH := max(h-outH-2, 1)
	x := 1
	for _, b := range e.Toolbar {
		b.SetPosition(x, 1)
		x += b.Width + 1
	}
	e.Code.SetPosition(1, 2)
	e.Code.Resize(w, codeH)
	e.Status.SetPosition(1, 2+codeH)
	e.Status.Resize(w, 1)
	e.Output.SetPosition(1, 3+codeH)
	e.Output.Resize(w, outH)
	e.app.Root.Relayout()
}

// RunConfig wires the editor's key bindings and lifecycle into the loop.
func (e *Editor) RunConfig() app.RunConfig {
	return app.RunConfig{
		OnKey: map[host.Key]func(*app.App){
			host.KeyCtrlS: func(*app.App) { e.SaveOrAsk() },
			host.KeyCtrlO: func(*app.App) { e.ShowOpen() },
			host.KeyCtrlR: func(*app.App) { e.Run() },
			host.KeyCtrlQ: func(*app.App) { e.RequestQuit() },
		},
		OnEvent: func(a *app.App, ev host.Event) {
			if ev.Type == host.EventResize {
				e.Layout(ev.Width, ev.Height)
			}
		},
		OnTick:     func(*app.App) { e.updateFileStatus() },
		OnShutdown: func(*app.App) { e.loader.UnloadAll() },
	}
}

// Path returns the open file's name, or "" for an unsaved buffer.
func (e *Editor) Path() string     { return e.path }
func (e *Editor) Language() string { return e.lang }

// Open loads name into the editor and detects its language.
func (e *Editor) Open(name string) error {
	data, err := e.files.ReadFile(name)
	if err != nil {
		e.app.Toast(fmt.Sprintf("Open %s: %v", name, err), widgets.SeverityError)
		return fmt.Errorf("open %s: %w", name, err)
	}
	e.path = name
	e.lang = enry.GetLanguage(path.Base(name), data)
	e.Code.SetText(string(data))
	e.Code.SetFilename(path.Base(name))
	e.Code.SetLanguage(e.lang)
	e.Code.Keywords = keywords[e.lang]
	e.app.Ctx.SetFocus(e.Code)
	e.app.Log.V(1).Info("Editor: opened", "path", name, "language", e.lang)
	e.loader.Bus.Publish(TopicOpened, name)
	e.publishChange()
	e.updateFileStatus()
	return nil
}

// NewFile starts an empty buffer that will be saved as name.
func (e *Editor) NewFile(name string) {
	e.path = name
	e.lang = enry.GetLanguage(path.Base(name), nil)
	e.Code.SetText("")
	e.Code.SetFilename(path.Base(name))
	e.Code.SetLanguage(e.lang)
	e.Code.Keywords = keywords[e.lang]
	e.publishChange()
	e.updateFileStatus()
}

// Save writes the buffer to its file. An unnamed buffer is an error.
func (e *Editor) Save() error {
	if e.path == "" {
		return fmt.Errorf("save: no file name")
	}
	if err := e.files.WriteFile(e.path, []byte(e.Code.Text())); err != nil {
		e.app.Toast(fmt.Sprintf("Save %s: %v", e.path, err), widgets.SeverityError)
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.Code.SetModified(false)
	e.loader.Bus.Publish(TopicSaved, e.path)
	e.app.Toast("Saved "+e.path, widgets.SeverityInfo)
	e.updateFileStatus()
	return nil
}

// SaveAs renames the buffer and saves it, re-detecting the language.
func (e *Editor) SaveAs(name string) error {
	e.path = name
	e.lang = enry.GetLanguage(path.Base(name), []byte(e.Code.Text()))
	e.Code.SetFilename(path.Base(name))
	e.Code.SetLanguage(e.lang)
	return e.Save()
}

// SaveOrAsk saves, or asks for a name first when the buffer has none.
func (e *Editor) SaveOrAsk() {
	if e.path != "" {
		e.Save()
		return
	}
	e.showPicker(true)
}

// ShowOpen opens the file picker.
func (e *Editor) ShowOpen() { e.showPicker(false) }

func (e *Editor) showPicker(save bool) {
	if e.app.Ctx.ActiveModal() != nil {
		return
	}
	dir := "."
	if e.path != "" {
		dir = path.Dir(e.path)
	}
	e.picker = widgets.NewFilePicker(widgets.FilePickerConfig{
		FS:       e.files,
		Dir:      dir,
		SaveMode: save,
		Filename: path.Base(e.path),
		OnSelect: func(p string) {
			e.app.Ctx.SetFocus(e.Code)
			if save {
				e.SaveAs(p)
			} else {
				e.Open(p)
			}
		},
		OnCancel: func() { e.app.Ctx.SetFocus(e.Code) },
	})
	e.picker.Show(e.app.Ctx)
}

// Picker returns the file picker last shown, if any.
func (e *Editor) Picker() *widgets.FilePicker { return e.picker }

// Run saves the buffer and runs it with the command configured for its
// language, streaming output into the output list.
func (e *Editor) Run() {
	if e.running != nil && !e.running.Status.Terminal() {
		e.app.Toast("Already running", widgets.SeverityWarning)
		return
	}
	if e.path == "" {
		e.app.Toast("Save the file before running it", widgets.SeverityWarning)
		return
	}
	if e.Code.Modified() {
		if err := e.Save(); err != nil {
			return
		}
	}
	cmdline := e.cfg.RunCommand(e.lang, e.files.Path(e.path))
	if cmdline == "" {
		e.app.Toast(fmt.Sprintf("No run command for %s", langName(e.lang)), widgets.SeverityWarning)
		return
	}
	e.Output.Clear()
	e.Output.Append("$ " + cmdline)
	e.running = e.app.Spawn("run "+path.Base(e.path), e.runBody(cmdline, e.files.Path(path.Dir(e.path))))
}

// Running returns the current run task, if any.
func (e *Editor) Running() *task.Task { return e.running }

// RequestQuit quits, asking first when there are unsaved changes.
func (e *Editor) RequestQuit() {
	if !e.Code.Modified() {
		e.app.Quit()
		return
	}
	if e.app.Ctx.ActiveModal() != nil {
		return
	}
	e.confirm = widgets.NewDialog(widgets.DialogConfig{
		Title:   "Quit",
		Message: "Discard unsaved changes?",
		Buttons: []string{"Discard", "Cancel"},
		OnResult: func(i int) {
			if i == 0 {
				e.app.Quit()
				return
			}
			e.app.Ctx.SetFocus(e.Code)
		},
	})
	e.confirm.Show(e.app.Ctx)
}

func (e *Editor) changed() {
	e.publishChange()
}

func (e *Editor) publishChange() {
	text := e.Code.Text()
	e.loader.Bus.Publish(TopicChanged, Change{
		Path:  e.path,
		Lines: e.Code.LineCount(),
		Chars: len([]rune(text)),
		Words: len(strings.FieldsFunc(text, unicode.IsSpace)),
	})
}

func (e *Editor) updateFileStatus() {
	name := e.path
	if name == "" {
		name = "[new]"
	}
	if e.Code.Modified() {
		name += " +"
	}
	line, col := e.Code.Cursor()
	e.Status.SetStatus("file", fmt.Sprintf("%s  %s  %d:%d", name, langName(e.lang), line, col))
}

func langName(lang string) string {
	if lang == "" {
		return "Text"
	}
	return lang
}
