// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/filepicker.go
// Summary: Modal directory browser over an fs.FS.
// Notes: Paths are slash-separated and relative to the FS root, "." being
// the root itself.

package widgets

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// FilePickerConfig configures a FilePicker. Default size is 50x16.
type FilePickerConfig struct {
	core.Config
	FS    fs.FS
	Dir   string
	Title string
	// SaveMode adds a name field and accepts paths that do not exist yet.
	SaveMode   bool
	Filename   string
	ShowHidden bool
	OnSelect   func(path string)
	OnCancel   func()
}

type pickerEntry struct {
	name string
	dir  bool
}

// FilePicker lets the user walk directories and choose a file.
type FilePicker struct {
	Window
	FS         fs.FS
	SaveMode   bool
	ShowHidden bool
	OnSelect   func(path string)
	OnCancel   func()

	dir     string
	entries []pickerEntry
	err     error
	ctx     *core.Context

	pathLabel *Label
	list      *ListView
	name      *TextBox
	accept    *Button
	cancel    *Button
}

func NewFilePicker(cfg FilePickerConfig) *FilePicker {
	if cfg.Width <= 0 {
		cfg.Width = 50
	}
	if cfg.Height <= 0 {
		cfg.Height = 16
	}
	if cfg.Z == 0 {
		cfg.Z = 500
	}
	title := cfg.Title
	if title == "" {
		title = "Open"
		if cfg.SaveMode {
			title = "Save"
		}
	}
	fp := &FilePicker{
		FS:         cfg.FS,
		SaveMode:   cfg.SaveMode,
		ShowHidden: cfg.ShowHidden,
		OnSelect:   cfg.OnSelect,
		OnCancel:   cfg.OnCancel,
	}
	fp.configure(WindowConfig{Config: cfg.Config, Title: title, Fixed: true})

	w, h := cfg.Width, cfg.Height
	listH := h - 4
	if cfg.SaveMode {
		listH--
	}
	fp.pathLabel = NewLabel(LabelConfig{Config: core.Config{X: 2, Y: 2, Width: w - 2, Height: 1}})
	fp.list = NewListView(ListViewConfig{
		Config:     core.Config{X: 2, Y: 3, Width: w - 2, Height: listH, Name: "files"},
		OnSelect:   fp.selected,
		OnActivate: fp.activated,
	})
	fp.Add(fp.pathLabel, fp.list)
	if cfg.SaveMode {
		fp.name = NewTextBox(TextBoxConfig{
			Config:      core.Config{X: 2, Y: h - 2, Width: w - 2, Name: "filename"},
			Text:        cfg.Filename,
			Placeholder: "file name",
			OnSubmit:    func(string) { fp.Accept() },
		})
		fp.Add(fp.name)
	}

	fp.cancel = NewButton(ButtonConfig{Text: "Cancel", OnPress: fp.Cancel})
	fp.accept = NewButton(ButtonConfig{Text: title, OnPress: fp.Accept})
	fp.accept.SetPosition(w-fp.accept.Width, h-1)
	fp.cancel.SetPosition(fp.accept.X-fp.cancel.Width-1, h-1)
	fp.Add(fp.cancel, fp.accept)

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	fp.Navigate(dir)
	return fp
}

func (fp *FilePicker) IsModal() bool { return fp.Visible }

func (fp *FilePicker) Dir() string { return fp.dir }
func (fp *FilePicker) Err() error  { return fp.err }

// Entries returns the listed names, directories with a trailing slash.
func (fp *FilePicker) Entries() []string { return fp.list.Items() }

// Current returns the highlighted entry, or "" when the list is empty.
func (fp *FilePicker) Current() string {
	if i := fp.list.Selected(); i >= 0 && i < fp.list.Len() {
		return fp.list.Items()[i]
	}
	return ""
}

// Navigate lists dir. On failure the previous entries are dropped and the
// error is shown in the list.
func (fp *FilePicker) Navigate(dir string) {
	dir = path.Clean(dir)
	fp.dir = dir
	fp.pathLabel.SetText(core.TruncateText("/"+strings.TrimPrefix(dir, "."), fp.pathLabel.Width))
	fp.entries, fp.err = nil, nil

	var items []string
	if dir != "." {
		fp.entries = append(fp.entries, pickerEntry{name: "..", dir: true})
		items = append(items, "../")
	}
	des, err := fs.ReadDir(fp.FS, dir)
	if err != nil {
		fp.err = err
		fp.list.SetItems(append(items, "⚠ "+err.Error()))
		fp.list.Select(0)
		return
	}
	var dirs, files []pickerEntry
	for _, de := range des {
		if !fp.ShowHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if de.IsDir() {
			dirs = append(dirs, pickerEntry{name: de.Name(), dir: true})
		} else {
			files = append(files, pickerEntry{name: de.Name()})
		}
	}
	byName := func(es []pickerEntry) {
		sort.Slice(es, func(i, j int) bool { return strings.ToLower(es[i].name) < strings.ToLower(es[j].name) })
	}
	byName(dirs)
	byName(files)
	for _, e := range append(dirs, files...) {
		fp.entries = append(fp.entries, e)
		if e.dir {
			items = append(items, e.name+"/")
		} else {
			items = append(items, e.name)
		}
	}
	fp.list.SetItems(items)
	fp.list.Select(0)
}

func (fp *FilePicker) entry(i int) (pickerEntry, bool) {
	if i < 0 || i >= len(fp.entries) {
		return pickerEntry{}, false
	}
	return fp.entries[i], true
}

func (fp *FilePicker) enter(e pickerEntry) {
	if e.name == ".." {
		left := path.Base(fp.dir) + "/"
		fp.Navigate(path.Dir(fp.dir))
		for i, item := range fp.list.Items() {
			if item == left {
				fp.list.Reveal(i)
				fp.list.Select(i)
				break
			}
		}
		return
	}
	fp.Navigate(path.Join(fp.dir, e.name))
}

func (fp *FilePicker) selected(i int, _ string) {
	if e, ok := fp.entry(i); ok && !e.dir && fp.name != nil && fp.list.IsFocused() {
		fp.name.SetText(e.name)
	}
}

func (fp *FilePicker) activated(i int, _ string) {
	e, ok := fp.entry(i)
	switch {
	case !ok:
	case e.dir:
		fp.enter(e)
	default:
		fp.choose(path.Join(fp.dir, e.name))
	}
}

// Accept confirms the current choice: the typed name in save mode, else
// the selected file. A selected directory is entered instead.
func (fp *FilePicker) Accept() {
	if fp.SaveMode {
		if name := strings.TrimSpace(fp.name.Text()); name != "" {
			fp.choose(path.Join(fp.dir, name))
		}
		return
	}
	fp.activated(fp.list.Selected(), "")
}

func (fp *FilePicker) Cancel() {
	fp.close()
	if fp.OnCancel != nil {
		fp.OnCancel()
	}
}

func (fp *FilePicker) choose(p string) {
	fp.close()
	if fp.OnSelect != nil {
		fp.OnSelect(p)
	}
}

// Show centres the picker, registers it and focuses the list.
func (fp *FilePicker) Show(ctx *core.Context) {
	fp.ctx = ctx
	present(ctx, fp)
	ctx.SetFocus(fp.list)
}

func (fp *FilePicker) close() {
	fp.Visible = false
	if fp.ctx != nil {
		fp.ctx.Unregister(fp)
	}
}

func (fp *FilePicker) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	switch k {
	case host.KeyEscape:
		fp.Cancel()
	case host.KeyBackspace:
		if fp.dir == "." {
			return false
		}
		fp.Navigate(path.Dir(fp.dir))
	default:
		return false
	}
	return true
}
