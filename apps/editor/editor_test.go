package editor_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/framegrace/cellkit/app"
	"github.com/framegrace/cellkit/apps/editor"
	"github.com/framegrace/cellkit/config"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/plugin"
	"github.com/framegrace/cellkit/task"
	"github.com/framegrace/cellkit/widgets"
	"github.com/go-logr/logr"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFiles struct {
	fstest.MapFS
	writeErr error
}

func (m *memFiles) WriteFile(name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.MapFS[name] = &fstest.MapFile{Data: data}
	return nil
}

func (m *memFiles) Path(name string) string { return "/virtual/" + name }

type fakeProc struct {
	lines  chan string
	err    error
	killed bool
}

func (p *fakeProc) Lines() <-chan string { return p.lines }
func (p *fakeProc) Wait() error          { return p.err }
func (p *fakeProc) Kill()                { p.killed = true }

func newProc(err error, lines ...string) *fakeProc {
	p := &fakeProc{lines: make(chan string, len(lines)), err: err}
	for _, l := range lines {
		p.lines <- l
	}
	close(p.lines)
	return p
}

type fixture struct {
	app     *app.App
	buf     *host.Buffer
	ed      *editor.Editor
	files   *memFiles
	loader  *plugin.Loader
	started []string
	proc    *fakeProc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		buf: host.NewBuffer(80, 24),
		files: &memFiles{MapFS: fstest.MapFS{
			"main.go":  {Data: []byte("package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n")},
			"notes.md": {Data: []byte("# Notes\n")},
		}},
		loader: plugin.NewLoader(plugin.NewMemoryStore(), logr.Discard()),
	}
	f.app = app.New(f.buf, nil, app.WithClock(clockwork.NewFakeClock()))
	f.ed = editor.New(f.app, editor.Options{
		Config: config.Default(),
		Files:  f.files,
		Loader: f.loader,
		Start: func(cmdline, dir string) (editor.Process, error) {
			f.started = append(f.started, cmdline+" @ "+dir)
			if f.proc == nil {
				return nil, errors.New("no process")
			}
			return f.proc, nil
		},
	})
	return f
}

func (f *fixture) lastToast() string {
	ts := f.app.Toasts.Toasts()
	if len(ts) == 0 {
		return ""
	}
	return ts[len(ts)-1].Message
}

func TestLayoutFillsScreen(t *testing.T) {
	f := newFixture(t)
	f.app.Render()
	row := f.buf.Row(1)
	for _, label := range []string{"Open", "Save", "Run", "Quit"} {
		assert.Contains(t, row, label)
	}
	assert.Equal(t, 2, f.ed.Code.Y)
	assert.Equal(t, 16, f.ed.Code.Height)
	assert.Equal(t, 18, f.ed.Status.Y)
	assert.Equal(t, 19, f.ed.Output.Y)
	assert.Equal(t, 6, f.ed.Output.Height)
	assert.Contains(t, f.buf.Row(18), "[new]")

	f.app.HandleEvent(host.Resized(100, 40))
	f.ed.RunConfig().OnEvent(f.app, host.Resized(100, 40))
	assert.Equal(t, 100, f.ed.Code.Width)
	assert.Equal(t, 10, f.ed.Output.Height)
	assert.Equal(t, 31, f.ed.Output.Y)
}

func TestOpenDetectsLanguageAndPublishes(t *testing.T) {
	f := newFixture(t)
	var opened []string
	f.loader.Bus.Subscribe(editor.TopicOpened, func(ev plugin.Event) { opened = append(opened, ev.Payload.(string)) })

	require.NoError(t, f.ed.Open("main.go"))
	assert.Equal(t, "Go", f.ed.Language())
	assert.Equal(t, "Go", f.ed.Code.Language())
	assert.True(t, strings.HasPrefix(f.ed.Code.Text(), "package main"))
	assert.False(t, f.ed.Code.Modified())
	assert.Equal(t, []string{"main.go"}, opened)
	assert.Contains(t, f.ed.Code.Keywords, "func")
	assert.Contains(t, f.ed.Status.Text, "main.go  Go  1:1")
	assert.Contains(t, f.ed.Status.Text, "6 lines")

	require.Error(t, f.ed.Open("missing.go"))
	assert.Contains(t, f.lastToast(), "missing.go")
	assert.Equal(t, "main.go", f.ed.Path())
}

func TestTypingMarksModifiedAndSaveWrites(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ed.Open("notes.md"))
	saved := 0
	f.loader.Bus.Subscribe(editor.TopicSaved, func(plugin.Event) { saved++ })

	f.app.HandleEvent(host.KeyPress(host.KeyEnd, 0))
	for _, r := range "!" {
		f.app.HandleEvent(host.CharTyped(r))
	}
	assert.True(t, f.ed.Code.Modified())
	f.ed.RunConfig().OnTick(f.app)
	assert.Contains(t, f.ed.Status.Text, "notes.md +")

	f.ed.RunConfig().OnKey[host.KeyCtrlS](f.app)
	assert.Equal(t, "# Notes!\n", string(f.files.MapFS["notes.md"].Data))
	assert.False(t, f.ed.Code.Modified())
	assert.Equal(t, 1, saved)
	assert.Equal(t, "Saved notes.md", f.lastToast())

	f.files.writeErr = errors.New("disk full")
	require.Error(t, f.ed.Save())
	assert.Contains(t, f.lastToast(), "disk full")
}

func TestStatsPluginTracksChanges(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"stats"}, f.loader.Loaded())
	require.NoError(t, f.ed.Open("notes.md"))
	assert.Contains(t, f.ed.Status.Segment("stats"), "2 lines, 8 chars, 2 words")

	f.app.HandleEvent(host.CharTyped('x'))
	assert.Contains(t, f.ed.Status.Segment("stats"), "9 chars")

	cfg := f.loader.Configs.For("stats")
	assert.Equal(t, 1, cfg.Int("loads"))
	cfg.Set("show_words", false)
	f.app.HandleEvent(host.CharTyped('y'))
	assert.Equal(t, "2 lines, 10 chars", f.ed.Status.Segment("stats"))

	f.ed.RunConfig().OnShutdown(f.app)
	assert.Empty(t, f.loader.Loaded())
	assert.Equal(t, "", f.ed.Status.Segment("stats"))
}

func TestDisabledStatsPluginIsNotLoaded(t *testing.T) {
	cfg := config.Default()
	cfg.Plugins["stats"] = config.PluginConfig{Enabled: false}
	a := app.New(host.NewBuffer(80, 24), nil, app.WithClock(clockwork.NewFakeClock()))
	loader := plugin.NewLoader(nil, logr.Discard())
	editor.New(a, editor.Options{Config: cfg, Files: &memFiles{MapFS: fstest.MapFS{}}, Loader: loader})
	assert.Empty(t, loader.Loaded())
	assert.Equal(t, []string{editor.StatusService}, loader.Services.Names())
}

func TestOpenThroughPicker(t *testing.T) {
	f := newFixture(t)
	f.ed.RunConfig().OnKey[host.KeyCtrlO](f.app)
	fp := f.ed.Picker()
	require.NotNil(t, fp)
	assert.Same(t, fp, f.app.Ctx.ActiveModal())
	assert.Equal(t, []string{"main.go", "notes.md"}, fp.Entries())

	f.app.HandleEvent(host.KeyPress(host.KeyEnter, 0))
	assert.Nil(t, f.app.Ctx.ActiveModal())
	assert.Equal(t, "main.go", f.ed.Path())
	assert.Same(t, f.ed.Code, f.app.Ctx.Focused())
}

func TestSaveAsThroughPicker(t *testing.T) {
	f := newFixture(t)
	f.app.HandleEvent(host.CharTyped('x'))
	f.ed.SaveOrAsk()
	require.NotNil(t, f.ed.Picker())

	require.NoError(t, f.ed.SaveAs("new.py"))
	assert.Equal(t, "x", string(f.files.MapFS["new.py"].Data))
	assert.Equal(t, "Python", f.ed.Language())
}

func TestRunStreamsOutput(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ed.Open("main.go"))
	f.proc = newProc(nil, "hello", "world")

	f.ed.RunConfig().OnKey[host.KeyCtrlR](f.app)
	require.NotNil(t, f.ed.Running())
	assert.Empty(t, f.started, "the command starts on the next tick")

	f.app.Tick()
	assert.Equal(t, []string{"go run /virtual/main.go @ /virtual/."}, f.started)
	assert.Equal(t, []string{"$ go run /virtual/main.go", "hello", "world", "[done]"}, f.ed.Output.Items())
	assert.Equal(t, task.Completed, f.ed.Running().Status)
	assert.True(t, f.proc.killed)
	assert.Equal(t, "Run finished", f.lastToast())
}

func TestRunFailuresSurfaceAsToasts(t *testing.T) {
	f := newFixture(t)
	f.ed.Run()
	assert.Contains(t, f.lastToast(), "Save the file")

	require.NoError(t, f.ed.Open("notes.md"))
	f.ed.Run()
	assert.Equal(t, "No run command for Markdown", f.lastToast())

	require.NoError(t, f.ed.Open("main.go"))
	f.ed.Run()
	f.app.Tick()
	assert.Contains(t, f.lastToast(), "no process")

	f.proc = newProc(errors.New("signal: killed"), "partial")
	f.ed.Run()
	f.app.Tick()
	assert.Equal(t, []string{"$ go run /virtual/main.go", "partial", "[failed]"}, f.ed.Output.Items())
	assert.Contains(t, f.lastToast(), "signal: killed")
}

func TestRunSavesModifiedBufferFirst(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ed.Open("main.go"))
	f.app.HandleEvent(host.CharTyped('/'))
	f.proc = newProc(nil)
	f.ed.Run()
	assert.True(t, strings.HasPrefix(string(f.files.MapFS["main.go"].Data), "/package"))
	assert.False(t, f.ed.Code.Modified())
}

func TestQuitAsksWhenModified(t *testing.T) {
	f := newFixture(t)
	f.app.HandleEvent(host.CharTyped('x'))
	f.ed.RequestQuit()
	d, ok := f.app.Ctx.ActiveModal().(*widgets.Dialog)
	require.True(t, ok)

	f.app.HandleEvent(host.KeyPress(host.KeyEscape, 0))
	assert.Nil(t, f.app.Ctx.ActiveModal())
	assert.Same(t, f.ed.Code, f.app.Ctx.Focused())

	f.ed.RequestQuit()
	d, ok = f.app.Ctx.ActiveModal().(*widgets.Dialog)
	require.True(t, ok)
	d.Buttons()[0].OnPress()

	// the quit request ends the loop straight away
	require.NoError(t, f.app.Run(context.Background(), f.ed.RunConfig()))
	assert.Empty(t, f.loader.Loaded())
}
