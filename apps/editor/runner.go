// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/editor/runner.go
// Summary: Runs the current file under a pty and streams its output.
// Notes: The reader goroutine only feeds a channel; the cooperative run task
// drains it between frames, so widgets are touched from the loop alone.

package editor

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"github.com/framegrace/cellkit/task"
	"github.com/framegrace/cellkit/widgets"
)

// maxLinesPerStep bounds how much output one frame appends.
const maxLinesPerStep = 200

// Process is a started command whose output arrives line by line.
type Process interface {
	// Lines is closed once all output has been read.
	Lines() <-chan string
	Wait() error
	// Kill stops the process if still running and releases it. Safe to call
	// more than once.
	Kill()
}

// StartFunc starts cmdline in dir.
type StartFunc func(cmdline, dir string) (Process, error)

type ptyProcess struct {
	cmd   *exec.Cmd
	ptmx  *os.File
	lines chan string
	done  chan struct{}
	once  sync.Once
}

// StartPTY runs cmdline through sh under a pseudo-terminal so that
// line-buffered programs flush as they would in a shell.
func StartPTY(cmdline, dir string) (Process, error) {
	cmd := exec.Command("sh", "-c", cmdline)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=dumb")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 120})
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", cmdline, err)
	}
	p := &ptyProcess{
		cmd:   cmd,
		ptmx:  ptmx,
		lines: make(chan string, 256),
		done:  make(chan struct{}),
	}
	go p.pump()
	return p, nil
}

func (p *ptyProcess) pump() {
	defer close(p.lines)
	sc := bufio.NewScanner(p.ptmx)
	for sc.Scan() {
		select {
		case p.lines <- strings.TrimRight(sc.Text(), "\r"):
		case <-p.done:
			return
		}
	}
	// Linux reports EIO on the master once the child exits; that is the
	// normal end of output.
}

func (p *ptyProcess) Lines() <-chan string { return p.lines }

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	p.ptmx.Close()
	return err
}

func (p *ptyProcess) Kill() {
	p.once.Do(func() {
		close(p.done)
		if p.cmd.ProcessState == nil && p.cmd.Process != nil {
			p.cmd.Process.Kill()
		}
		p.ptmx.Close()
	})
}

// runBody streams a command into the output list until it exits. Killing
// the task kills the process.
func (e *Editor) runBody(cmdline, dir string) task.Func {
	return func(y *task.Yielder) error {
		proc, err := e.start(cmdline, dir)
		if err != nil {
			return err
		}
		defer proc.Kill()
		lines := proc.Lines()
		for {
			n := 0
		drain:
			for n < maxLinesPerStep {
				select {
				case line, ok := <-lines:
					if !ok {
						return e.finishRun(proc.Wait())
					}
					e.Output.Append(line)
					n++
				default:
					break drain
				}
			}
			y.Yield()
		}
	}
}

func (e *Editor) finishRun(err error) error {
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		e.Output.Append("[done]")
		e.app.Toast("Run finished", widgets.SeveritySuccess)
	case errors.As(err, &exitErr):
		e.Output.Append(fmt.Sprintf("[exit status %d]", exitErr.ExitCode()))
		e.app.Toast(fmt.Sprintf("Run exited with status %d", exitErr.ExitCode()), widgets.SeverityWarning)
	default:
		e.Output.Append("[failed]")
		return err
	}
	return nil
}
