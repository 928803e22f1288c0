// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/zosmac/gocore"
)

type (
	// pager is an output writer that feeds an interactive pager.
	pager struct {
		cmd *exec.Cmd
		in  io.WriteCloser
	}
)

// startPager runs $PAGER, or less -R if unset, with its output on the terminal.
func startPager() (*pager, error) {
	args := pagerCommand(os.Getenv("PAGER"))
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, gocore.Error("StdinPipe()", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, gocore.Error("Start()", err, map[string]string{
			"pager": strings.Join(args, " "),
		})
	}

	return &pager{cmd: cmd, in: in}, nil
}

// pagerCommand splits the pager command line.
func pagerCommand(env string) []string {
	if args := strings.Fields(env); len(args) > 0 {
		return args
	}
	return []string{"less", "-R"}
}

// Write is an io.Writer interface method.
func (p *pager) Write(b []byte) (int, error) {
	return p.in.Write(b)
}

// Close ends the pager's input and waits for the user to quit it.
func (p *pager) Close() error {
	err := p.in.Close()
	var exit *exec.ExitError
	if werr := p.cmd.Wait(); werr != nil && !errors.As(werr, &exit) {
		err = werr
	}
	return err
}
