package shell

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/chzyer/flagly"
	"github.com/chzyer/flow"
	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"gopkg.in/logex.v1"
)

type Shell struct {
	flow *flow.Flow
}

func New(f *flow.Flow) *Shell {
	return &Shell{flow: f}
}

func historyFile() string {
	homeDir := os.Getenv("HOME")
	userAcct, _ := user.Current()
	if userAcct != nil {
		homeDir = userAcct.HomeDir
	}
	return filepath.Join(homeDir, ".ipcalc_history")
}

func (s *Shell) Run() error {
	s.flow.Add(1)
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile: historyFile(),
		Prompt:      "ipcalc> ",
	})
	if err != nil {
		s.flow.Done()
		s.flow.Close()
		return logex.Trace(err)
	}
	defer func() {
		s.flow.Done()
		rl.Close()
		s.flow.Close()
	}()

	fset, err := flagly.Compile("", &CLI{})
	if err != nil {
		return logex.Trace(err)
	}
	fset.Context(rl)

	io.WriteString(rl, "IPv4 subnet calculator. Type 'help' for commands.\n")
	for !s.flow.IsClosed() {
		command, err := rl.Readline()
		if err != nil {
			break
		}
		args, err := shlex.Split(command)
		if err != nil || len(args) == 0 {
			continue
		}

		if err := fset.Run(args); err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			continue
		}
	}
	return nil
}
