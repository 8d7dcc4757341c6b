package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/analysis"
	"github.com/domino14/box/config"
	"github.com/domino14/box/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please load a game first with the `load` command")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string
	version  string

	game      *game.Game
	lastBatch *analysis.BatchResult
	aliases   map[string]string
	options   *ShellOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33mbox>\033[0m ",
		HistoryFile:     "/tmp/box-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

// newController builds a controller without a terminal, for running single
// commands.
func newController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	aliases := map[string]string{}
	for k, v := range cfg.Aliases() {
		aliases[k] = v
	}
	return &ShellController{
		config:   cfg,
		execPath: execPath,
		version:  gitVersion,
		aliases:  aliases,
		options:  defaultShellOptions(cfg),
	}
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("shell cleanup")
}

func (sc *ShellController) output() io.Writer {
	if sc.l == nil {
		return os.Stdout
	}
	return sc.l.Stdout()
}

func (sc *ShellController) errOutput() io.Writer {
	if sc.l == nil {
		return os.Stderr
	}
	return sc.l.Stderr()
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.output())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.errOutput())
}

// setToTurn replays the loaded game up to turnnum.
func (sc *ShellController) setToTurn(turnnum int) error {
	if sc.game == nil {
		return errNoGame
	}
	if err := sc.game.PlayToTurn(turnnum); err != nil {
		return err
	}
	log.Debug().Msgf("Set to turn %v", turnnum)
	return nil
}

func (sc *ShellController) setGame(h *game.History) error {
	g, err := game.NewFromHistory(h, 0)
	if err != nil {
		return err
	}
	sc.game = g
	return nil
}

// extractFields splits a command line into the command, its positional
// arguments and its -options. Every option takes exactly one value; an
// option may be repeated.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// expandAlias replaces an alias in the first word of line. Aliases do not
// expand recursively.
func (sc *ShellController) expandAlias(line string) string {
	fields := strings.SplitN(line, " ", 2)
	expansion, ok := sc.aliases[fields[0]]
	if !ok {
		return line
	}
	if len(fields) == 2 {
		return expansion + " " + fields[1]
	}
	return expansion
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "alias":
		return sc.alias(cmd)
	case "load":
		return sc.load(cmd)
	case "unload":
		return sc.unload(cmd)
	case "random":
		return sc.random(cmd)
	case "n", "next":
		return sc.next(cmd)
	case "p", "prev":
		return sc.prev(cmd)
	case "first":
		return sc.first(cmd)
	case "last":
		return sc.last(cmd)
	case "turn":
		return sc.turn(cmd)
	case "s", "show":
		return sc.show(cmd)
	case "squares":
		return sc.squares(cmd)
	case "scores":
		return sc.scores(cmd)
	case "list":
		return sc.list(cmd)
	case "position":
		return sc.position(cmd)
	case "encode":
		return sc.encode(cmd)
	case "export":
		return sc.export(cmd)
	case "batch":
		return sc.batch(cmd)
	case "versus":
		return sc.versus(cmd)
	case "set":
		return sc.set(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", line)
		return nil, fmt.Errorf("command %v not found", cmd.cmd)
	}
}

// commands splits a line on semicolons, expanding aliases at the start of
// each command. An alias may itself hold several commands.
func (sc *ShellController) commands(line string) []string {
	var cmds []string
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, sub := range strings.Split(sc.expandAlias(part), ";") {
			if sub = strings.TrimSpace(sub); sub != "" {
				cmds = append(cmds, sub)
			}
		}
	}
	return cmds
}

// Execute runs one line of commands, separated by semicolons. It returns
// true if one of them was a request to quit, in which case the quit signal
// has already been sent on sig.
func (sc *ShellController) Execute(sig chan os.Signal, line string) bool {
	for _, c := range sc.commands(line) {
		resp, err := sc.standardModeSwitch(c, sig)
		if errors.Is(err, errQuit) {
			return true
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	return false
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if sc.Execute(sig, strings.TrimSpace(line)) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) aliasNames() []string {
	names := make([]string, 0, len(sc.aliases))
	for name := range sc.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
