package shell

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/box/analysis"
)

const scriptHTTPTimeout = 30 * time.Second

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("box_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// pushResult pushes a command's message, or an error string, as the single
// return value.
func pushResult(L *lua.LState, name string, r *Response, err error) int {
	if err != nil {
		log.Err(err).Msg("error-executing-" + name)
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

// pushJSON converts v to a lua table by way of JSON.
func pushJSON(L *lua.LState, v any) int {
	bts, err := json.Marshal(v)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	lv, err := luajson.Decode(L, bts)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lv)
	return 1
}

func Load(L *lua.LState) int {
	path := L.CheckString(1)
	sc := getShell(L)
	r, err := sc.load(&shellcmd{cmd: "load", args: []string{path}})
	return pushResult(L, "load", r, err)
}

func LoadCode(L *lua.LState) int {
	code := L.CheckString(1)
	sc := getShell(L)
	r, err := sc.load(&shellcmd{cmd: "load", args: []string{"code", code}})
	return pushResult(L, "load", r, err)
}

func Turn(L *lua.LState) int {
	k := L.CheckInt(1)
	sc := getShell(L)
	r, err := sc.turn(&shellcmd{cmd: "turn", args: []string{strconv.Itoa(k)}})
	return pushResult(L, "turn", r, err)
}

func Next(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.next(&shellcmd{cmd: "next"})
	return pushResult(L, "next", r, err)
}

func Prev(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.prev(&shellcmd{cmd: "prev"})
	return pushResult(L, "prev", r, err)
}

func Show(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.show(&shellcmd{cmd: "show"})
	return pushResult(L, "show", r, err)
}

func Scores(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.scores(&shellcmd{cmd: "scores", options: CmdOptions{"format": {"text"}}})
	return pushResult(L, "scores", r, err)
}

func Encode(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.encode(&shellcmd{cmd: "encode"})
	return pushResult(L, "encode", r, err)
}

// Position returns the current position as a table.
func Position(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.RaiseError("%v", errNoGame)
		return 0
	}
	return pushJSON(L, sc.game.Position())
}

// Score scores transcript text without touching the loaded game.
func Score(L *lua.LState) int {
	text := L.CheckString(1)
	name := L.OptString(2, "")
	res, err := analysis.ScoreTranscript(name, text)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return pushJSON(L, res)
}

// Run runs a shell command line the way the prompt does, with aliases
// expanded and commands separated by semicolons. The messages of all the
// commands are returned joined by newlines; the first error stops the line.
func Run(L *lua.LState) int {
	line := L.CheckString(1)
	sc := getShell(L)
	cmds := sc.commands(line)
	for _, c := range cmds {
		cmd, err := extractFields(c)
		if err != nil {
			return pushResult(L, "run", nil, err)
		}
		switch cmd.cmd {
		case "script", "exit", "bye":
			return pushResult(L, "run", nil, errors.New("cannot run "+cmd.cmd+" from a script"))
		}
	}
	var out []string
	for _, c := range cmds {
		r, err := sc.standardModeSwitch(c, nil)
		if err != nil {
			return pushResult(L, "run", nil, err)
		}
		if r != nil && r.message != "" {
			out = append(out, r.message)
		}
	}
	return pushResult(L, "run", msg(strings.Join(out, "\n")), nil)
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: scriptHTTPTimeout}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("box_shell", lsc)
	L.SetGlobal("box_load", L.NewFunction(Load))
	L.SetGlobal("box_load_code", L.NewFunction(LoadCode))
	L.SetGlobal("box_turn", L.NewFunction(Turn))
	L.SetGlobal("box_next", L.NewFunction(Next))
	L.SetGlobal("box_prev", L.NewFunction(Prev))
	L.SetGlobal("box_show", L.NewFunction(Show))
	L.SetGlobal("box_scores", L.NewFunction(Scores))
	L.SetGlobal("box_encode", L.NewFunction(Encode))
	L.SetGlobal("box_position", L.NewFunction(Position))
	L.SetGlobal("box_score", L.NewFunction(Score))
	L.SetGlobal("box_run", L.NewFunction(Run))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("script " + filepath + " finished"), nil
}
