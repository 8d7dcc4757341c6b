package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/box/analysis"
	"github.com/domino14/box/board"
	"github.com/domino14/box/coding"
	"github.com/domino14/box/config"
	"github.com/domino14/box/game"
	"github.com/domino14/box/move"
	"github.com/domino14/box/scoring"
	"github.com/domino14/box/transcript"
)

const defaultRandomMoves = 20

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// render formats v in the chosen output format; text is used for the text
// format.
func (sc *ShellController) render(cmd *shellcmd, v any, text string) (*Response, error) {
	format := cmd.options.String("format")
	if format == "" {
		format = sc.options.format
	}
	switch format {
	case "json":
		bts, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return msg(string(bts)), nil
	case "yaml":
		bts, err := yaml.Marshal(v)
		if err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(string(bts), "\n")), nil
	case "text":
		return msg(text), nil
	}
	return nil, config.ErrBadOutputFormat
}

func (sc *ShellController) displayGame() *Response {
	return msg(sc.game.ToDisplayText())
}

// resolvePath finds a file either as given or under the data path.
func (sc *ShellController) resolvePath(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	alt := filepath.Join(sc.config.GetString(config.ConfigDataPath), path)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for load")
	}
	var h *game.History
	var err error
	if cmd.args[0] == "code" {
		if len(cmd.args) < 2 {
			return nil, errors.New("need to provide a game code")
		}
		h, err = coding.DecodeHistory(cmd.args[1])
	} else {
		h, err = transcript.LoadTranscript(sc.resolvePath(cmd.args[0]))
	}
	if err != nil {
		return nil, err
	}
	if err := sc.setGame(h); err != nil {
		return nil, err
	}
	log.Debug().Msgf("Loaded game; players: %v", h.Players)
	return sc.displayGame(), nil
}

func (sc *ShellController) unload(cmd *shellcmd) (*Response, error) {
	sc.game = nil
	return msg("No active game."), nil
}

// random makes up a game: random secret colors, a random starting tile in
// the middle of the board and then random placements anywhere.
func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	n := defaultRandomMoves
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if n < 1 {
		return nil, errors.New("a game needs at least the starting tile")
	}
	h, err := game.NewHistory([2]string{game.DefaultPlayer1, game.DefaultPlayer2},
		game.RandomSecretColors(), nil)
	if err != nil {
		return nil, err
	}
	start, err := move.NewMove(board.Height/2-1, board.Width/2-3, move.RandomTile(), false)
	if err != nil {
		return nil, err
	}
	h.AddMove(start)
	for i := 1; i < n; i++ {
		h.AddMove(move.RandomMove())
	}
	if err := sc.setGame(h); err != nil {
		return nil, err
	}
	if err := sc.game.Last(); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.Next(); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) prev(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.Prev(); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) first(cmd *shellcmd) (*Response, error) {
	if err := sc.setToTurn(0); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) last(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.setToTurn(sc.game.NumTurns()); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) turn(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need argument for turn")
	}
	t, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.setToTurn(t); err != nil {
		return nil, err
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return sc.displayGame(), nil
}

func (sc *ShellController) squares(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	squares := scoring.SortBySizeDesc(sc.game.Squares())
	if c := cmd.options.String("color"); c != "" {
		ci, err := strconv.Atoi(c)
		if err != nil {
			return nil, err
		}
		if ci < 0 || ci > board.NumColors {
			return nil, fmt.Errorf("%w: got %d", board.ErrInvalidColor, ci)
		}
		squares = scoring.ByColor(squares, board.Color(ci))
	}
	var text strings.Builder
	fmt.Fprintf(&text, "%-6s %-5s %s\n", "Square", "Color", "Size")
	for _, sq := range squares {
		fmt.Fprintf(&text, "%-6s %-5d %d\n", sq.Coords(), sq.Color, sq.Size)
	}
	fmt.Fprintf(&text, "%d squares", len(squares))
	return sc.render(cmd, squares, text.String())
}

type scoresSummary struct {
	Turn         int            `json:"turn" yaml:"turn"`
	Colors       map[int]int    `json:"colors" yaml:"colors"`
	Players      [2]string      `json:"players" yaml:"players,flow"`
	SecretColors [2]board.Color `json:"secret_colors" yaml:"secret_colors,flow"`
	PlayerScores [2]int         `json:"player_scores" yaml:"player_scores,flow"`
}

func (sc *ShellController) scores(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	h := sc.game.History()
	table := sc.game.Scores()
	summary := scoresSummary{
		Turn:         sc.game.Turn(),
		Colors:       table.Map(),
		Players:      [2]string{h.Players[0].Nickname, h.Players[1].Nickname},
		SecretColors: h.SecretColors,
		PlayerScores: sc.game.PlayerScores(),
	}
	var text strings.Builder
	fmt.Fprintf(&text, "Color scores: %s\n", table)
	for p := 0; p < 2; p++ {
		fmt.Fprintf(&text, "%20s (color %d): %d\n", summary.Players[p],
			summary.SecretColors[p], summary.PlayerScores[p])
	}
	return sc.render(cmd, summary, strings.TrimRight(text.String(), "\n"))
}

func (sc *ShellController) list(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	h := sc.game.History()
	var text strings.Builder
	for i, tok := range h.Tokens {
		k := i + 1
		marker := "  "
		if k == sc.game.Turn() {
			marker = "->"
		}
		who := "start"
		if mover := game.MoverOf(k); mover >= 0 {
			who = h.Players[mover].Nickname
		}
		fmt.Fprintf(&text, "%s %3d: %-10s %s\n", marker, k, tok, who)
	}
	if len(h.Tokens) == 0 {
		text.WriteString("No moves.\n")
	}
	return msg(strings.TrimRight(text.String(), "\n")), nil
}

func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	pos := sc.game.Position()
	return sc.render(cmd, pos, pos.Grid.PlainText()+sc.game.Scores().String())
}

func (sc *ShellController) encode(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	code, err := coding.EncodeHistory(sc.game.History())
	if err != nil {
		return nil, err
	}
	return msg(code), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("please provide a filename to save to")
	}
	if sc.game == nil {
		return nil, errNoGame
	}
	filename := cmd.args[0]
	contents := transcript.HistoryToTranscript(sc.game.History())
	if err := os.WriteFile(filename, []byte(contents), 0o644); err != nil {
		return nil, err
	}
	log.Debug().Interface("history", sc.game.History()).Msg("exported transcript")
	return msg("transcript written to " + filename), nil
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need transcript files or patterns")
	}
	var files []string
	for _, pattern := range cmd.args {
		matches, err := filepath.Glob(sc.resolvePath(pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, errors.New("no transcripts matched")
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	res, err := analysis.Batch(context.Background(), files, threads)
	if err != nil {
		return nil, err
	}
	sc.lastBatch = res

	var text bytes.Buffer
	fmt.Fprintf(&text, "%d games, %d failed\n", res.TotalGames, res.FailedGames)
	for _, g := range res.Games {
		if g.Error != "" {
			fmt.Fprintf(&text, "  %s: %s\n", g.Filename, g.Error)
		}
	}
	text.WriteString(standingsTable(res.Standings(nil)))
	if err := analysis.WriteHistogram(&text, "Player scores:", analysis.ScoreHistogram(res.Results()), 40); err != nil {
		return nil, err
	}
	return sc.render(cmd, res, strings.TrimRight(text.String(), "\n"))
}

func standingsTable(rankings []analysis.Ranking) string {
	var s strings.Builder
	s.WriteString("Rank     Points   Player\n")
	s.WriteString(strings.Repeat("-", 8) + " " + strings.Repeat("-", 8) + " " + strings.Repeat("-", 20) + "\n")
	for _, r := range rankings {
		fmt.Fprintf(&s, "%8d %8d %s\n", r.Rank, r.Points, r.Player)
	}
	return s.String()
}

func (sc *ShellController) versus(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: versus <player1> <player2>")
	}
	if sc.lastBatch == nil {
		return nil, errors.New("run `batch` first")
	}
	rec := sc.lastBatch.HeadToHead(cmd.args[0], cmd.args[1])
	if rec.Wins+rec.Ties+rec.Losses == 0 {
		return nil, fmt.Errorf("%s and %s did not play each other", cmd.args[0], cmd.args[1])
	}
	return sc.render(cmd, rec, fmt.Sprintf("%d wins, %d ties, %d losses\n%s",
		rec.Wins, rec.Ties, rec.Losses, rec.String()))
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.options.ToDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		val, err := sc.options.Show(opt)
		if err != nil {
			return nil, err
		}
		return msg(val), nil
	}
	ret, err := sc.options.Set(opt, cmd.args[1:])
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key := cmd.args[0]
	value := cmd.args[1]
	sc.config.Set(key, value)
	if err := sc.config.Validate(); err != nil {
		return nil, err
	}
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return msg(fmt.Sprintf("set %s to %s", key, value)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) saveAliases() error {
	sc.config.Set(config.ConfigAliases, sc.aliases)
	return sc.config.Write()
}

func (sc *ShellController) alias(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 || cmd.args[0] == "list" {
		if len(sc.aliases) == 0 {
			return msg("No aliases defined"), nil
		}
		var result strings.Builder
		result.WriteString("Defined aliases:\n")
		for _, name := range sc.aliasNames() {
			result.WriteString(fmt.Sprintf("  %s = %s\n", name, sc.aliases[name]))
		}
		return msg(strings.TrimRight(result.String(), "\n")), nil
	}

	switch cmd.args[0] {
	case "set":
		if len(cmd.args) < 3 {
			return nil, errors.New("usage: alias set <name> <command>")
		}
		name := cmd.args[1]
		command := strings.Join(cmd.args[2:], " ")
		sc.aliases[name] = command
		sc.config.SetAlias(name, command)
		if err := sc.config.Write(); err != nil {
			return nil, fmt.Errorf("failed to save alias: %w", err)
		}
		return msg(fmt.Sprintf("Alias '%s' set to: %s", name, command)), nil

	case "delete", "remove", "rm":
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: alias delete <name>")
		}
		name := cmd.args[1]
		if _, exists := sc.aliases[name]; !exists {
			return nil, fmt.Errorf("alias '%s' not found", name)
		}
		delete(sc.aliases, name)
		if err := sc.saveAliases(); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		return msg(fmt.Sprintf("Alias '%s' deleted", name)), nil

	case "show":
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: alias show <name>")
		}
		name := cmd.args[1]
		if command, exists := sc.aliases[name]; exists {
			return msg(fmt.Sprintf("%s = %s", name, command)), nil
		}
		return nil, fmt.Errorf("alias '%s' not found", name)
	}
	return nil, fmt.Errorf("unknown subcommand '%s'. Valid: set, delete, show, list", cmd.args[0])
}
