package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"load": {
		Args: []string{"code"},
	},
	"squares": {
		Options: []string{"-color", "-format"},
	},
	"scores": {
		Options: []string{"-format"},
	},
	"position": {
		Options: []string{"-format"},
	},
	"batch": {
		Options: []string{"-threads", "-format"},
	},
	"versus": {
		Options: []string{"-format"},
	},
	"set": {
		Args: []string{"color", "format"},
	},
	"setconfig": {
		Args: []string{
			"data-path", "output-format", "threads", "nats-url", "nats-subject",
		},
	},
	"alias": {
		Args: []string{"set", "delete", "show", "list", "remove", "rm"},
	},
	"help": {
		Args: []string{"load", "random", "turn", "squares", "scores", "position",
			"encode", "export", "batch", "versus", "set", "alias", "script"},
	},
}

var commandNames = []string{
	"help", "alias", "load", "unload", "random", "n", "next", "p", "prev",
	"first", "last", "turn", "s", "show", "squares", "scores", "list",
	"position", "encode", "export", "batch", "versus", "set", "setconfig",
	"script", "exit",
}

var boolValues = []string{"on", "off"}
var formatValues = []string{"text", "json", "yaml"}
var colorValues = []string{"1", "2", "3", "4", "5", "6"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unterminated quotes; fall back to plain splitting.
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = append(completions, commandNames...)
		completions = append(completions, c.sc.aliasNames()...)
	} else {
		cmdName := fields[0]

		if aliasValue, isAlias := c.sc.aliases[cmdName]; isAlias {
			aliasFields, err := shellquote.Split(aliasValue)
			if err == nil && len(aliasFields) > 0 {
				cmdName = aliasFields[0]
			}
		}

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastCompleteField, "-"):
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "format":
				completions = formatValues
			case "color":
				completions = colorValues
			}
		case cmdName == "set" && len(fields) >= 2 && lastCompleteField == "color":
			completions = boolValues
		case cmdName == "set" && len(fields) >= 2 && lastCompleteField == "format":
			completions = formatValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}

	return matches, len(prefix)
}
