package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/box/board"
	"github.com/domino14/box/config"
)

// ShellOptions are the settings changed with the `set` command. They last
// for the session only; use `setconfig` to persist anything.
type ShellOptions struct {
	format string
}

func defaultShellOptions(cfg *config.Config) *ShellOptions {
	return &ShellOptions{format: cfg.GetString(config.ConfigOutputFormat)}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (opts *ShellOptions) Show(key string) (string, error) {
	switch key {
	case "color":
		return onOff(board.ColorSupport), nil
	case "format":
		return opts.format, nil
	}
	return "", fmt.Errorf("unknown option %v", key)
}

func (opts *ShellOptions) ToDisplayText() string {
	var s strings.Builder
	for _, key := range []string{"color", "format"} {
		val, _ := opts.Show(key)
		fmt.Fprintf(&s, "%-8s %s\n", key, val)
	}
	return strings.TrimRight(s.String(), "\n")
}

// Set changes one option and returns its new value.
func (opts *ShellOptions) Set(key string, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("set takes exactly one value")
	}
	val := args[0]
	switch key {
	case "color":
		switch val {
		case "on", "true":
			board.ColorSupport = true
		case "off", "false":
			board.ColorSupport = false
		default:
			return "", errors.New("color must be on or off")
		}
		return onOff(board.ColorSupport), nil
	case "format":
		switch val {
		case "text", "json", "yaml":
			opts.format = val
			return val, nil
		}
		return "", config.ErrBadOutputFormat
	}
	return "", fmt.Errorf("unknown option %v", key)
}
