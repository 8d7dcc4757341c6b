// transcode converts transcripts to compact codes and back.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/coding"
	"github.com/domino14/box/config"
	"github.com/domino14/box/transcript"
)

var errUsage = errors.New("usage: transcode encode [<transcript> ...] | transcode decode <code>")

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(cfg.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "encode":
		if len(args) == 1 {
			return encode(w, stdin, "")
		}
		for _, fn := range args[1:] {
			f, err := os.Open(fn)
			if err != nil {
				return err
			}
			err = encode(w, f, fn)
			f.Close()
			if err != nil {
				return err
			}
		}
		return nil
	case "decode":
		if len(args) != 2 {
			return errUsage
		}
		h, err := coding.DecodeHistory(args[1])
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, transcript.HistoryToTranscript(h))
		return err
	}
	return errUsage
}

func encode(w io.Writer, r io.Reader, name string) error {
	h, err := transcript.ParseTranscriptFromReader(r, name)
	if err != nil {
		return err
	}
	code, err := coding.EncodeHistory(h)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug().Str("name", name).Int("moves", len(h.Moves)).Msg("encoded")
	_, err = fmt.Fprintln(w, code)
	return err
}
