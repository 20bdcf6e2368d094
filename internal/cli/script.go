package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"lrucache/internal/cache"
)

// Script errors can be matched with errors.Is.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("wrong number of arguments")
)

// missText is printed by get and peek when the key is absent.
const missText = "(nil)"

// ScriptError reports the script line that could not be executed.
type ScriptError struct {
	Line int
	Text string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Interpreter executes cache commands against a string cache, one per line.
type Interpreter struct {
	cache *cache.LRU[string, string]
	out   io.Writer
	log   zerolog.Logger
}

// NewInterpreter returns an interpreter backed by a fresh cache of the given capacity.
func NewInterpreter(capacity int, out io.Writer, log zerolog.Logger) *Interpreter {
	return &Interpreter{
		cache: cache.New(capacity, cache.WithLogger[string, string](log)),
		out:   out,
		log:   log,
	}
}

// Cache exposes the underlying cache.
func (in *Interpreter) Cache() *cache.LRU[string, string] {
	return in.cache
}

// Run reads commands from r until EOF, the first failing line, or ctx cancellation.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if err := in.Exec(text); err != nil {
			return &ScriptError{Line: line, Text: text, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	in.log.Debug().Int("lines", line).Int("len", in.cache.Len()).Msg("script finished")
	return nil
}

// Exec runs a single command.
func (in *Interpreter) Exec(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "put":
		if len(args) != 2 {
			return fmt.Errorf("%s expects key and value: %w", cmd, ErrArgCount)
		}
		in.cache.Put(args[0], args[1])
		return nil

	case "get", "peek":
		if len(args) != 1 {
			return fmt.Errorf("%s expects a key: %w", cmd, ErrArgCount)
		}
		var (
			v  string
			ok bool
		)
		if cmd == "get" {
			v, ok = in.cache.Get(args[0])
		} else {
			v, ok = in.cache.Peek(args[0])
		}
		if !ok {
			v = missText
		}
		return in.println(v)

	case "len":
		if len(args) != 0 {
			return fmt.Errorf("%s takes no arguments: %w", cmd, ErrArgCount)
		}
		return in.println(strconv.Itoa(in.cache.Len()))

	case "keys":
		if len(args) != 0 {
			return fmt.Errorf("%s takes no arguments: %w", cmd, ErrArgCount)
		}
		keys := in.cache.Keys()
		if len(keys) == 0 {
			return in.println("(empty)")
		}
		return in.println(strings.Join(keys, " "))
	}

	return fmt.Errorf("%q: %w", cmd, ErrUnknownCommand)
}

func (in *Interpreter) println(s string) error {
	if _, err := fmt.Fprintln(in.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
