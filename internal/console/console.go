// Package console evaluates one-line expressions against the primitive
// registry using the same calling convention generated code uses: every
// argument is wrapped in a thunk and applied one at a time.
//
//	>> foldl sub 0 [1, 2, 3]
//	2
//	>> def total (foldl add 0 [1, 2, 3])
//	>> mul total 2
//	12
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"splufp/internal/object"
	"splufp/internal/thunk"
)

const (
	PROMPT     = ">> "
	QuitPrefix = ":quit"
	NamesCmd   = ":names"
)

type Console struct {
	Env *object.Environment
}

func New(env *object.Environment) *Console {
	return &Console{Env: env}
}

// Eval parses and evaluates line, resolving the result.
func (c *Console) Eval(line string) (object.Object, error) {
	slog.Debug("console eval", slog.String("line", line))

	expr, err := Parse(line)
	if err != nil {
		return nil, err
	}

	if name, body, ok := definition(expr); ok {
		return object.NONE, c.define(name, body)
	}

	result, err := c.evalApply(expr)
	if err != nil {
		return nil, err
	}
	return object.Resolve(result)
}

// definition recognises `def name term+`.
func definition(expr *Apply) (string, *Apply, bool) {
	if len(expr.Terms) < 3 {
		return "", nil, false
	}
	kw, ok := expr.Terms[0].(*Ident)
	if !ok || kw.Name != "def" {
		return "", nil, false
	}
	name, ok := expr.Terms[1].(*Ident)
	if !ok {
		return "", nil, false
	}
	return name.Name, &Apply{Terms: expr.Terms[2:], Position: expr.Terms[2].Pos()}, true
}

// define binds name before its body is attached, so the body may mention
// name. The body is re-evaluated on every force, and resolved inside the
// producer so a definition that only refers back to itself nests and hits
// the recursion limit.
func (c *Console) define(name string, body *Apply) error {
	if b, ok := c.Env.GetBinding(name); ok && b.IsBuiltin {
		return fmt.Errorf("cannot redefine builtin '%s'", name)
	}
	cell := thunk.Declare(name)
	if _, err := c.Env.Define(name, cell); err != nil {
		return err
	}
	cell.RebindLazy(func() (object.Object, error) {
		v, err := c.evalApply(body)
		if err != nil {
			return nil, err
		}
		return object.Resolve(v)
	})
	return nil
}

func (c *Console) evalApply(expr *Apply) (object.Object, error) {
	fn, err := c.evalNode(expr.Terms[0])
	if err != nil {
		return nil, err
	}
	if len(expr.Terms) == 1 {
		return fn, nil
	}

	args := make([]object.Deferred, 0, len(expr.Terms)-1)
	for _, term := range expr.Terms[1:] {
		arg, err := c.deferNode(term)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return object.Apply(fn, args...)
}

func (c *Console) evalNode(n Node) (object.Object, error) {
	switch node := n.(type) {
	case *Literal:
		return node.Value, nil
	case *Ident:
		v, ok := c.Env.Get(node.Name)
		if !ok {
			return nil, fmt.Errorf("unknown identifier '%s'", node.Name)
		}
		return v, nil
	case *Apply:
		return c.evalApply(node)
	default:
		return nil, fmt.Errorf("unknown node %T", n)
	}
}

// deferNode turns a term into an argument. Nested expressions become lazy
// thunks, so a primitive that never forces an argument never evaluates it.
func (c *Console) deferNode(n Node) (object.Deferred, error) {
	if apply, ok := n.(*Apply); ok {
		return thunk.Lazy(func() (object.Object, error) {
			return c.evalApply(apply)
		}), nil
	}
	v, err := c.evalNode(n)
	if err != nil {
		return nil, err
	}
	if d, ok := v.(object.Deferred); ok {
		return d, nil
	}
	return thunk.Of(v), nil
}

// handle evaluates one input line and writes the outcome. It reports false
// when the session should end.
func (c *Console) handle(line string, out io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case trimmed == QuitPrefix:
		return false
	case trimmed == NamesCmd:
		io.WriteString(out, strings.Join(c.Env.Names(), " "))
		io.WriteString(out, "\n")
		return true
	}

	result, err := c.Eval(trimmed)
	if err != nil {
		printError(out, err)
		return true
	}
	if result != object.NONE {
		io.WriteString(out, result.Inspect())
		io.WriteString(out, "\n")
	}
	return true
}

// Start runs a plain read-eval-print loop over in.
func (c *Console) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}
		if !c.handle(scanner.Text(), out) {
			return
		}
	}
}

// StartInteractive runs the loop with line editing and history kept in
// historyPath.
func (c *Console) StartInteractive(historyPath string, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(PROMPT)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !c.handle(line, out) {
			return nil
		}
	}
}

func printError(out io.Writer, err error) {
	var perr *ParseError
	if errors.As(err, &perr) {
		io.WriteString(out, perr.Context())
		io.WriteString(out, "\n")
	}
	io.WriteString(out, "error: "+err.Error()+"\n")
}
