package foreign

import (
	"io"
	"log/slog"
	"os"
	"splufp/internal/object"
	"splufp/internal/traverse"
)

// GetForeignFunctions returns every primitive generated code may call,
// keyed by the name generated code uses. log writes to out; a nil out
// means os.Stderr.
func GetForeignFunctions(out io.Writer) map[string]object.Object {
	if out == nil {
		out = os.Stderr
	}

	fns := map[string]object.Object{
		"add": fnMathAdd(),
		"sub": fnMathSub(),
		"mul": fnMathMul(),
		"div": fnMathDiv(),
		"neg": fnMathNeg(),

		"eq":  fnCmpEq(),
		"geq": fnCmpGeq(),
		"leq": fnCmpLeq(),
		"gt":  fnCmpGt(),
		"lt":  fnCmpLt(),
		"and": fnLogicAnd(),
		"or":  fnLogicOr(),

		"array_at": fnListArrayAt(),
		"slice":    fnListSlice(),
		"splice":   fnListSplice(),
		"len":      fnListLen(),

		"obj_get": fnRecordGet(),

		"log":   fnDebugLog(out),
		"delay": fnTimeDelay(),
		"none":  object.NONE,

		"foldl": traverse.FoldlFn(),
		"foldr": traverse.FoldrFn(),
		"map":   traverse.MapFn(),
	}

	slog.Debug("foreign functions registered", slog.Int("count", len(fns)))
	return fns
}

// Install binds every primitive into env as a builtin.
func Install(env *object.Environment, out io.Writer) {
	for name, fn := range GetForeignFunctions(out) {
		env.DefineBuiltin(name, fn)
	}
}
