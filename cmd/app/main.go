package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"splufp/internal/console"
	"splufp/internal/foreign"
	"splufp/internal/object"
	"splufp/internal/source"
	"splufp/internal/thunk"
	"splufp/internal/util"
)

var (
	// Version is set at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// config file, overridden by the flags below when they are set
	configFile string
	// logging
	logLevel string
	logFile  string
	// runtime
	maxDepth int
	history  string
	// row source
	dbDriver string
	dbDSN    string
	dbQuery  string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configFile, "config", "", "Path to a TOML configuration file")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	// runtime config
	flag.IntVar(&maxDepth, "max-depth", 0, "Maximum number of nested thunk forces")
	flag.StringVar(&history, "history", "", "Console history file")
	// row source config
	flag.StringVar(&dbDriver, "driver", "", "Database driver for the row source: sqlite3, mysql, postgres")
	flag.StringVar(&dbDSN, "dsn", "", "Database connection string")
	flag.StringVar(&dbQuery, "query", "", "Query whose result is bound as rows")
}

func main() {

	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config, err := util.LoadConfiguration(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	applyFlags(&config)
	config.Version, config.BuildDate, config.Commit = Version, BuildDate, Commit

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	thunk.SetMaxDepth(config.MaxForceDepth)

	os.Exit(run(config, flag.Args()))
}

func run(config util.Configuration, args []string) int {
	root := object.NewEnvironment()
	foreign.Install(root, os.Stderr)

	if config.Database.Driver != "" {
		src, err := source.Open(context.Background(), config.Database.Driver, config.Database.DSN)
		if err != nil {
			slog.Error("failed to open row source", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		defer src.Close()

		root.DefineBuiltin("query", src.QueryFn())
		if config.Database.Query != "" {
			rows, err := src.Query(context.Background(), config.Database.Query)
			if err != nil {
				slog.Error("failed to load rows", slog.Any("error", err))
				fmt.Fprintf(os.Stderr, "%v\n", err)
				return 1
			}
			root.DefineBuiltin("rows", rows)
		}
	}

	c := console.New(object.NewEnclosedEnvironment(root))

	if len(args) > 0 {
		result, err := c.Eval(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		if result != object.NONE {
			fmt.Println(result.Inspect())
		}
		return 0
	}

	if !isTerminal(os.Stdin) {
		c.Start(os.Stdin, os.Stdout)
		return 0
	}

	if err := c.StartInteractive(historyPath(config.HistoryFile), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(config *util.Configuration) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		case "max-depth":
			config.MaxForceDepth = maxDepth
		case "history":
			config.HistoryFile = history
		case "driver":
			config.Database.Driver = dbDriver
		case "dsn":
			config.Database.DSN = dbDSN
		case "query":
			config.Database.Query = dbQuery
		}
	})
}

func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("splufp version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: splufp [options] [expression...]

Options:
  -config <path>     Load settings from a TOML file.
  -log-level <level> Set the log level: debug, info, warn, error, none. Default is 'none'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.
  -max-depth <n>     Maximum number of nested thunk forces. Default is 10000.
  -history <path>    Console history file. Default is ~/.splufp_history.
  -driver <name>     Database driver for the row source: sqlite3, mysql, postgres.
  -dsn <dsn>         Database connection string.
  -query <sql>       Query whose result is bound as 'rows'.
  -help              Display this help information and exit.
  -version           Display version information and exit.

Details:
Runs the splufp runtime console. Every primitive is curried and receives its
arguments as thunks, exactly as generated code calls it. With an expression
the console evaluates it once and exits.

Examples:
  splufp foldl sub 0 [1,2,3]
  splufp -driver sqlite3 -dsn shop.db -query "SELECT * FROM orders"

Environment:
  SPLUFP_LOG_LEVEL, SPLUFP_LOG_FILE, SPLUFP_MAX_FORCE_DEPTH, SPLUFP_HISTORY_FILE,
  SPLUFP_DB_DRIVER, SPLUFP_DB_DSN, SPLUFP_DB_QUERY

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}
