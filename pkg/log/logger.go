package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to SetLevel and SetModuleLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// Modules of the raytracer. Each logs under its own name so one stage can be made verbose alone.
const (
	ModuleCLI      = "cli"
	ModuleScene    = "scene"
	ModuleRenderer = "renderer"
)

// Modules lists every module name accepted by SetModuleLevel
var Modules = []string{ModuleCLI, ModuleScene, ModuleRenderer}

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:.4s} %{module:-8s}%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{module:-8s} %{message}`,
	)
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// Logger is a named, leveled logger. It satisfies core.Logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates the logger for a module, normally one of the Module constants.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink overrides the backend output sink. Colors are only emitted when colored is set.
// All module levels are reset to Notice.
func SetSink(sink io.Writer, colored bool) {
	format := plainFormat
	if colored {
		format = colorFormat
	}
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every module.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
	for _, module := range Modules {
		leveledBackend.SetLevel(toLoggingLevel(level), module)
	}
}

// SetModuleLevel sets the verbosity of a single module.
func SetModuleLevel(module string, level Level) error {
	for _, known := range Modules {
		if known == module {
			leveledBackend.SetLevel(toLoggingLevel(level), module)
			return nil
		}
	}
	return fmt.Errorf("unknown log module %q (available: %s)", module, strings.Join(Modules, ", "))
}

// ParseLevel converts a level name such as "debug" or "warning" to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stderr, true)
}
