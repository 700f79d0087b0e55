package deps

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("artworked")

// Everything except the message has a custom color which is dependent on
// the log level. The time goes down to the millisecond.
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000}  %{pid} %{module}	%{shortfile}	▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

func IgniteLogger(container Deps) (Deps, error) {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(level(container), "")
	logging.SetBackend(leveled)

	if c := container.Config(); c != nil {
		go func() {
			for range c.Reload {
				leveled.SetLevel(level(container), "")
				log.Infof("Log level set to %s", leveled.GetLevel(""))
			}
		}()
	}

	container.LoggerProvider = log
	return container, nil
}

func level(container Deps) logging.Level {
	if container.Config() == nil {
		return logging.DEBUG
	}
	runtime := container.Config().Copy()
	if l, err := logging.LogLevel(runtime.LogLevel); err == nil {
		return l
	}
	if runtime.Development() {
		return logging.DEBUG
	}
	return logging.INFO
}
