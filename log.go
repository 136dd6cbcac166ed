package cprompt

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is shared by prompts that are not given their own. It writes to
// stderr and stays quiet below warnings so it does not tear the edited line.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "cprompt",
	Level:  log.WarnLevel,
})

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
