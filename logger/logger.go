package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/securefab/traincore/common"
)

// Log is the global logger instance of FabLog.
var Log *FabLog

// FabLog wraps logrus.Logger for application-specific logging.
type FabLog struct {
	*logrus.Logger
}

// defaultFieldsOrder is the display order for engine-scoped fields.
var defaultFieldsOrder = []string{
	common.LogFieldProcedure, common.LogFieldSession, common.LogFieldStep, common.LogFieldZone,
}

func init() {
	// A plain console logger is always available; Init reconfigures it when
	// the application wants file output or a different level.
	Log = &FabLog{Logger: newConsoleLogger(logrus.InfoLevel)}
}

func newConsoleLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(os.Stdout)
	l.SetFormatter(&Formatter{
		TimestampFormat: "15:04:05",
		FieldsOrder:     defaultFieldsOrder,
	})
	return l
}

// Init reconfigures the global logger. When outputPath is non-empty, logs are
// written to a daily-rotated file under that directory (console output is
// discarded); otherwise logs go to stdout. verbose forces debug level.
func Init(outputPath string, verbose bool, level logrus.Level) error {
	if verbose {
		level = logrus.DebugLevel
	}

	l := logrus.New()
	l.SetLevel(level)

	if outputPath == "" {
		l.SetOutput(os.Stdout)
		l.SetFormatter(&Formatter{
			TimestampFormat: "15:04:05",
			FieldsOrder:     defaultFieldsOrder,
		})
		Log = &FabLog{Logger: l}
		return nil
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
	}
	logFilePath := filepath.Join(outputPath, common.AppName+".log")

	writer, err := rotatelogs.New(
		logFilePath+".%Y%m%d", // daily rotation
		rotatelogs.WithLinkName(logFilePath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize rotatelogs for %s: %w", logFilePath, err)
	}

	fileFormatter := &Formatter{
		TimestampFormat: "2006-01-02 15:04:05.000 MST",
		NoColors:        true,
		FieldsOrder:     defaultFieldsOrder,
	}
	l.SetFormatter(fileFormatter)

	writers := lfshook.WriterMap{}
	for _, lvl := range logrus.AllLevels {
		if l.IsLevelEnabled(lvl) {
			writers[lvl] = writer
		}
	}
	l.Hooks.Add(lfshook.NewHook(writers, fileFormatter))
	// File logging goes through the hook; drop the default stream so the
	// same line is not emitted twice.
	l.SetOutput(io.Discard)

	Log = &FabLog{Logger: l}
	return nil
}

// ForProcedure returns an entry scoped to the named procedure.
func (fl *FabLog) ForProcedure(name string) *logrus.Entry {
	return fl.WithField(common.LogFieldProcedure, name)
}

// ForSession returns an entry scoped to a session of the named procedure.
func (fl *FabLog) ForSession(procedure, sessionID string) *logrus.Entry {
	return fl.WithFields(logrus.Fields{
		common.LogFieldProcedure: procedure,
		common.LogFieldSession:   sessionID,
	})
}
