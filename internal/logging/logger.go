package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/gymcoach/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName string
	// LogToStdout mirrors the file logs to the console output.
	LogToStdout bool
	// Console is where console logs go, os.Stdout when nil.
	// The stdio MCP server sets it to os.Stderr, its stdout carries the protocol.
	Console          io.Writer
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// rotation limits of the log file
const (
	logMaxSizeMB  = 50
	logMaxBackups = 20
	logMaxAgeDays = 90
)

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		}

		hook := NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		logrus.AddHook(hook)

		logrus.Infoln("Sentry set up successfully")
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(Output(params))
	logrus.Debugf("logging to file [%s], console: %t", params.LogFileName, params.LogFileName == "" || params.LogToStdout)
}

// Output builds the log destination: the console only without a log file,
// otherwise the rotated file, mirrored to the console when asked to.
func Output(params LoggerSetupParams) io.Writer {
	console := params.Console
	if console == nil {
		console = os.Stdout
	}
	if params.LogFileName == "" {
		return console
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	file := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(console, file)
	}
	return file
}

// GetLevel parses the configured level, info when it is empty or unknown.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
