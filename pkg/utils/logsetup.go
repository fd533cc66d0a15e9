package utils

import (
	"os"
	"strings"

	"github.com/racelap/timing-ingest-go/log"
	"github.com/racelap/timing-ingest-go/pkg/config"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupStdLogger initializes the process default logger from the resolved
// CLI config and returns a logger for the sql subsystem.
func SetupStdLogger() (sqlLogger *log.Logger) {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogConfig != "" {
		if rules, err := readFilterRules(config.LogConfig); err == nil {
			logger = log.WithFilters(logger, rules)
		} else {
			logger.Warn("could not read log config, ignoring",
				log.String("file", config.LogConfig),
				log.ErrorField(err))
		}
	}
	log.ResetDefault(logger)
	return sqlLogger
}

// readFilterRules reads a zapfilter rule file, one rule per line. Blank
// lines and # comments are skipped.
func readFilterRules(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	rules := make([]string, 0)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return strings.Join(rules, " "), nil
}
