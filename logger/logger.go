package logger

import (
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"studentrecords/common"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var once sync.Once

var log zerolog.Logger

const (
	logFilePrefix   = "studentrecords-"
	logFileSuffix   = ".log"
	maxLogFileCount = 7
)

// GetLogLevel reads SR_LOG_LEVEL as either a zerolog level name ("debug") or
// its numeric value ("-1"). Anything else means info.
func GetLogLevel() zerolog.Level {
	value := strings.TrimSpace(os.Getenv("SR_LOG_LEVEL"))
	if value == "" {
		return zerolog.InfoLevel
	}
	if n, err := strconv.Atoi(value); err == nil {
		return zerolog.Level(n)
	}
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func Get() zerolog.Logger {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}

		var output io.Writer = consoleWriter

		stateHome, err := common.GetStateHome()
		if err == nil {
			fileWriter, err := NewDailyRotatingWriter(stateHome, logFilePrefix, logFileSuffix, maxLogFileCount)
			if err == nil {
				output = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
			}
		}

		var gitRevision, goVersion string
		buildInfo, ok := debug.ReadBuildInfo()
		if ok {
			goVersion = buildInfo.GoVersion
			for _, v := range buildInfo.Settings {
				if v.Key == "vcs.revision" {
					gitRevision = v.Value
					break
				}
			}
		}

		log = zerolog.New(output).
			Level(GetLogLevel()).
			With().
			Timestamp().
			Str("git_revision", gitRevision).
			Str("go_version", goVersion).
			Logger()
	})

	return log
}
