package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

var (
	logger     = slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.DateTime}))
	setupLogMu sync.Mutex
)

// SetupGinLog points gin and the system logger at stdout and, when --log-dir
// is set, at a log file as well.
func SetupGinLog() {
	setupLogMu.Lock()
	defer setupLogMu.Unlock()

	var out io.Writer = os.Stdout
	if *LogDir != "" {
		if err := os.MkdirAll(*LogDir, 0o755); err != nil {
			FatalLog("failed to create log dir: " + err.Error())
		}
		logPath := filepath.Join(*LogDir, fmt.Sprintf("healthmate-%s.log", time.Now().Format("20060102")))
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			FatalLog("failed to open log file: " + err.Error())
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out
	logger = slog.New(tint.NewHandler(out, &tint.Options{
		TimeFormat: time.DateTime,
		NoColor:    *LogDir != "",
	}))
}

func SysLog(s string, args ...any) {
	logger.Info(s, args...)
}

func SysError(s string, args ...any) {
	logger.Error(s, args...)
}

func FatalLog(v ...any) {
	logger.Error(fmt.Sprint(v...))
	os.Exit(1)
}
