package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/config"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger installs the default slog logger. With a log directory configured, records go
// to stdout and a per-session file, and old session files beyond the retention count are
// pruned first. The returned closer releases the file.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
		path   string
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		pruneSessionLogs(cfg.LogDir, LogFileRetentionCount)

		path = filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, ServiceName, cfg.Version, cfg.Environment)
	logger.InitLoggerWithWriter(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat, "file", path)
	slog.Info(LogMsgStartingEngine, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"archive_backend", cfg.ArchiveBackend,
		"identity_mode", cfg.IdentityMode,
		"inventory_remote", cfg.InventoryURL != "",
		"announcer", cfg.DiscordToken != "",
		"min_participants", cfg.MinParticipants,
		"max_participants", cfg.MaxParticipants,
		"max_pot_cents", cfg.MaxPotCents,
		"countdown", cfg.Countdown,
		"commission_bps", cfg.CommissionBps)

	return closer, nil
}

// pruneSessionLogs deletes the oldest session files so that, with the file about to be
// created, at most keep+1 remain. Session names embed a sortable timestamp.
func pruneSessionLogs(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			sessions = append(sessions, entry.Name())
		}
	}
	if len(sessions) <= keep {
		return
	}

	sort.Strings(sessions)
	for _, name := range sessions[:len(sessions)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			fmt.Fprintf(os.Stderr, LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
