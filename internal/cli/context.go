package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"artifex/internal/config"
	"artifex/internal/logging"
	"artifex/internal/preflight"
)

const skipConfigAnnotation = "skipConfigLoad"

// Context carries the state shared by every sub-command of one binary.
type Context struct {
	Tool preflight.Tool

	configFlag   string
	logLevelFlag string
	stderr       io.Writer

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

// NewContext returns a context for tool. Logs go to stderr.
func NewContext(tool preflight.Tool) *Context {
	return &Context{Tool: tool, stderr: os.Stderr}
}

// EnsureConfig loads .env (best effort), the configuration file and the
// logger exactly once.
func (c *Context) EnsureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		_ = godotenv.Load()

		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg, c.logLevelFlag, c.stderr)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger.With(logging.String("tool", string(c.Tool)))
	})
	return c.config, c.configErr
}

// Config returns the loaded configuration, or nil when loading failed.
func (c *Context) Config() *config.Config {
	cfg, _ := c.EnsureConfig()
	return cfg
}

// Logger returns the invocation logger. It is a no-op logger until the
// configuration has loaded.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

// SetStderr redirects log output; tests use it to capture logs.
func (c *Context) SetStderr(w io.Writer) {
	c.stderr = w
}

// SkipConfig marks cmd as runnable without a valid configuration.
func SkipConfig(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipConfigAnnotation] = "true"
	return cmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}
