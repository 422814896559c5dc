package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"strmctl/internal/config"
	"strmctl/internal/logging"
	"strmctl/internal/panel"
	"strmctl/internal/services"
	"strmctl/internal/session"
)

type commandContext struct {
	configFlag  *string
	serverFlag  *string
	jsonFlag    *bool
	verboseFlag *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, serverFlag *string, jsonFlag, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		serverFlag:  serverFlag,
		jsonFlag:    jsonFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
			base, err := config.NormalizeBaseURL(*c.serverFlag)
			if err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "--server", "", err)
				return
			}
			cfg.API.BaseURL = base
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "--server", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) loggerFor(component string) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg, c.verbose())
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return logging.NewComponentLogger(c.logger, component)
}

func (c *commandContext) client() (*panel.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return panel.NewFromConfig(cfg, c.loggerFor("panel"))
}

// withSession opens the edit session under its file lock and runs fn.
func (c *commandContext) withSession(ctx context.Context, fn func(*session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := session.AcquireLock(ctx, cfg.SessionLockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	store, err := session.Open(cfg)
	if err != nil {
		return services.Wrap(services.ErrState, "session", "open", cfg.SessionDBPath(), err)
	}
	defer store.Close()
	return fn(store)
}

// withClientSession combines client construction and session access for
// actions that send a request and then update local state.
func (c *commandContext) withClientSession(ctx context.Context, fn func(*panel.Client, *session.Store) error) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	return c.withSession(ctx, func(store *session.Store) error {
		return fn(client, store)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// formatError renders err for stderr. Backend rejections print the server
// text as-is; transport failures get a hint about the configured address.
func formatError(err error) string {
	var statusErr *panel.StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case panel.IsUnavailable(err):
		return fmt.Sprintf("%v\nbackend unreachable; check api.base_url or pass --server", err)
	default:
		return err.Error()
	}
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
