package main

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/youruser/shotframe/internal/config"
	"github.com/youruser/shotframe/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once      sync.Once
	config    *config.Config
	logger    *zap.Logger
	configErr error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

// ensure loads the config and builds the logger once per invocation.
func (c *commandContext) ensure() (*config.Config, *zap.Logger, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.Log.Level
		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			level = *c.logLevelFlag
		}
		logger, err := logging.New(level, cfg.Log.Development)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.logger, c.configErr
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
