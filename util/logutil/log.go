// Copyright 2025 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	// DefaultLogLevel is the default log level of the collector.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log format of the collector.
	DefaultLogFormat = "text"
)

// LogConfig serializes log related config.
type LogConfig struct {
	log.Config
}

// NewLogConfig creates a LogConfig.
func NewLogConfig(level, format string) *LogConfig {
	return &LogConfig{
		Config: log.Config{
			Level:  level,
			Format: format,
		},
	}
}

// InitLogger initializes the global logger. It is idempotent in the sense
// that calling it again simply replaces the global logger.
func InitLogger(cfg *LogConfig) error {
	lg, props, err := log.InitLogger(&cfg.Config)
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

// BgLogger returns the default global logger.
func BgLogger() *zap.Logger {
	return log.L()
}
