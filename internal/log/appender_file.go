package log

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileAppenderOpt holds rotation options for a file appender.
type FileAppenderOpt struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// AddFileAppender attaches a rotating file appender. options is the raw
// rotation map from configuration, decoded here so unknown keys fail loudly.
func (m *MultiWriter) AddFileAppender(path string, options map[string]interface{}) error {
	if path == "" {
		return fmt.Errorf("file output requires 'path' field")
	}

	opt := FileAppenderOpt{
		MaxSizeMB:  100,
		MaxAgeDays: 30,
		MaxBackups: 5,
	}
	if options != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &opt,
			ErrorUnused: true,
		})
		if err != nil {
			return err
		}
		if err := decoder.Decode(options); err != nil {
			return fmt.Errorf("invalid rotation options: %w", err)
		}
	}

	m.writers = append(m.writers, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opt.MaxSizeMB,  // megabytes
		MaxAge:     opt.MaxAgeDays, // days
		MaxBackups: opt.MaxBackups,
		Compress:   opt.Compress,
	})
	return nil
}
