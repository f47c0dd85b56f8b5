package config

import (
	"fmt"
	"path/filepath"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Processor.validate(); err != nil {
		return fmt.Errorf("processor: %w", err)
	}
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (p *ProcessorConfig) validate() error {
	if p.EnglishPath == "" && p.HindiPath == "" {
		return fmt.Errorf("at least one of english_path or hindi_path must be set")
	}
	if p.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}

func (s *StoreConfig) validate() error {
	if s.Path == "" {
		return fmt.Errorf("path is required")
	}
	if s.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if filepath.Clean(s.Path) == filepath.Clean(s.InputPath) {
		return fmt.Errorf("path and input_path must differ (both %q)", s.Path)
	}
	return nil
}
