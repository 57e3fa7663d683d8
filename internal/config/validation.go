package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if !strings.HasPrefix(c.TargetURL, "http://") && !strings.HasPrefix(c.TargetURL, "https://") {
		return fmt.Errorf("target URL must start with http:// or https://")
	}
	if c.WaitTime <= 0 {
		return fmt.Errorf("element wait time must be > 0")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must be >= 0")
	}
	if c.NavRPS <= 0 {
		return fmt.Errorf("navigation rate must be > 0")
	}
	if c.DisplayRows <= 0 {
		return fmt.Errorf("display rows must be > 0")
	}
	return nil
}
