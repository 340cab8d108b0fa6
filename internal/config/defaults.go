package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Root:    "docs",
			Include: []string{"*.md", "*.markdown"},
			Exclude: []string{"vendor/**", "node_modules/**", ".git/**"},
		},
		Checks: ChecksConfig{
			MaxLineLength:  120,
			DuplicateWords: []string{"the", "of", "is"},
		},
		Sandbox: SandboxConfig{
			Timeout: "5s",
			PlaceholderMarkers: []string{
				"YOUR_",
				"your-",
				"example.com",
			},
			BlockedPatterns: []string{
				"rm -rf",
				"dd if=",
				"mkfs",
				":(){",
				"> /dev/sd",
			},
		},
		External: ExternalConfig{
			Timeout:      "5s",
			Workers:      8,
			MaxRedirects: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Workers:         0,
		ExecuteExamples: false,
		CheckLinks:      false,
		Fix:             false,
	}
}
