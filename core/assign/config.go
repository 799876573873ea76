package assign

// Config defines matching and commit related settings.
type Config struct {
	// TopK bounds the relaxed suggestion list of the urgent path.
	TopK int `json:"top_k"`
	// BrowseLimit bounds the ranked list surfaced in normal matching.
	BrowseLimit int `json:"browse_limit"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopK <= 0 {
		c.TopK = 2
	}
	if c.BrowseLimit <= 0 {
		c.BrowseLimit = 3
	}
}
