package types

// Config holds the parameters for Store.Attach.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. An empty DataDir is
// permitted; the store falls back to the current directory.
func (c Config) Validate() error {
	return nil
}
