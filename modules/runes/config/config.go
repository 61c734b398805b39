package config

type Config struct {
	APIHandlers     []string `mapstructure:"api_handlers"`      // List of API handlers to enable. (e.g. `http`)
	BatchMaxQueries int      `mapstructure:"batch_max_queries"` // Maximum number of transaction hashes in a single batch decode request.
	ScanConcurrency int      `mapstructure:"scan_concurrency"`  // Number of blocks fetched and decoded in parallel.
}
