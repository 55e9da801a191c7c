package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths (dashboard GraphQL is read-only, /metrics is scraped by prometheus)
	return []string{"/graphql", "/metrics", "/health"}
}
