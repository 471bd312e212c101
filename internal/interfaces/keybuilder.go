package interfaces

// KeyBuilder canonizes stat queries into deterministic cache keys
type KeyBuilder interface {
	// Build creates a key for one (domain, subject, lane) slice. vs is the
	// optional comparison subject and may be empty.
	Build(domain, alias, lane, vs string) (string, error)
}
