package media

import "strings"

// Resolver turns stored image keys into public URLs. Keys that already
// carry a scheme pass through untouched, as does everything when no base
// URL is configured.
type Resolver struct {
	base string
}

// NewResolver builds a resolver for the given public base URL. An empty
// base yields a pass-through resolver.
func NewResolver(baseURL string) Resolver {
	return Resolver{base: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// URL resolves a nullable image key.
func (r Resolver) URL(key *string) *string {
	if key == nil {
		return nil
	}
	resolved := r.URLString(*key)
	if resolved == "" {
		return nil
	}
	return &resolved
}

// URLString resolves a bare image key, returning it unchanged when no base
// is configured or the key is already absolute.
func (r Resolver) URLString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || r.base == "" {
		return key
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return r.base + "/" + strings.TrimLeft(key, "/")
}
