// Package urls provides centralized constants for the documentation URLs
// shown in help text and error screens.
//
// Usage:
//
//	import "github.com/calperm/calperm/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.AccessTokens)
package urls
