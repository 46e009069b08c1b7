// Package config loads binder's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/binder/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but a field is missing, empty or out of range, use
//     that field's default
//
// # Default Values
//
//   - collection: ~/.local/share/binder/collection.json
//   - page_size: 12
//   - search_delay_ms: 300
//   - log_file: ~/.local/state/binder/binder.log
//   - default_view: grid
//   - watch: false
//
// # TOML Format
//
//	collection = "~/cards/collection.yaml"
//	page_size = 24
//	search_delay_ms = 250
//	log_file = "~/.cache/binder.log"
//	default_view = "list"
//	watch = true
//
// The collection may also be an http(s) URL, which is left untouched by tilde
// expansion. default_view is lowercased here and validated by the caller.
//
// Missing config files are not an error. Unreadable or malformed ones are.
package config
