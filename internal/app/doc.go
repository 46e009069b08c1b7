// Package app wires configuration, logging, the collection repository, the
// shared store and the UI into the binder application.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()
//	       │        ├─> config.Load()          TOML config, defaults when missing
//	       │        ├─> logging.New()          zap logger writing to log_file
//	       │        ├─> prefs.Load()           last view mode and grouping
//	       │        ├─> collection.NewSource() file, sqlite or http(s)
//	       │        └─> Repo.Load()            result recorded in state.Store
//	       ├─────> Watch()                     only with watch = true
//	       └─────> ui.Run()                    blocks until quit
//
// A failed initial load does not stop the program. The error lands in the
// store and the UI renders its error state; with watching enabled, fixing
// the file brings the collection in without a restart.
//
// # Watching
//
// Watcher observes the directory holding the collection file and filters
// events down to that file. Each relevant event schedules a reload through
// debounce.Timer under a single key, so a burst of events costs one reload.
// A reload that fails keeps the previously loaded cards in the store and
// records the error next to them.
//
// The headless commands use Open directly and never start the watcher.
package app
