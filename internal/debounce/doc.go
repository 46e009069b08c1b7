// Package debounce coalesces bursts of work by key: only the last request
// within a quiet period runs. Scheduler does this for Bubble Tea programs by
// way of commands and messages; Timer does it for plain goroutines.
package debounce
