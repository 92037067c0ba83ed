package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FilterDebounce is how long the books page waits after the last keystroke
// before recomputing the visible subset.
const FilterDebounce = 150 * time.Millisecond

// filterTickMsg fires when a debounce window elapses. Gen identifies the
// keystroke that armed it; stale ticks are discarded by the page.
type filterTickMsg struct {
	gen int
}

// debounceFilter arms a debounce tick for the given keystroke generation.
// Each keystroke bumps the generation, so only the tick armed by the final
// keystroke in a burst survives the staleness check.
func debounceFilter(gen int) tea.Cmd {
	return tea.Tick(FilterDebounce, func(time.Time) tea.Msg {
		return filterTickMsg{gen: gen}
	})
}
