/*
Package keybinds maps keys to actions per input context.

Every input mode of the TUI resolves non-text keys through a Registry:
Match(context, key) looks in the context first and then in the global
context. Printable keys that resolve to nothing are treated as text by
the caller.

Users can override defaults in ~/.printcat/keybinds.jsonc:

	{
	  // refresh on F5 only
	  "normal": { "refresh": "f5" },
	  "select": { "toggle": "space,x" }
	}

Listing an action in a section replaces its default keys in that
context. LoadOrDefault validates the result and falls back to the
defaults when the file is broken.
*/
package keybinds
