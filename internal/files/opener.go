package files

import (
	"fmt"
	"os"
	"os/exec"
)

// Openers are tried in order; the first that exits successfully wins.
var Openers = []string{"xdg-open", "dolphin", "nautilus", "yazi", "thunar", "pcmanfm", "nemo"}

// runCommand is swapped in tests.
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// OpenFolder opens <root>/<sku> in the first available file manager.
func OpenFolder(root, sku string) error {
	dir := ProductDir(root, sku)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("product folder not found: %s", dir)
	}

	var lastErr error
	for _, opener := range Openers {
		if err := runCommand(opener, dir); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to open folder %s: %w", dir, lastErr)
}
