package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config is the user's keybinding override file. Each section maps an
// action name to a comma-separated key list, e.g. "refresh": "ctrl+r,f5".
// Comments are allowed (JSONC).
type Config struct {
	Version           string            `json:"version,omitempty"`
	Global            map[string]string `json:"global,omitempty"`
	Normal            map[string]string `json:"normal,omitempty"`
	Inventory         map[string]string `json:"inventory,omitempty"`
	Field             map[string]string `json:"field,omitempty"`
	Production        map[string]string `json:"production,omitempty"`
	Select            map[string]string `json:"select,omitempty"`
	CategorySelect    map[string]string `json:"category_select,omitempty"`
	ItemForm          map[string]string `json:"item_form,omitempty"`
	CategoryForm      map[string]string `json:"category_form,omitempty"`
	DeleteConfirm     map[string]string `json:"delete_confirm,omitempty"`
	DeleteFileConfirm map[string]string `json:"delete_file_confirm,omitempty"`
	TextInput         map[string]string `json:"text_input,omitempty"`
	Viewer            map[string]string `json:"viewer,omitempty"`
}

// sections pairs each context with its config map.
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:            c.Global,
		ContextNormal:            c.Normal,
		ContextInventory:         c.Inventory,
		ContextField:             c.Field,
		ContextProduction:        c.Production,
		ContextSelect:            c.Select,
		ContextCategorySelect:    c.CategorySelect,
		ContextItemForm:          c.ItemForm,
		ContextCategoryForm:      c.CategoryForm,
		ContextDeleteConfirm:     c.DeleteConfirm,
		ContextDeleteFileConfirm: c.DeleteFileConfirm,
		ContextTextInput:         c.TextInput,
		ContextViewer:            c.Viewer,
	}
}

// ParseConfig decodes a JSONC document.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SplitKeys turns "ctrl+r, f5" into ["ctrl+r", "f5"]. A lone "," is kept
// as a key and "space" means the space bar.
func SplitKeys(spec string) []string {
	if strings.TrimSpace(spec) == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		switch k {
		case "":
		case "space":
			keys = append(keys, " ")
		default:
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry.
// An action listed in a section loses its default keys in that context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionStr, keySpec := range section {
			action := Action(actionStr)
			if !action.IsKnown() {
				return fmt.Errorf("unknown action %q in %s", actionStr, context)
			}
			keys := SplitKeys(keySpec)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry.
// On a broken file the defaults are returned together with the error.
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if configPath == "" {
		return registry, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return registry, fmt.Errorf("failed to load %s: %w", configPath, err)
	}

	custom := registry.Clone()
	if err := ApplyConfig(custom, config); err != nil {
		return registry, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	if result := NewValidator().ValidateRegistry(custom); result.HasErrors() {
		return registry, fmt.Errorf("invalid keybinds config:\n%s", result.String())
	}

	return custom, nil
}
