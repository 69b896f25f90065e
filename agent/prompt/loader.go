package prompt

import (
	_ "embed"
	"os"
	"strings"
)

//go:embed template/sales.txt
var salesRaw string

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Sales string
}

// LoadPromptSet returns the embedded prompts, trimmed.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Sales: strings.TrimSpace(salesRaw),
	}
}

// LoadPromptSetWithOverride reads the sales prompt from path when path is set,
// falling back to the embedded prompt otherwise.
func LoadPromptSetWithOverride(path string) (PromptSet, error) {
	set := LoadPromptSet()
	path = strings.TrimSpace(path)
	if path == "" {
		return set, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return PromptSet{}, err
	}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
		set.Sales = trimmed
	}
	return set, nil
}
