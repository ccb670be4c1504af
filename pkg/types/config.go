package types

// TodoSymbols holds the rendered markers for Neorg's TODO status extension.
// The target vocabulary has no checklist primitive, so statuses are
// prepended to the item's content as plain text.
type TodoSymbols struct {
	// Task undone `( )` (default: ⬜)
	Undone string `json:"undone" yaml:"undone"`
	// Task done `(x)` (default: ✅)
	Done string `json:"done" yaml:"done"`
	// Task in-progress/pending `(-)` (default: ⏳)
	Pending string `json:"pending" yaml:"pending"`
	// Task put down/cancelled `(_)` (default: ❌)
	Cancelled string `json:"cancelled" yaml:"cancelled"`
	// Task on hold `(=)` (default: 🛑)
	OnHold string `json:"on_hold" yaml:"on_hold"`
	// Task recurring `(+)` (default: 🔁)
	Recurring string `json:"recurring" yaml:"recurring"`
	// Task needs further input `(?)` (default: ❓)
	Uncertain string `json:"uncertain" yaml:"uncertain"`
	// Task urgent `(!)` (default: ❗)
	Urgent string `json:"urgent" yaml:"urgent"`
}

// DefaultTodoSymbols returns the default status markers. No stability
// guarantee is made for the exact symbols across versions.
func DefaultTodoSymbols() TodoSymbols {
	return TodoSymbols{
		Undone:    "⬜",
		Done:      "✅",
		Pending:   "⏳",
		Cancelled: "❌",
		OnHold:    "🛑",
		Recurring: "🔁",
		Uncertain: "❓",
		Urgent:    "❗",
	}
}

// BatchConfig holds settings for workspace batch conversion.
type BatchConfig struct {
	// OutDir is the output directory for converted JSON, relative to the
	// workspace root (default "pandoc").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// IndexDir is the directory holding the conversion index database,
	// relative to the workspace root (default ".norg-pandoc").
	IndexDir string `json:"index_dir" yaml:"index_dir"`
}

// ConverterConfig groups all conversion settings.
type ConverterConfig struct {
	// TodoSymbols customizes the TODO status markers.
	TodoSymbols TodoSymbols `json:"todo_symbols" yaml:"todo_symbols"`

	// Pretty selects indented JSON output by default.
	Pretty bool `json:"pretty" yaml:"pretty"`

	// Batch configures the batch subcommand.
	Batch BatchConfig `json:"batch" yaml:"batch"`
}

// DefaultConfig returns the converter defaults.
func DefaultConfig() ConverterConfig {
	return ConverterConfig{
		TodoSymbols: DefaultTodoSymbols(),
		Batch: BatchConfig{
			OutDir:   "pandoc",
			IndexDir: ".norg-pandoc",
		},
	}
}
