// Package media derives output file names from an encoding configuration.
package media

import (
	"path/filepath"

	"ffstudio/internal/model"
	"ffstudio/internal/util"
)

// Suffix returns the filename suffix appended for each operation.
func Suffix(op model.Operation) string {
	switch op {
	case model.OpExtractAudio:
		return "-Audio"
	case model.OpCompressVideo:
		return "-Compressed"
	case model.OpRemux:
		return "-Converted"
	default:
		return ""
	}
}

// DefaultOutputPath derives the destination next to the input file:
// stem + operation suffix + the extension matching the selected
// operation/format, routed through the uniquifier so it never collides.
// Empty input yields an empty path.
func DefaultOutputPath(cfg model.EncodingConfig) string {
	if cfg.InputPath == "" {
		return ""
	}
	stem := cfg.InputStem()
	if stem == "" {
		return ""
	}
	dir := filepath.Dir(cfg.InputPath)
	name := stem + Suffix(cfg.Operation) + "." + cfg.OutputExt()
	return util.UniquePath(filepath.Join(dir, name))
}

// RetargetPath adjusts a user-chosen output path to the extension the
// current operation/format requires, uniquifying on collision. An empty
// path falls back to the default naming rule.
func RetargetPath(cfg model.EncodingConfig) string {
	if cfg.OutputPath == "" {
		return DefaultOutputPath(cfg)
	}
	dir := filepath.Dir(cfg.OutputPath)
	base := filepath.Base(cfg.OutputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	p := filepath.Join(dir, stem+"."+cfg.OutputExt())
	if util.Exists(p) {
		p = util.UniquePath(p)
	}
	return p
}
