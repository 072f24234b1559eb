package scanner

import (
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"aidetect/internal/analysis"
	apperrors "aidetect/internal/errors"
)

// Config controls file discovery and scan parallelism. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	SkipDirs    map[string]bool
	Extensions  map[string]analysis.Language
	MaxFileSize int64
	Workers     int
}

// configFile is the YAML shape accepted by LoadConfig.
type configFile struct {
	SkipDirs    []string          `yaml:"skip_dirs"`
	Extensions  map[string]string `yaml:"extensions"`
	MaxFileSize int64             `yaml:"max_file_size"`
	Workers     int               `yaml:"workers"`
}

// DefaultConfig returns the built-in scan configuration.
func DefaultConfig() Config {
	skip := map[string]bool{}
	for _, d := range []string{
		"node_modules", "vendor", "venv", ".venv", "env", ".env",
		"__pycache__", ".git", ".svn", ".hg", "dist", "build",
		"target", "bin", "obj", ".idea", ".vscode", "coverage",
		".pytest_cache", ".mypy_cache", "eggs", ".eggs",
	} {
		skip[d] = true
	}

	ext := map[string]analysis.Language{
		".py":    analysis.LangPython,
		".js":    analysis.LangJavaScript,
		".jsx":   analysis.LangJavaScript,
		".mjs":   analysis.LangJavaScript,
		".ts":    analysis.LangTypeScript,
		".tsx":   analysis.LangTypeScript,
		".java":  analysis.LangJava,
		".c":     analysis.LangC,
		".cpp":   analysis.LangCPP,
		".cxx":   analysis.LangCPP,
		".cc":    analysis.LangCPP,
		".hpp":   analysis.LangCPP,
		".h":     analysis.LangCPP,
		".cs":    analysis.LangCSharp,
		".go":    analysis.LangGo,
		".rb":    analysis.LangRuby,
		".php":   analysis.LangPHP,
		".rs":    analysis.LangRust,
		".swift": analysis.LangSwift,
		".kt":    analysis.LangKotlin,
		".kts":   analysis.LangKotlin,
		".scala": analysis.LangScala,
		".sh":    analysis.LangShell,
		".bash":  analysis.LangShell,
	}

	return Config{
		SkipDirs:    skip,
		Extensions:  ext,
		MaxFileSize: 1 << 20,
		Workers:     runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults.
// Missing fields keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, apperrors.NewConfigurationError("failed to read config file", err)
	}

	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, apperrors.NewConfigurationError("failed to parse config file", err)
	}

	if len(f.SkipDirs) > 0 {
		cfg.SkipDirs = make(map[string]bool, len(f.SkipDirs))
		for _, d := range f.SkipDirs {
			cfg.SkipDirs[d] = true
		}
	}
	if len(f.Extensions) > 0 {
		cfg.Extensions = make(map[string]analysis.Language, len(f.Extensions))
		for ext, lang := range f.Extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Extensions[strings.ToLower(ext)] = analysis.Language(lang)
		}
	}
	if f.MaxFileSize > 0 {
		cfg.MaxFileSize = f.MaxFileSize
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}

	return cfg, nil
}

// LanguageFor maps a filename extension to its language hint.
func (c Config) LanguageFor(ext string) analysis.Language {
	if lang, ok := c.Extensions[strings.ToLower(ext)]; ok {
		return lang
	}
	return analysis.LangUnknown
}

// RestrictExtensions returns a copy of the config limited to the given
// extensions. Unknown extensions are accepted with an Unknown language hint.
func (c Config) RestrictExtensions(exts []string) Config {
	if len(exts) == 0 {
		return c
	}

	filtered := make(map[string]analysis.Language, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		ext = strings.ToLower(ext)
		if lang, ok := c.Extensions[ext]; ok {
			filtered[ext] = lang
		} else {
			filtered[ext] = analysis.LangUnknown
		}
	}

	c.Extensions = filtered
	return c
}
