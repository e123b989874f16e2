package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory name used under the user config directory.
const AppDirName = "mdlive"

// Source names reported by Chain.LoadStyleSource.
const (
	SourceCustom     = "custom"
	SourceExecutable = "executable"
	SourceConfig     = "config"
	SourceEmbedded   = "embedded"
)

// Source is a named loader in a Chain.
type Source struct {
	Name   string
	Loader AssetLoader
}

// Chain tries loaders in order and returns the first non-empty result.
// Any failure other than an invalid asset name falls through to the next
// loader. Implements AssetLoader interface.
type Chain struct {
	sources []Source
}

// NewChain creates a Chain from sources, tried in the given order.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: append([]Source(nil), sources...)}
}

// ChainOptions selects the directories searched by NewDefaultChain.
// Empty directories are skipped.
type ChainOptions struct {
	CustomPath    string // explicit asset directory; invalid path is an error
	ExecutableDir string // directory holding the running binary
	ConfigDir     string // {user config dir}/mdlive
}

// DefaultChainOptions fills ExecutableDir and ConfigDir from the running
// process and the user's environment.
func DefaultChainOptions(customPath string) ChainOptions {
	opts := ChainOptions{CustomPath: customPath}

	if exe, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exe); err == nil {
			exe = real
		}
		opts.ExecutableDir = filepath.Dir(exe)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		opts.ConfigDir = filepath.Join(dir, AppDirName)
	}

	return opts
}

// NewDefaultChain builds the custom → executable → config → embedded chain.
// Only CustomPath is required to exist; the other directories are optional.
func NewDefaultChain(opts ChainOptions) (*Chain, error) {
	var sources []Source

	if opts.CustomPath != "" {
		loader, err := NewFilesystemLoader(opts.CustomPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Name: SourceCustom, Loader: loader})
	}

	optional := []struct {
		name string
		dir  string
	}{
		{SourceExecutable, opts.ExecutableDir},
		{SourceConfig, opts.ConfigDir},
	}
	for _, o := range optional {
		if o.dir == "" {
			continue
		}
		loader, err := NewFilesystemLoader(o.dir)
		if err != nil {
			continue
		}
		sources = append(sources, Source{Name: o.name, Loader: loader})
	}

	sources = append(sources, Source{Name: SourceEmbedded, Loader: NewEmbeddedLoader()})
	return NewChain(sources...), nil
}

// Sources returns the names of the configured sources in lookup order.
func (c *Chain) Sources() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name
	}
	return names
}

// LoadStyle loads a CSS style from the first source that has it.
func (c *Chain) LoadStyle(name string) (string, error) {
	content, _, err := c.LoadStyleSource(name)
	return content, err
}

// LoadStyleSource is LoadStyle that also reports which source won.
func (c *Chain) LoadStyleSource(name string) (content, source string, err error) {
	return c.loadText(name, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplate loads an HTML template from the first source that has it.
func (c *Chain) LoadTemplate(name string) (string, error) {
	content, _, err := c.loadText(name, func(l AssetLoader) (string, error) {
		return l.LoadTemplate(name)
	})
	return content, err
}

// LoadFavicon loads the favicon from the first source that has one.
func (c *Chain) LoadFavicon() ([]byte, error) {
	var lastErr error
	for _, s := range c.sources {
		content, err := s.Loader.LoadFavicon()
		if err == nil && len(content) > 0 {
			return content, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: %s favicon", ErrEmptyAsset, s.Name)
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrFaviconNotFound
	}
	return nil, lastErr
}

// loadText walks the chain for a text asset. Whitespace-only content counts
// as missing so the resolved asset is never empty.
func (c *Chain) loadText(name string, loadFn func(AssetLoader) (string, error)) (string, string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", "", err
	}

	var lastErr error
	for _, s := range c.sources {
		content, err := loadFn(s.Loader)
		if err == nil && strings.TrimSpace(content) != "" {
			return content, s.Name, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: %s %q", ErrEmptyAsset, s.Name, name)
		}
		if errors.Is(err, ErrInvalidAssetName) {
			return "", "", err
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return "", "", lastErr
}

// Compile-time interface check.
var _ AssetLoader = (*Chain)(nil)
