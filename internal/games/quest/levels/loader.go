package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels/formats"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// DefaultCampaign is the ID of the campaign played when none is chosen.
const DefaultCampaign = "chillihuay"

// ErrCampaignNotFound is returned when no campaign has the requested ID.
var ErrCampaignNotFound = errors.New("levels: campaign not found")

//go:embed campaigns/*.yaml
var builtinFS embed.FS

// Loader handles loading campaigns from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new campaign loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// FileError records a campaign file that failed to load. ID is set when the
// file parsed but did not validate.
type FileError struct {
	Path string
	ID   string
	Err  error
}

func (e *FileError) Error() string { return e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// LoadAll recursively scans and loads all campaign files.
// Returns campaigns sorted by ID for deterministic ordering. Invalid files
// are skipped; use Scan to see them.
func (l *Loader) LoadAll() ([]Campaign, error) {
	campaigns, _, err := l.Scan()
	return campaigns, err
}

// Scan loads every campaign file under Root. Files that fail to load are
// returned as failures instead of aborting the walk.
func (l *Loader) Scan() ([]Campaign, []*FileError, error) {
	var (
		campaigns []Campaign
		failures  []*FileError
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !IsCampaignFile(path) {
			return nil
		}

		c, err := l.load(path)
		if err != nil {
			failures = append(failures, &FileError{Path: path, ID: c.ID, Err: err})
			return nil
		}

		campaigns = append(campaigns, c)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortCampaigns(campaigns)
	return campaigns, failures, nil
}

// LoadFile loads and validates a single campaign file.
func (l *Loader) LoadFile(path string) (Campaign, error) {
	c, err := l.load(path)
	if err != nil {
		return Campaign{}, err
	}
	return c, nil
}

// load is LoadFile, but keeps the parsed campaign when validation fails so
// callers can tell which campaign is broken.
func (l *Loader) load(path string) (Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Campaign{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	c, err := parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Campaign{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	c.FilePath = path

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("validating file %s: %w", path, err)
	}
	return c, nil
}

// LoadByID loads a specific campaign by ID. A file with that ID that fails
// to load is an error even if another file could be loaded. When no file has
// the ID and some file could not be parsed, the parse error is returned.
func (l *Loader) LoadByID(id string) (Campaign, error) {
	campaigns, failures, err := l.Scan()
	if err != nil {
		return Campaign{}, err
	}

	for _, f := range failures {
		if f.ID == id {
			return Campaign{}, f
		}
	}

	c, err := findByID(campaigns, id)
	if err == nil {
		return c, nil
	}

	var unparsed []error
	for _, f := range failures {
		if f.ID == "" {
			unparsed = append(unparsed, f)
		}
	}
	if len(unparsed) > 0 {
		return Campaign{}, fmt.Errorf("campaign %s not loaded: %w", id, errors.Join(unparsed...))
	}
	return Campaign{}, err
}

// Builtin returns the campaigns embedded in the binary.
func Builtin() ([]Campaign, error) {
	entries, err := fs.ReadDir(builtinFS, "campaigns")
	if err != nil {
		return nil, fmt.Errorf("reading embedded campaigns: %w", err)
	}

	campaigns := make([]Campaign, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("campaigns/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", e.Name(), err)
		}
		c, err := parse(data, strings.ToLower(filepath.Ext(e.Name())))
		if err != nil {
			return nil, fmt.Errorf("parsing embedded %s: %w", e.Name(), err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("validating embedded %s: %w", e.Name(), err)
		}
		campaigns = append(campaigns, c)
	}

	sortCampaigns(campaigns)
	return campaigns, nil
}

// Available returns the built-in campaigns followed by those found in root.
// A campaign in root shadows a built-in one with the same ID.
func Available(root string) ([]Campaign, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	if root == "" {
		return builtin, nil
	}

	local, err := NewLoader(root).LoadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(local))
	for _, c := range local {
		seen[c.ID] = true
	}
	out := local
	for _, c := range builtin {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	sortCampaigns(out)
	return out, nil
}

// Resolve finds a campaign by ID, preferring files under root over the
// built-in campaigns. An empty id selects DefaultCampaign. A broken file
// under root never falls back to a built-in campaign.
func Resolve(id, root string) (Campaign, error) {
	if id == "" {
		id = DefaultCampaign
	}

	if root != "" {
		c, err := NewLoader(root).LoadByID(id)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCampaignNotFound) {
			return Campaign{}, err
		}
	}

	builtin, err := Builtin()
	if err != nil {
		return Campaign{}, err
	}
	return findByID(builtin, id)
}

// IsCampaignFile reports whether path has a supported extension.
func IsCampaignFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func findByID(campaigns []Campaign, id string) (Campaign, error) {
	for _, c := range campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return Campaign{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
}

func sortCampaigns(campaigns []Campaign) {
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].ID < campaigns[j].ID
	})
}

// parse routes to the correct parser and converts to a Campaign.
func parse(data []byte, ext string) (Campaign, error) {
	var (
		parsed formats.Campaign
		err    error
	)
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	case ".toml":
		parsed, err = formats.ParseTOML(data)
	default:
		return Campaign{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Campaign{}, err
	}

	c := Campaign{
		ID:     parsed.ID,
		Name:   parsed.Name,
		Levels: make([]Level, len(parsed.Levels)),
	}
	for i, pl := range parsed.Levels {
		c.Levels[i] = Level{
			ID:        pl.ID,
			Name:      pl.Name,
			Platforms: pl.Platforms,
			Fragments: pl.Fragments,
			Lore:      Lore(pl.Lore),
		}
	}
	return c, nil
}

var _ sim.LevelSource = (*Campaign)(nil)
