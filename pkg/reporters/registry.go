package reporters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// EditionConfig describes one edition of a reporter in a database file.
type EditionConfig struct {
	ShortName string `yaml:"short_name" json:"short_name"`

	// Start and End bound the edition's date range. Accepted formats are
	// "2006-01-02" or a bare year like "1940". Empty means open-ended.
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	End   string `yaml:"end,omitempty" json:"end,omitempty"`
}

// ReporterConfig describes one reporter series in a database file.
type ReporterConfig struct {
	ShortName string          `yaml:"short_name" json:"short_name"`
	Name      string          `yaml:"name" json:"name"`
	CiteType  string          `yaml:"cite_type" json:"cite_type"`
	Editions  []EditionConfig `yaml:"editions" json:"editions"`

	// Variations maps nonstandard spellings found in the wild to the
	// edition short name they stand for, e.g. "U. S." -> "U.S.".
	Variations map[string]string `yaml:"variations,omitempty" json:"variations,omitempty"`
}

// databaseFile is the top-level YAML structure of a reporters file.
type databaseFile struct {
	Reporters []ReporterConfig `yaml:"reporters"`
}

// Registry holds the loaded reporters database and answers reporter-string
// lookups during extraction. Loading and reloading are guarded by a
// read-write mutex; the extraction hot path only reads.
type Registry struct {
	mu        sync.RWMutex
	reporters []Reporter

	// editionIndex maps an edition short name to the editions published
	// under that exact string. Distinct reporters may collide on a string
	// ("P." could be Pacific Reporter or Pennsylvania State Reports),
	// which is what disambiguation exists to sort out.
	editionIndex map[string][]Edition

	// variationIndex maps a nonstandard spelling to its candidate editions.
	variationIndex map[string][]Edition

	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// NewRegistry creates an empty reporters registry.
func NewRegistry() *Registry {
	return &Registry{
		editionIndex:   make(map[string][]Edition),
		variationIndex: make(map[string][]Edition),
	}
}

// NewRegistryWithDirectory creates a registry and loads every database file
// from the directory.
func NewRegistryWithDirectory(dir string) (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a reporter and its editions to the registry.
// Malformed dates and variations that name an unknown edition are
// rejected here, before any document is processed.
func (r *Registry) Register(cfg ReporterConfig) error {
	if cfg.ShortName == "" {
		return fmt.Errorf("reporter short name cannot be empty")
	}
	if len(cfg.Editions) == 0 {
		return fmt.Errorf("reporter %q has no editions", cfg.ShortName)
	}

	reporter := NewReporter(cfg.ShortName, cfg.Name, cfg.CiteType)

	editions := make([]Edition, 0, len(cfg.Editions))
	byName := make(map[string]Edition, len(cfg.Editions))
	for _, editionCfg := range cfg.Editions {
		if editionCfg.ShortName == "" {
			return fmt.Errorf("reporter %q: edition short name cannot be empty", cfg.ShortName)
		}
		start, err := parseDate(editionCfg.Start)
		if err != nil {
			return fmt.Errorf("reporter %q edition %q: bad start date: %w",
				cfg.ShortName, editionCfg.ShortName, err)
		}
		end, err := parseDate(editionCfg.End)
		if err != nil {
			return fmt.Errorf("reporter %q edition %q: bad end date: %w",
				cfg.ShortName, editionCfg.ShortName, err)
		}
		edition := Edition{
			Reporter:  reporter,
			ShortName: editionCfg.ShortName,
			Start:     start,
			End:       end,
		}
		editions = append(editions, edition)
		byName[editionCfg.ShortName] = edition
	}

	for variant, target := range cfg.Variations {
		if _, ok := byName[target]; !ok {
			return fmt.Errorf("reporter %q: variation %q targets unknown edition %q",
				cfg.ShortName, variant, target)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reporters = append(r.reporters, reporter)
	for _, edition := range editions {
		r.editionIndex[edition.ShortName] = append(r.editionIndex[edition.ShortName], edition)
	}
	for variant, target := range cfg.Variations {
		r.variationIndex[variant] = append(r.variationIndex[variant], byName[target])
	}
	return nil
}

// Lookup returns the editions matching a reporter string exactly, and the
// editions the string could be a variation of. Both may be empty.
func (r *Registry) Lookup(reporterString string) (exact, variations []Edition) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exact = append(exact, r.editionIndex[reporterString]...)
	variations = append(variations, r.variationIndex[reporterString]...)
	return exact, variations
}

// Reporters returns all registered reporters sorted by short name.
func (r *Registry) Reporters() []Reporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reporters := make([]Reporter, len(r.reporters))
	copy(reporters, r.reporters)
	sort.Slice(reporters, func(i, j int) bool {
		return reporters[i].ShortName < reporters[j].ShortName
	})
	return reporters
}

// EditionStrings returns every exact edition string in sorted order.
func (r *Registry) EditionStrings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.editionIndex)
}

// VariationStrings returns every variation string in sorted order.
func (r *Registry) VariationStrings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.variationIndex)
}

// Count returns the number of registered reporters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reporters)
}

// LoadFile loads a single YAML database file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var file databaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	for _, cfg := range file.Reporters {
		if err := r.Register(cfg); err != nil {
			return fmt.Errorf("registering reporter: %w", err)
		}
	}
	return nil
}

// LoadDirectory loads all YAML database files from a directory.
// A missing directory loads nothing and is not an error.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, name)); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading reporters: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// Reload clears the registry and reloads from the configured directory.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.reporters = nil
	r.editionIndex = make(map[string][]Edition)
	r.variationIndex = make(map[string][]Edition)
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// Watch starts watching the database directory for changes. Created and
// modified files are loaded incrementally; removals trigger a full reload.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	// The loop gets its own references; StopWatch nils the fields and must
	// not race with the goroutine.
	go r.watchLoop(watcher, r.stopChan)

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}
	return nil
}

// StopWatch stops watching the database directory.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

// watchLoop handles file system events until StopWatch is called.
func (r *Registry) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Write == fsnotify.Write:
				// A changed file may redefine reporters already
				// registered; reload the whole directory so the
				// indexes stay consistent.
				_ = r.Reload()

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				_ = r.Reload()
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// parseDate parses "2006-01-02" or a bare year. Empty input yields nil.
func parseDate(s string) (*Date, error) {
	if s == "" {
		return nil, nil
	}

	if year, err := strconv.Atoi(s); err == nil {
		return &Date{Year: year, Month: 1, Day: 1}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected YYYY or YYYY-MM-DD, got %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("bad year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return nil, fmt.Errorf("bad month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return nil, fmt.Errorf("bad day in %q", s)
	}
	return &Date{Year: year, Month: month, Day: day}, nil
}

func sortedKeys(m map[string][]Edition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
