package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unismart/unismart/internal/models"
)

// Catalog is the fixed, read-only set of universities used as scoring
// targets. It is built once at startup and safe for concurrent readers.
// Iteration order is stable: universities keep insertion order (file-name
// order when loaded from disk), programs keep their in-file order.
type Catalog struct {
	universities []*models.University
	byID         map[string]*models.University
}

// New builds a catalog from a list of universities, validating required
// fields. A record missing id or name means the dataset is corrupt.
func New(universities []*models.University) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[string]*models.University, len(universities)),
	}

	for _, u := range universities {
		if err := validateUniversity(u); err != nil {
			return nil, err
		}
		if _, ok := c.byID[u.ID]; ok {
			return nil, fmt.Errorf("duplicate university id %q", u.ID)
		}
		c.universities = append(c.universities, u)
		c.byID[u.ID] = u
	}

	return c, nil
}

// LoadFromDir loads all university YAML files from a directory.
// Files are processed in sorted name order so the catalog order is
// reproducible across runs.
func LoadFromDir(dir string) (*Catalog, error) {
	slog.Info("loading catalog from directory", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var universities []*models.University
	for _, name := range files {
		u, err := loadUniversityFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		universities = append(universities, u)
	}

	c, err := New(universities)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded", "universities", len(c.universities), "programs", c.ProgramCount())
	return c, nil
}

// loadUniversityFile parses a single university YAML file
func loadUniversityFile(path string) (*models.University, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var u models.University
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &u, nil
}

// validateUniversity checks the catalog contract for one record
func validateUniversity(u *models.University) error {
	if u == nil || u.ID == "" {
		return fmt.Errorf("university id is required")
	}
	if u.Name == "" {
		return fmt.Errorf("university %q: name is required", u.ID)
	}

	seen := make(map[string]bool, len(u.Programs))
	for _, p := range u.Programs {
		if p == nil || p.ID == "" {
			return fmt.Errorf("university %q: program id is required", u.ID)
		}
		if p.Name == "" {
			return fmt.Errorf("university %q: program %q: name is required", u.ID, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("university %q: duplicate program id %q", u.ID, p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}

// List returns all universities in stable catalog order
func (c *Catalog) List() []*models.University {
	return c.universities
}

// Get returns a university by ID, or nil if not present
func (c *Catalog) Get(id string) *models.University {
	return c.byID[id]
}

// GetProgram returns a program by university and program ID
func (c *Catalog) GetProgram(universityID, programID string) *models.Program {
	u := c.byID[universityID]
	if u == nil {
		return nil
	}
	return u.GetProgram(programID)
}

// ProgramCount returns the total number of programs across all universities
func (c *Catalog) ProgramCount() int {
	n := 0
	for _, u := range c.universities {
		n += len(u.Programs)
	}
	return n
}
