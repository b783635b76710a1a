package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvCatalog names the environment variable that points at a catalog file.
const EnvCatalog = "TOOLSHUB_CATALOG"

// ErrNoCatalog is returned when no catalog source is available at all.
var ErrNoCatalog = errors.New("no catalog source configured")

// rawCatalog mirrors the YAML document before normalization.
type rawCatalog struct {
	Title     string      `yaml:"title"`
	Divisions []string    `yaml:"divisions"`
	Tools     []rawRecord `yaml:"tools"`
}

type rawRecord struct {
	Name        string      `yaml:"name"`
	Division    rawDivision `yaml:"division"`
	Type        string      `yaml:"type"`
	Description string      `yaml:"description"`
	URL         string      `yaml:"url"`
	Repo        string      `yaml:"repo"`
}

// rawDivision accepts both the legacy single-string division and the list
// form. The legacy form is upgraded here and nowhere else.
type rawDivision struct {
	tags    []string
	legacy  bool
	invalid bool
}

func (d *rawDivision) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil
		}
		d.tags = []string{node.Value}
		d.legacy = true
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				d.invalid = true
				continue
			}
			d.tags = append(d.tags, item.Value)
		}
	default:
		d.invalid = true
	}
	return nil
}

// Resolve picks the catalog source: an explicit path, then $TOOLSHUB_CATALOG,
// then the embedded default document.
func Resolve(path string, embedded []byte, logger *zap.Logger) (*Catalog, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvCatalog))
	}
	if path != "" {
		return LoadFile(path, logger)
	}
	if len(embedded) == 0 {
		return nil, ErrNoCatalog
	}
	return Parse(embedded, "embedded:catalog.yaml", logger)
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, errors.Join(ErrNoCatalog, err))
	}
	return Parse(data, path, logger)
}

// Parse decodes a catalog document. Bad records are repaired with display
// defaults and logged; only malformed YAML is an error.
func Parse(data []byte, source string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("source", source))

	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", source, err)
	}

	records := make([]Record, 0, len(raw.Tools))
	for i, rt := range raw.Tools {
		records = append(records, normalizeRecord(i, rt, logger))
	}

	c := New(raw.Title, raw.Divisions, records)
	c.source = source
	c.raw = append([]byte(nil), data...)

	if len(raw.Divisions) > 0 {
		for _, r := range c.records {
			for _, tag := range r.Division {
				if !c.divisions.Contains(tag) {
					logger.Warn("division not in enumeration",
						zap.String("tool", r.Name), zap.String("division", tag))
				}
			}
		}
	}

	logger.Debug("catalog loaded",
		zap.Int("tools", len(c.records)), zap.Strings("divisions", c.divisions))
	return c, nil
}

func normalizeRecord(index int, rt rawRecord, logger *zap.Logger) Record {
	r := Record{
		Name:        strings.TrimSpace(rt.Name),
		Division:    NewDivisions(rt.Division.tags...),
		Type:        strings.TrimSpace(rt.Type),
		Description: strings.TrimSpace(rt.Description),
		URL:         strings.TrimSpace(rt.URL),
		Repo:        strings.TrimSpace(rt.Repo),
	}
	if r.Name == "" {
		logger.Warn("tool has no name", zap.Int("index", index))
		r.Name = UntitledName
	}
	if rt.Division.invalid {
		logger.Warn("division must be a string or a list of strings",
			zap.String("tool", r.Name))
	}
	if rt.Division.legacy {
		logger.Debug("upgraded single-string division", zap.String("tool", r.Name))
	}
	if len(r.Division) == 0 {
		logger.Warn("tool has no division", zap.String("tool", r.Name))
	}
	return r
}
