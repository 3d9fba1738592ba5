// Package seed loads the initial project records into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultProjects []byte

type document struct {
	Projects []record.Record `yaml:"projects"`
}

// Default returns the records the dashboard ships with.
func Default() ([]record.Record, error) {
	return Load(bytes.NewReader(defaultProjects))
}

// LoadFile reads a seed document from path.
func LoadFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML seed document and validates every record.
func Load(r io.Reader) ([]record.Record, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding seed document: %w", err)
	}
	for i, rec := range doc.Projects {
		if err := record.ValidateFields(rec.Fields, record.Candidates{}); err != nil {
			return nil, fmt.Errorf("seed project %d (%s): %w", i, rec.ProjectID, err)
		}
	}
	if doc.Projects == nil {
		doc.Projects = []record.Record{}
	}
	return doc.Projects, nil
}

// Apply inserts records in order. Records without an id get a generated
// one; ids already present in the store are skipped.
func Apply(ctx context.Context, store repository.Store, records []record.Record, logger *slog.Logger) (int, error) {
	inserted := 0
	for _, rec := range records {
		if rec.ProjectID == "" {
			id, err := store.GenerateID(ctx)
			if err != nil {
				return inserted, fmt.Errorf("generating seed id: %w", err)
			}
			rec.ProjectID = id
		}
		if _, err := store.Insert(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) {
				if logger != nil {
					logger.Warn("seed project already present", "project_id", rec.ProjectID)
				}
				continue
			}
			return inserted, fmt.Errorf("inserting seed project %s: %w", rec.ProjectID, err)
		}
		inserted++
	}
	if logger != nil {
		logger.Info("seeded projects", "count", inserted)
	}
	return inserted, nil
}
