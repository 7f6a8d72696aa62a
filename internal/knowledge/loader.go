// Package knowledge reads the place list the chat assistant answers from.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zelig/zelig-backend/internal/domain"
)

// Logger is the subset of services.Logger used here.
type Logger interface {
	Warn(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
}

// Load reads a JSON or YAML list of places. A missing file yields an empty
// list and a warning; malformed content is an error.
func Load(path string, logger Logger) ([]domain.Place, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("knowledge base file not found, starting empty", "path", path)
		return []domain.Place{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	places, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}

	logger.Info("knowledge base loaded", "path", path, "places", len(places))
	return places, nil
}

// Parse decodes data according to ext (".json", ".yaml" or ".yml").
// Records without a name are skipped.
func Parse(data []byte, ext string) ([]domain.Place, error) {
	var raw []domain.Place
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json", "":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported knowledge base format %q", ext)
	}

	places := make([]domain.Place, 0, len(raw))
	for _, p := range raw {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}
