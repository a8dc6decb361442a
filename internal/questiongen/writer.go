package questiongen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

// WriteTier writes questions as t's tier file under dir. The encoded file
// is checked against the bank's file schema first and replaced atomically.
func WriteTier(dir string, t tier.Tier, questions []questionbank.Question) (string, error) {
	data, err := questionbank.EncodeTier(questions)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", t, err)
	}
	if err := questionbank.ValidateFile(data); err != nil {
		return "", fmt.Errorf("encoded %s file: %w", t, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, questionbank.FileName(t))
	tmp, err := os.CreateTemp(dir, ".draft-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("replace %s: %w", path, err)
	}
	return path, nil
}
