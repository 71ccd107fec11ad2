package detect

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadLabels reads the ordered label list, one label per line. Line order
// is the classifier's class order, so it must match the model the
// collaborator serves.
func LoadLabels(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	labels := make([]string, 0, 32)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	log.Info().Str("module", "detect").Int("count", len(labels)).Msg("loaded labels")
	return labels, nil
}
