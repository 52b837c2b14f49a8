package vision

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pomelo-bot/internal/domain/entity"
)

// LoadClassTable reads a labels file with one class name per line, in the
// order the model was trained with. Blank lines and lines starting with '#'
// are skipped.
func LoadClassTable(path string) (entity.ClassTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	var table entity.ClassTable
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		table = append(table, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("labels file %s contains no classes", path)
	}
	return table, nil
}
