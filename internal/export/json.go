package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Laurian/scp-mcp/internal/scp"
)

// JSONExporter writes one indented JSON file per item.
type JSONExporter struct {
	OutDir string
	DryRun bool
	Force  bool
}

// Export writes the item's JSON file and returns its path.
func (e *JSONExporter) Export(it *scp.Item, report *Report) (string, error) {
	path := itemPath(e.OutDir, it, ".json")

	if !e.Force {
		if _, err := os.Stat(path); err == nil {
			report.skipped()
			return path, nil
		}
	}

	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return "", fmt.Errorf("marshal %s: %w", it.SCP, err)
	}
	data = append(data, '\n')

	if e.DryRun {
		report.exported()
		return path, nil
	}
	if err := writeFileAtomic(path, data); err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	report.exported()
	return path, nil
}
