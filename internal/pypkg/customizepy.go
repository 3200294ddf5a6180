package pypkg

import (
	"encoding/json"
	"fmt"
	"os"

	"pkgmedic/internal/data/models"
)

// ParseImportDefinition reads the package's import definition. Newer
// packages carry it as util/data/export.res; older ones embed it as a
// triple-quoted JSON literal in util/customize.py. The export.res form
// is preferred when both exist.
func ParseImportDefinition(exportResPath, customizePyPath string) (*models.ImportDefinition, error) {
	if raw, err := os.ReadFile(exportResPath); err == nil {
		def, jerr := decodeImportDefinition(raw)
		if jerr != nil {
			return nil, fmt.Errorf("ERROR: export.res holds an invalid import definition: %v: %w", jerr, ErrMalformed)
		}
		def.Source = "export.res"
		return def, nil
	}

	raw, err := os.ReadFile(customizePyPath)
	if err != nil {
		return nil, fmt.Errorf("ERROR: no import definition found, customize.py is unreadable: %v: %w", err, ErrMalformed)
	}

	m := tripleQuoted.FindStringSubmatch(string(raw))
	if m == nil {
		return nil, fmt.Errorf("ERROR: customize.py does not embed an import definition: %w", ErrMalformed)
	}
	body := m[1]
	if body == "" {
		body = m[2]
	}

	def, jerr := decodeImportDefinition([]byte(body))
	if jerr != nil {
		return nil, fmt.Errorf("ERROR: customize.py embeds an invalid import definition: %v: %w", jerr, ErrMalformed)
	}
	def.Source = "customize.py"
	return def, nil
}

func decodeImportDefinition(raw []byte) (*models.ImportDefinition, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("import definition is empty")
	}
	return &models.ImportDefinition{Raw: body}, nil
}
