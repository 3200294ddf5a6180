package pypkg

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"

	"pkgmedic/internal/data/models"
)

var tripleQuoted = regexp.MustCompile(`(?s)"""(.*?)"""|'''(.*?)'''`)

// ParseAppConfig extracts the app.config section template from a
// config.py source. The function body is not executed; the section is
// taken as the first triple-quoted string literal, which is how the
// generated file lays it out. A config.py with no section data returns
// an AppConfig with an empty Section.
func ParseAppConfig(src string) (*models.AppConfig, error) {
	if !strings.Contains(src, "def config_section_data") {
		return nil, fmt.Errorf("config.py does not define config_section_data: %w", ErrMalformed)
	}

	m := tripleQuoted.FindStringSubmatch(src)
	if m == nil {
		return &models.AppConfig{}, nil
	}
	section := m[1]
	if section == "" {
		section = m[2]
	}
	section = strings.TrimSpace(section)
	if section == "" {
		return &models.AppConfig{}, nil
	}

	if _, err := ini.Load([]byte(section)); err != nil {
		return nil, fmt.Errorf("config.py section data is not valid config syntax: %v: %w", err, ErrMalformed)
	}

	return &models.AppConfig{Section: section}, nil
}
