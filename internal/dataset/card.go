// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"go.yaml.in/yaml/v3"
)

const (
	defaultLicense  = "apache-2.0"
	defaultLanguage = "en"
	mascotURL       = "https://raw.githubusercontent.com/ioscbasotcstw/Snail/main/snail_mascot.png"
	projectURL      = "https://github.com/ioscbasotcstw/Snail"
)

// CardData describes the dataset for its card.
type CardData struct {
	// RepoID is "owner/name"; the owner is credited as the developer.
	RepoID string

	// Records is the number of rows, used for the size category.
	Records int

	// License defaults to apache-2.0.
	License string

	// Language defaults to en.
	Language string

	Role  string
	Query string
	Model string
}

// cardMeta is the YAML front matter the hub reads.
type cardMeta struct {
	License        string   `yaml:"license"`
	Language       []string `yaml:"language"`
	TaskCategories []string `yaml:"task_categories"`
	Tags           []string `yaml:"tags,omitempty"`
	SizeCategories []string `yaml:"size_categories"`
}

var cardBodyTmpl = template.Must(template.New("card").Parse(`
# Uploaded dataset

- **Developed by:** {{.Owner}}
- **License:** {{.License}}
{{- if .Model}}
- **Generated with:** {{.Model}}
{{- end}}
{{- if .Role}}
- **Expert role:** {{.Role}}
{{- end}}
{{- if .Query}}
- **Source query:** {{.Query}}
{{- end}}
- **Rows:** {{.Records}}

# Made with Snail

[<img src="{{.Mascot}}" width="200"/>]({{.Project}})
`))

// Card renders the dataset card: YAML front matter followed by Markdown.
func Card(d CardData) (string, error) {
	owner, _, ok := strings.Cut(d.RepoID, "/")
	if !ok || owner == "" {
		return "", fmt.Errorf("repository ID %q must be in the form owner/name", d.RepoID)
	}
	license := d.License
	if license == "" {
		license = defaultLicense
	}
	language := d.Language
	if language == "" {
		language = defaultLanguage
	}

	meta, err := yaml.Marshal(cardMeta{
		License:        license,
		Language:       []string{language},
		TaskCategories: []string{"text-generation"},
		Tags:           []string{"chain-of-thought"},
		SizeCategories: []string{SizeCategory(d.Records)},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling card metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	if err := cardBodyTmpl.Execute(&buf, map[string]any{
		"Owner":   owner,
		"License": license,
		"Model":   d.Model,
		"Role":    d.Role,
		"Query":   d.Query,
		"Records": d.Records,
		"Mascot":  mascotURL,
		"Project": projectURL,
	}); err != nil {
		return "", fmt.Errorf("rendering card: %w", err)
	}
	return buf.String(), nil
}

// sizeBands are the hub's size_categories labels above n<1K, indexed by the
// power of ten of the upper bound.
var sizeBands = []string{
	"1K<n<10K", "10K<n<100K", "100K<n<1M",
	"1M<n<10M", "10M<n<100M", "100M<n<1B",
	"1B<n<10B", "10B<n<100B", "100B<n<1T",
}

// SizeCategory maps a row count to the hub's size_categories label.
func SizeCategory(n int) string {
	if n < 1_000 {
		return "n<1K"
	}
	bound := 10_000
	for _, band := range sizeBands {
		if n < bound {
			return band
		}
		bound *= 10
	}
	return "n>1T"
}
