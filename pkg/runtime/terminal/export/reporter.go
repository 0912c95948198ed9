package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        24,
		ValueWidth:       18,
		DescriptionWidth: 12,
	}
}

// Reporter renders reports as fixed-width tables, one per section.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, desc string) string {
			return fmt.Sprintf("| %-*s | %*v | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	tmpl := `
{{.Title}}
{{if .Period.Months}}
Period: {{.Period.Start}} to {{.Period.End}} ({{.Period.Months}} months)
Total Sales: {{printf "%.2f" .Total}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{separator}}
{{formatRow "Name" "Value" "Kind"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Description}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
