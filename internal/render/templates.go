// Package render formats dispatch plans with text/template and the sprig
// function library.
package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/tlcsdm/eclipse-maven-view/internal/dispatch"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
)

// PlanData is passed to plan templates.
type PlanData struct {
	Units []PlanUnit
}

// PlanUnit is one planned invocation.
type PlanUnit struct {
	ID         string
	Kind       string
	Project    string
	Target     string
	WorkingDir string
	Profiles   []string
	SkipTests  bool

	// Command is the full command line, empty when it cannot be derived.
	Command string
}

const DefaultPlanTemplate = `{{- if not .Units -}}
Nothing to run.
{{ else -}}
Planned {{ len .Units }} invocation(s):
{{ range $i, $u := .Units }}
{{ add1 $i }}. [{{ $u.Kind }}] {{ $u.Project }}: {{ $u.Target }}
{{- if $u.Profiles }}
   profiles: {{ join ", " $u.Profiles }}
{{- end }}
{{- if $u.SkipTests }}
   tests: skipped
{{- end }}
{{- if $u.Command }}
   $ {{ $u.Command }}
   in {{ $u.WorkingDir }}
{{- else }}
   (launched through its run configuration)
{{- end }}
{{ end -}}
{{ end -}}
`

// NewPlanData converts units into template data, rendering command lines
// with settings.
func NewPlanData(units []dispatch.Unit, settings maven.Settings) PlanData {
	data := PlanData{Units: make([]PlanUnit, 0, len(units))}
	for _, u := range units {
		pu := PlanUnit{
			ID:      u.ID,
			Kind:    string(u.Kind),
			Project: u.Project,
			Target:  u.Target,
		}
		if u.Request != nil {
			pu.WorkingDir = u.Request.WorkingDir
			pu.SkipTests = u.Request.SkipTests
			pu.Command = settings.CommandLine(*u.Request)
			if u.Request.Profiles != "" {
				pu.Profiles = strings.Split(u.Request.Profiles, ",")
			}
		}
		data.Units = append(data.Units, pu)
	}
	return data
}

// New parses a template with the sprig functions available.
func New(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
}

func ParseTemplateFile(fs filesystem.FileSystem, path string) (*template.Template, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := New(filepath.Base(path), string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tmpl, nil
}

func ExecuteTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Plan renders data with the default plan template.
func Plan(data PlanData) (string, error) {
	tmpl, err := New("plan", DefaultPlanTemplate)
	if err != nil {
		return "", err
	}
	return ExecuteTemplate(tmpl, data)
}
