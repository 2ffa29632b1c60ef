package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/takumiyoshikawa/dscgen/internal/resource"
)

var scriptTemplate = template.Must(template.New("script").Parse(`# Generated by dscgen. DSC calls this script for every operation.
{{- range .Modules}}
using module ./{{.}}
{{- end}}

[CmdletBinding()]
param(
    [Parameter(Mandatory)]
    [ValidateSet({{range $i, $op := .Operations}}{{if $i}}, {{end}}'{{$op}}'{{end}})]
    [string] $Operation,

    [Parameter(Mandatory)]
    [ValidateSet({{range $i, $c := .Classes}}{{if $i}}, {{end}}'{{$c}}'{{end}})]
    [string] $ResourceType,

    [string] $InputJson
)

$ErrorActionPreference = 'Stop'

$resource = switch ($ResourceType) {
{{- range .Classes}}
    '{{.}}' { [{{.}}]::new() }
{{- end}}
}

if ($Operation -eq 'export') {
    foreach ($item in $resource.Export()) {
        $item | ConvertTo-Json -Compress -Depth 10
    }
    return
}

if ($InputJson) {
    $desired = $InputJson | ConvertFrom-Json
    foreach ($p in $desired.PSObject.Properties) {
        $resource.($p.Name) = $p.Value
    }
}

switch ($Operation) {
    'get'    { $resource.Get() | ConvertTo-Json -Compress -Depth 10 }
    'set'    { $resource.Set() }
    'test'   { @{ _inDesiredState = $resource.Test() } | ConvertTo-Json -Compress }
    'delete' { $resource.Delete() }
}
`))

type scriptData struct {
	Modules    []string
	Operations []resource.Operation
	Classes    []string
}

// ScriptModule is a source module and the resources it declares.
type ScriptModule struct {
	File      string
	Resources []resource.ResourceDescriptor
}

// RenderScript renders the pwsh adapter that script-mode manifests point at.
// One script serves every module, so class names must be unique across them.
func RenderScript(modules []ScriptModule) ([]byte, error) {
	var data scriptData
	owner := make(map[string]string)
	for _, m := range modules {
		file := filepath.Base(m.File)
		if len(m.Resources) > 0 && !slices.Contains(data.Modules, file) {
			data.Modules = append(data.Modules, file)
		}
		for _, r := range m.Resources {
			key := strings.ToLower(r.ClassName)
			if other, ok := owner[key]; ok {
				return nil, fmt.Errorf("render script: class %s is declared in both %s and %s", r.ClassName, other, file)
			}
			owner[key] = file
			data.Classes = append(data.Classes, r.ClassName)
			for _, op := range r.SupportedOperations() {
				if !resource.HasOperation(data.Operations, op) {
					data.Operations = append(data.Operations, op)
				}
			}
		}
	}
	if len(data.Classes) == 0 {
		return nil, fmt.Errorf("render script: no resources")
	}

	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render script: %w", err)
	}
	return buf.Bytes(), nil
}
