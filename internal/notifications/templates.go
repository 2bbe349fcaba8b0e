package notifications

import "text/template"

// Templates are defined in name:subject / name:body pairs, where name matches
// the notification kind.
var tierChangeTemplates = template.Must(template.New("notifications").Parse(`
{{define "tier_change:subject"}}Customer tier change: {{.Name}} is now {{.NewLevel}}{{end}}

{{define "tier_change:body"}}Customer {{.Name}} <{{.Email}}> moved from {{.OldLevel}} to {{.NewLevel}}.
{{if .TagsAdded}}New tags: {{range $i, $tag := .TagsAdded}}{{if $i}}, {{end}}{{$tag}}{{end}}.{{end}}
This change was applied automatically from booking history.{{end}}
`))
