package rusage

import (
	"regexp"
	"strings"
)

// variablePattern matches ${name} and ${name arg...} template variables.
var variablePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand replaces template variables with values from s. Supported forms:
//   - ${slot_name} - the field value, without padding
//   - ${title slot_name} - the field title
//   - ${line slot_name} - the full formatted line
//
// Empty fields follow opts.Policy; a skipped field expands to nothing.
// Unknown variables are left in place.
func Expand(template string, s Snapshot, opts FormatOptions) string {
	opts = opts.withDefaults()
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := strings.Fields(match[2 : len(match)-1])
		if len(parts) == 0 {
			return match
		}
		verb, name := "", parts[0]
		if len(parts) == 2 {
			verb, name = parts[0], parts[1]
		} else if len(parts) > 2 {
			return match
		}
		slot, ok := SlotByName(name)
		if !ok {
			return match
		}
		f := opts.Registry.Field(slot)
		switch verb {
		case "":
			v, _ := FormatField(s, f, opts.Policy)
			return strings.TrimSpace(v)
		case "title":
			return f.Title
		case "line":
			lines := formatLines(s, []Field{f}, opts)
			if len(lines) == 0 {
				return ""
			}
			return lines[0]
		}
		return match
	})
}
