package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/zerr"
)

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// write renders d as canonical ModuleRules source.
func write(d *domain.Descriptor) ([]byte, error) {
	if !isIdentifier(d.Name) {
		return nil, encodeError(d.Name, "module name is not an identifier")
	}

	var body bytes.Buffer
	keys := settingOrder(d)
	for _, key := range keys {
		if !isIdentifier(key) {
			return nil, encodeError(d.Name, fmt.Sprintf("setting %q is not an identifier", key))
		}
		value, _ := d.Setting(key)
		fmt.Fprintf(&body, "\t\t%s = %s;\n", key, settingLiteral(key, value))
	}

	for i, p := range d.Properties() {
		if !isIdentifier(string(p)) {
			return nil, encodeError(d.Name, fmt.Sprintf("property %q is not an identifier", p))
		}
		if i > 0 || len(keys) > 0 {
			body.WriteString("\n")
		}
		fmt.Fprintf(&body, "\t\t%s.AddRange(\n\t\t\tnew string[] {\n", p)
		for _, v := range d.List(p) {
			fmt.Fprintf(&body, "\t\t\t\t%s,\n", quote(v))
		}
		body.WriteString("\t\t\t});\n")
	}

	var out bytes.Buffer
	out.WriteString("using UnrealBuildTool;\n\n")
	fmt.Fprintf(&out, "public class %s : ModuleRules\n{\n", d.Name)
	fmt.Fprintf(&out, "\tpublic %s(ReadOnlyTargetRules Target) : base(Target)\n\t{\n", d.Name)
	out.Write(body.Bytes())
	out.WriteString("\t}\n}\n")
	return out.Bytes(), nil
}

func encodeError(module, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrDescriptorEncodeFailed, reason), "module", module)
}

// settingOrder puts PCHUsage first, then the remaining settings by name.
func settingOrder(d *domain.Descriptor) []string {
	keys := d.SettingKeys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == domain.PCHUsageSetting {
			out = append([]string{k}, out...)
			continue
		}
		out = append(out, k)
	}
	return out
}

func settingLiteral(key, value string) string {
	switch {
	case key == domain.PCHUsageSetting && isIdentifier(value):
		return "ModuleRules.PCHUsageMode." + value
	case value == "true" || value == "false":
		return value
	case numberPattern.MatchString(value):
		return value
	default:
		return quote(value)
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" || isKeyword(s) {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
