// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Usage text layout.
const (
	keyColumnWidth = 32 // width of the "  -v, --verbose" column
	descIndent     = keyColumnWidth + 2
	descWidth      = 44 // wrap width of option descriptions
	textWidth      = 72 // wrap width of tab-indented lines; 80 columns with an 8-column tab
)

// Usage renders the help text for c: its description, one line per option
// sorted by key, its subcommands, and its detailed description. Hidden
// options are only listed when includeHidden is set.
func Usage(c *Command, includeHidden bool) string {
	var blocks []string
	if len(c.desc) > 0 {
		var b strings.Builder
		b.WriteString(c.desc[0])
		for _, line := range c.desc[1:] {
			b.WriteString("\n\t")
			b.WriteString(indentLines(wordwrap.String(line, textWidth), "\t"))
		}
		blocks = append(blocks, b.String())
	}

	opts := make([]*Option, 0, len(c.options))
	for _, o := range c.options {
		if includeHidden || !o.Hidden {
			opts = append(opts, o)
		}
	}
	slices.SortStableFunc(opts, func(a, b *Option) int {
		return cmp.Or(
			cmp.Compare(sortKey(a), sortKey(b)),
			cmp.Compare(a.Long, b.Long),
		)
	})
	if len(opts) > 0 {
		lines := make([]string, len(opts))
		for i, o := range opts {
			lines[i] = formatEntry(formatKeys(o.Short, o.Long), optionHelp(o))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	if len(c.subCommands) > 0 {
		var b strings.Builder
		b.WriteString("Commands:")
		for _, name := range c.SubCommandNames() {
			var headline string
			if d := c.subCommands[name].desc; len(d) > 0 {
				headline = d[0]
			}
			b.WriteString("\n")
			b.WriteString(formatEntry("  "+name, headline))
		}
		blocks = append(blocks, b.String())
	}

	if len(c.detailed) > 0 {
		lines := make([]string, len(c.detailed))
		for i, line := range c.detailed {
			lines[i] = "\t" + indentLines(wordwrap.String(line, textWidth), "\t")
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func sortKey(o *Option) string {
	return cmp.Or(o.Short, o.Long)
}

// formatKeys renders the key column of an option line.
func formatKeys(short, long string) string {
	switch {
	case long == "":
		return "  -" + short
	case short == "":
		return "      --" + long
	default:
		return fmt.Sprintf("  -%s, --%s", short, long)
	}
}

// formatEntry pads left to the key column and wraps help beside it. A left
// column too wide to fit moves help to the next line.
func formatEntry(left, help string) string {
	if help == "" {
		return left
	}
	pad := "\n" + strings.Repeat(" ", descIndent)
	if len(left) <= keyColumnWidth {
		pad = strings.Repeat(" ", descIndent-len(left))
	}
	return left + pad + indentLines(wordwrap.String(help, descWidth), strings.Repeat(" ", descIndent))
}

func optionHelp(o *Option) string {
	help := o.Description
	if o.Default != "" && o.Kind != Bool {
		help = strings.TrimSpace(help + fmt.Sprintf(" (default: %s)", o.Default))
	}
	if o.Required {
		help = strings.TrimSpace(help + " (required)")
	}
	return help
}

// indentLines prefixes every line after the first with indent. The caller
// places the first line.
func indentLines(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}
