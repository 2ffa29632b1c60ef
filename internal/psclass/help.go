package psclass

import (
	"regexp"
	"strings"

	"github.com/takumiyoshikawa/dscgen/internal/foldmap"
)

// help is a parsed comment-based help block.
type help struct {
	Synopsis    string
	Description string
	Parameters  *foldmap.Map[string]
}

var helpKeyword = regexp.MustCompile(`^\.([A-Za-z]+)(?:\s+(\S+))?\s*$`)

func parseHelp(block string) *help {
	block = strings.TrimPrefix(block, "<#")
	block = strings.TrimSuffix(block, "#>")

	h := &help{Parameters: foldmap.New[string]()}
	var section, param string
	var text []string

	flush := func() {
		body := strings.Join(text, " ")
		text = nil
		switch section {
		case "SYNOPSIS":
			h.Synopsis = body
		case "DESCRIPTION":
			h.Description = body
		case "PARAMETER":
			if param != "" {
				h.Parameters.Set(param, body)
			}
		}
	}

	found := false
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if m := helpKeyword.FindStringSubmatch(line); m != nil {
			flush()
			section = strings.ToUpper(m[1])
			param = m[2]
			found = true
			continue
		}
		if line != "" && section != "" {
			text = append(text, line)
		}
	}
	flush()

	if !found {
		return nil
	}
	return h
}

func (h *help) parameter(name string) string {
	if h == nil {
		return ""
	}
	d, _ := h.Parameters.Get(name)
	return d
}
