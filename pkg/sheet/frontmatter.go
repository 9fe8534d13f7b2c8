// SPDX-License-Identifier: MPL-2.0

package sheet

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// frontmatterDelim delimits the optional TOML frontmatter block.
const frontmatterDelim = "+++"

// FrontmatterError is returned when a frontmatter block is present but
// malformed (unterminated delimiter or invalid TOML).
type FrontmatterError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FrontmatterError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid sheet frontmatter: %v", e.Err)
	}
	return fmt.Sprintf("invalid sheet frontmatter in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FrontmatterError) Unwrap() error { return e.Err }

// splitFrontmatter separates an optional leading +++ TOML block from the
// markdown body. bodyLine is the 1-based line number at which the body starts
// in the original source, so entry line numbers stay accurate.
func splitFrontmatter(src []byte) (meta Metadata, body []byte, bodyLine int, err error) {
	lines := strings.SplitAfter(string(src), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontmatterDelim {
		return Metadata{}, src, 1, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontmatterDelim {
			end = i
			break
		}
	}
	if end == -1 {
		return Metadata{}, nil, 0, fmt.Errorf("unterminated %s frontmatter block", frontmatterDelim)
	}

	block := strings.Join(lines[1:end], "")
	if err := toml.Unmarshal([]byte(block), &meta); err != nil {
		return Metadata{}, nil, 0, err
	}

	body = []byte(strings.Join(lines[end+1:], ""))
	return meta, body, end + 2, nil
}
