package search

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRequest builds a Request from HTTP query parameters.
//
// Supported parameters:
//   - q: search term (trimmed, may be empty; callers decide how to treat it)
//   - type: all, image or video (defaults to all)
//   - page: positive page number (defaults to 1, invalid values fall back to 1)
//
// An unknown type and a page past MaxPage are reported as errors.
func ParseRequest(queryParams map[string][]string) (Request, error) {
	req := Request{
		Type: TypeAll,
		Page: 1,
	}

	if q := queryParams["q"]; len(q) > 0 {
		req.Term = strings.TrimSpace(q[0])
	}

	if t := queryParams["type"]; len(t) > 0 {
		parsed, err := ParseType(t[0])
		if err != nil {
			return req, fmt.Errorf("parsing type: %w", err)
		}
		req.Type = parsed
	}

	if pageStr := queryParams["page"]; len(pageStr) > 0 && pageStr[0] != "" {
		if parsed, err := strconv.Atoi(pageStr[0]); err == nil && parsed > 0 {
			if parsed > MaxPage {
				return req, fmt.Errorf("page must be between 1 and %d", MaxPage)
			}
			req.Page = parsed
		}
	}

	return req, nil
}
