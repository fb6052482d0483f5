package render

import (
	"fmt"
	"strconv"
	"strings"

	"resumeforge/internal/errors"
)

// segment is one step of a field path. Index is -1 when the segment does not
// address a list element.
type segment struct {
	name  string
	index int
}

// parsePath splits a field path such as "experience[1].description[0]" into
// its segments. Paths are produced by the renderers, so a parse failure here
// means the caller fabricated the path by hand.
func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidPath,
			"field path is empty", nil)
	}

	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg := segment{name: part, index: -1}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, errors.NewValidationError(errors.ErrCodeInvalidPath,
					fmt.Sprintf("malformed index in path segment %q", part), nil)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, errors.NewValidationError(errors.ErrCodeInvalidPath,
					fmt.Sprintf("invalid index in path segment %q", part), err)
			}
			seg.name = part[:open]
			seg.index = idx
		}
		if seg.name == "" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidPath,
				fmt.Sprintf("empty name in path segment %q", part), nil)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func indexPath(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}

func childPath(parent, child string) string {
	return parent + "." + child
}

func pathError(path string) *errors.AppError {
	return errors.NewValidationError(errors.ErrCodeInvalidPath,
		fmt.Sprintf("no editable field at path %q", path), nil)
}

func indexError(path string, idx, length int) *errors.AppError {
	return errors.NewValidationError(errors.ErrCodeInvalidPath,
		fmt.Sprintf("index %d out of range (len %d) at path %q", idx, length, path), nil)
}
