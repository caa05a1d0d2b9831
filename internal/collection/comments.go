// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collection

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadComments reads a JSON file mapping source base names to the shared
// comment of their merged collection. A missing file is not an error; it
// yields an empty map, and sources without an entry merge with an empty
// comment.
func LoadComments(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading comments file %s: %w", path, err)
	}

	comments := make(map[string]string)
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("parsing comments file %s: %w", path, err)
	}
	return comments, nil
}
