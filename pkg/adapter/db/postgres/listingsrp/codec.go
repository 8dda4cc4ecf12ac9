// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsrp

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// encodeList serializes a list of strings (feature tags or image
// references) as a JSON array. Empty lists are stored as NULL.
// HTML characters are kept unescaped, so the column text can be
// matched by free-text searches.
func encodeList(items []string) (*string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	b, err := json.MarshalNoEscape(items)
	if err != nil {
		return nil, fmt.Errorf("marshaling list: %w", err)
	}
	s := string(b)
	return &s, nil
}

// decodeList parses a JSON array of strings. NULL and blank columns
// are decoded as an empty (and non-nil) list.
func decodeList(col *string) ([]string, error) {
	if col == nil || strings.TrimSpace(*col) == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(*col), &items); err != nil {
		return nil, fmt.Errorf("unmarshaling list %q: %w", *col, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern which matches any string
// containing term. The LIKE meta-characters of term are escaped, so
// they are matched literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
