package jsonstore

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Makepad-fr/spendo/internal/model"
)

// JSON seed file for the starting category list: a plain array of names.
// Read-only; the tracker never writes state back.

// LoadCategories reads category names from path. An empty path or a missing
// file yields model.DefaultCategoryNames. Blank entries are dropped.
func LoadCategories(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return defaults(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), nil
		}
		return nil, errors.Wrap(err, "read seed file")
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", path)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

func defaults() []string {
	return append([]string(nil), model.DefaultCategoryNames...)
}
