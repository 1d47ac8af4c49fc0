// Package backup reads and writes the collection as a JSON object keyed by
// question name, the plain-text interchange format of the data file.
package backup

import (
	"encoding/json"
	"errors"
	"io"
	"sort"

	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

// ErrMalformed means the data could not be parsed as a collection. Callers
// recover by treating the collection as empty rather than aborting; anyone
// overwriting the file afterwards should snapshot it first.
var ErrMalformed = errors.New("backup: malformed question collection")

// Export writes the questions to w as indented JSON keyed by name.
func Export(questions []models.Question, w io.Writer) error {
	byName := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byName[q.Name] = q
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(byName)
}

// Import parses a collection previously written by Export. Questions come
// back sorted by name (JSON objects carry no order). Empty input is an
// empty collection; unparseable input is ErrMalformed.
func Import(r io.Reader) ([]models.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var byName map[string]models.Question
	if err := json.Unmarshal(data, &byName); err != nil {
		return nil, ErrMalformed
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.Question, 0, len(byName))
	for _, name := range names {
		q := byName[name]
		q.Name = name // the key wins over any embedded name field
		out = append(out, q)
	}
	return out, nil
}
