package store

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/verte-zerg/moyenne/internal/model"
)

type blobEntry struct {
	TD   string `json:"td,omitempty"`
	Exam string `json:"exam,omitempty"`
}

type blob struct {
	Marks map[string]blobEntry `json:"marks"`
}

func encodeState(state model.PersistedState) (string, error) {
	out := blob{Marks: make(map[string]blobEntry, len(state.Marks))}
	for id, entry := range state.Marks {
		out.Marks[id] = blobEntry{TD: entry.TD, Exam: entry.Exam}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeState reads whatever it can from raw. Fields of the wrong type
// become empty. ok is false when the record as a whole was unusable.
func decodeState(raw string) (model.PersistedState, bool) {
	state := model.NewState()
	if !gjson.Valid(raw) {
		return state, false
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return state, false
	}
	marks := root.Get("marks")
	if !marks.IsObject() {
		return state, !marks.Exists()
	}
	marks.ForEach(func(key, value gjson.Result) bool {
		var entry model.MarkEntry
		if value.IsObject() {
			entry.TD = stringField(value, "td")
			entry.Exam = stringField(value, "exam")
		}
		state.Marks[key.String()] = entry
		return true
	})
	return state, true
}

func stringField(obj gjson.Result, name string) string {
	v := obj.Get(name)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
