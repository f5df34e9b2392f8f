package snapshot

import (
	"encoding/json"

	"github.com/doc4437/pantri/internal/domain"
)

// Persisted is the wire shape of a stored snapshot. Preference fields are
// pointers so Migrate can tell an explicit false from an absent field in
// older payloads.
type Persisted struct {
	Items       []domain.Item   `json:"items"`
	SelectedIDs []string        `json:"selectedIds"`
	Preferences *persistedPrefs `json:"preferences"`
	Version     int             `json:"version"`
}

type persistedPrefs struct {
	AutoresetAfterShare *bool `json:"autoresetAfterShare"`
	ShowArchived        *bool `json:"showArchived"`
}

// Encode serializes state tagged with the current schema version.
func Encode(state domain.State) ([]byte, error) {
	autoreset := state.Preferences.AutoresetAfterShare
	showArchived := state.Preferences.ShowArchived
	return json.Marshal(Persisted{
		Items:       state.Items,
		SelectedIDs: state.SelectedIDs,
		Preferences: &persistedPrefs{
			AutoresetAfterShare: &autoreset,
			ShowArchived:        &showArchived,
		},
		Version: SchemaVersion,
	})
}

// Decode parses a raw snapshot payload. A ParseError means the blob is not
// structurally plausible and the caller should fall back to the seed state.
func Decode(payload []byte) (Persisted, error) {
	var persisted Persisted
	if err := json.Unmarshal(payload, &persisted); err != nil {
		return Persisted{}, &domain.ParseError{Cause: err}
	}
	return persisted, nil
}

// Migrate lifts a deserialized snapshot of any prior schema version into
// the current state shape. Absent fields resolve to their documented
// defaults; it never fails for structurally plausible payloads.
func Migrate(persisted Persisted) domain.State {
	// Version 1 is the first schema; per-version upgrade steps go here as
	// the schema evolves.

	state := domain.State{
		Items:       persisted.Items,
		SelectedIDs: persisted.SelectedIDs,
		Preferences: domain.Preferences{
			AutoresetAfterShare: true,
			ShowArchived:        false,
		},
	}
	if state.Items == nil {
		state.Items = []domain.Item{}
	}
	if state.SelectedIDs == nil {
		state.SelectedIDs = []string{}
	}
	if persisted.Preferences != nil {
		if persisted.Preferences.AutoresetAfterShare != nil {
			state.Preferences.AutoresetAfterShare = *persisted.Preferences.AutoresetAfterShare
		}
		if persisted.Preferences.ShowArchived != nil {
			state.Preferences.ShowArchived = *persisted.Preferences.ShowArchived
		}
	}
	return state
}
