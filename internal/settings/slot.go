package settings

import (
	"fmt"

	"github.com/tomz197/lines/internal/store"
)

// DefaultSlot is the slot used when none is named.
const DefaultSlot = "default"

// Key builds the namespaced store key for a slot.
func Key(prefix, slot string) string {
	if slot == "" {
		slot = DefaultSlot
	}
	return prefix + "_" + slot
}

// Load reads the record stored under key. It returns an error wrapping
// store.ErrNotFound when the slot is empty and ErrMalformed when it cannot be decoded.
func Load(st store.Store, key string) (Settings, error) {
	data, err := st.Get(key)
	if err != nil {
		return Settings{}, fmt.Errorf("load %s: %w", key, err)
	}
	s, err := Decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("load %s: %w", key, err)
	}
	return s, nil
}

// Save writes the full record under key.
func Save(st store.Store, key string, s Settings) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := st.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
