package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
)

// loadState reads a JSON control state laid over the defaults for base.
// An empty path or an empty file means the defaults.
func loadState(path string, base *model.Table) (filter.ControlState, error) {
	state := filter.DefaultControls(base)
	if path == "" {
		return state, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return state, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	if err := decodeState(f, &state); err != nil {
		return state, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	return state, nil
}

func decodeState(r io.Reader, state *filter.ControlState) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(state); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return state.Validate()
}
