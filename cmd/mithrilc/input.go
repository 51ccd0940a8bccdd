package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// readDescription reads the description document from path, or from
// stdin when path is "-".
func readDescription(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.Wrap(err, "reading description from stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "reading description file %q", path)
}

// readStaticInputs reads the --static-inputs override file, a plain JSON
// object mapping external keys to concrete dim lists. An empty path is not
// an error: it just means no override.
func readStaticInputs(path string) (map[string][]int, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading static-inputs file %q", path)
	}
	var shapes map[string][]int
	if err := json.Unmarshal(data, &shapes); err != nil {
		return nil, errors.Wrapf(err, "parsing static-inputs file %q", path)
	}
	return shapes, nil
}
