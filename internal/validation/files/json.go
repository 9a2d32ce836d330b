package files

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
)

// CheckJSONFile reports whether path is a regular file holding exactly one JSON value.
func CheckJSONFile(path string) error {
	data, err := readRegularFile(path)
	if err != nil {
		return err
	}
	return decodeSingle(data, new(any))
}

// ReadJSONCObject reads a JSON object that may contain comments and trailing
// commas, as devcontainer.json files commonly do.
func ReadJSONCObject(path string) (map[string]any, error) {
	data, err := readRegularFile(path)
	if err != nil {
		return nil, err
	}

	var object map[string]any
	if err := decodeSingle(jsonc.ToJSON(data), &object); err != nil {
		return nil, err
	}
	if object == nil {
		return nil, errors.New("expected a JSON object")
	}
	return object, nil
}

func readRegularFile(path string) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return os.ReadFile(path)
}

func decodeSingle(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file is empty")
		}
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}
