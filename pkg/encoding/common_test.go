package encoding

import (
	"encoding/json"
	"os"
	"testing"
)

type testMessageJSON struct {
	Name string
	Age  uint
}

const (
	testMessageJSONString = `{"Name":"George","Age":67}`
	testMessageJSONName   = "George"
	testMessageJSONAge    = 67
)

func TestLoadAndUnmarshalNonExistentPath(t *testing.T) {
	if !os.IsNotExist(LoadAndUnmarshal("/this/does/not/exist", nil)) {
		t.Error("expected LoadAndUnmarshal to pass through non-existence errors")
	}
}

func TestLoadAndUnmarshalDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := LoadAndUnmarshal(dir, nil); err == nil {
		t.Error("expected LoadAndUnmarshal to fail for a directory")
	}
}

func TestLoadAndUnmarshalJSON(t *testing.T) {
	path := writeTempFile(t, testMessageJSONString)
	defer os.Remove(path)

	value := &testMessageJSON{}
	if err := LoadAndUnmarshal(path, func(data []byte) error {
		return json.Unmarshal(data, value)
	}); err != nil {
		t.Fatal("LoadAndUnmarshal failed:", err)
	}
	if value.Name != testMessageJSONName || value.Age != testMessageJSONAge {
		t.Error("unmarshaled value mismatch:", value)
	}
}

func TestMarshalAndSaveJSON(t *testing.T) {
	path := writeTempFile(t, "")
	defer os.Remove(path)

	value := &testMessageJSON{Name: testMessageJSONName, Age: testMessageJSONAge}
	if err := MarshalAndSave(path, func() ([]byte, error) {
		return json.Marshal(value)
	}); err != nil {
		t.Fatal("MarshalAndSave failed:", err)
	}

	roundTripped := &testMessageJSON{}
	if err := LoadAndUnmarshal(path, func(data []byte) error {
		return json.Unmarshal(data, roundTripped)
	}); err != nil {
		t.Fatal("round-trip LoadAndUnmarshal failed:", err)
	}
	if *roundTripped != *value {
		t.Error("round-tripped value mismatch:", roundTripped, "!=", value)
	}
}

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "archivefs_encoding")
	if err != nil {
		t.Fatal("unable to create temporary file:", err)
	}
	if _, err := file.WriteString(contents); err != nil {
		t.Fatal("unable to write temporary file:", err)
	}
	if err := file.Close(); err != nil {
		t.Fatal("unable to close temporary file:", err)
	}
	return file.Name()
}
