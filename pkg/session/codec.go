package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrCorrupt marks a stored session that cannot be decoded.
var ErrCorrupt = errors.New("session data is corrupt")

const (
	fieldFilePath       = "filePath"
	fieldLegacyFilePath = "file_path"
	fieldContent        = "content"
)

// Encode renders entries as a JSON array. Clean file entries carry only the
// path; inline entries carry only the content; modified file entries carry
// both.
func Encode(entries []Entry) (string, error) {
	objects := make([]string, 0, len(entries))
	for i, e := range entries {
		obj := "{}"
		var err error
		if e.FilePath != "" {
			obj, err = sjson.Set(obj, fieldFilePath, e.FilePath)
			if err != nil {
				return "", fmt.Errorf("failed to encode entry %d: %w", i, err)
			}
		}
		if e.FilePath == "" || e.Modified {
			obj, err = sjson.Set(obj, fieldContent, e.Content)
			if err != nil {
				return "", fmt.Errorf("failed to encode entry %d: %w", i, err)
			}
		}
		objects = append(objects, obj)
	}
	return "[" + strings.Join(objects, ",") + "]", nil
}

// Decode parses a stored session. Every element must be an object whose
// path is a string or null and whose content, if present, is a string;
// anything else makes the whole session corrupt. Elements with neither a
// path nor content are dropped.
func Decode(raw string) ([]Entry, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrCorrupt)
	}
	root := gjson.Parse(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrCorrupt, root.Type)
	}

	var entries []Entry
	for i, item := range root.Array() {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrCorrupt, i)
		}

		path := item.Get(fieldFilePath)
		if !path.Exists() {
			path = item.Get(fieldLegacyFilePath)
		}
		if path.Exists() && path.Type != gjson.String && path.Type != gjson.Null {
			return nil, fmt.Errorf("%w: entry %d has a non-string path", ErrCorrupt, i)
		}
		content := item.Get(fieldContent)
		if content.Exists() && content.Type != gjson.String {
			return nil, fmt.Errorf("%w: entry %d has non-string content", ErrCorrupt, i)
		}

		switch {
		case path.Type == gjson.String && path.Str != "":
			entries = append(entries, Entry{
				FilePath: path.Str,
				Content:  content.Str,
				Modified: content.Exists(),
			})
		case content.Str != "":
			entries = append(entries, Entry{Content: content.Str, Modified: true})
		}
	}
	return entries, nil
}
