package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte) (map[string]any, error)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var decoders = map[string]decodeFunc{
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
}

// Path resolves name against basePath. Absolute names are returned unchanged.
func Path(basePath, name string) string {
	if filepath.IsAbs(name) || basePath == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(basePath, name)
}

// LoadFile reads and flattens the settings file basePath/name.
// The decoder is chosen by file extension.
func LoadFile(basePath, name string) (*MemorySource, error) {
	path := Path(basePath, name)

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fileError(ErrUnsupportedFormat, path, nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fileError(ErrFileNotFound, path, nil)
		}
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fileError(ErrParse, path, err)
	}

	values := make(map[string]string)
	flatten("", doc, values)
	return NewMemorySource(values), nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level object")
	}
	return doc, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeTOML(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// flatten writes every scalar in node to out under its colon-joined path.
// Null values and empty containers produce no keys.
func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(joinPrefix(prefix, k), v[k], out)
		}
	case map[any]any:
		for k, child := range v {
			flatten(joinPrefix(prefix, fmt.Sprint(k)), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(joinPrefix(prefix, strconv.Itoa(i)), child, out)
		}
	case nil:
	default:
		if prefix != "" {
			out[prefix] = formatScalar(v)
		}
	}
}

func joinPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + KeyDelimiter + key
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
