package feature

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultType is the artifact type assumed whenever an ID does not specify
// one explicitly.
const DefaultType = "jar"

// ErrInvalidID is returned when a string form of an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid artifact id")

// ID holds the coordinates of an artifact.
//
// Group, Name and Version are mandatory, Classifier and Type are optional.
// An empty Type is equivalent to DefaultType, see Normalize. IDs are plain
// comparable values and can be used as map keys; callers that mix literal
// IDs with parsed ones should normalize them first so that equivalent
// coordinates compare equal.
type ID struct {
	Group      string
	Name       string
	Version    string
	Classifier string
	Type       string
}

// NewID returns a normalized ID for the given group, name and version.
func NewID(group, name, version string) ID {
	return ID{Group: group, Name: name, Version: version}.Normalize()
}

// ParseID parses the canonical string form of an ID as produced by
// ID.String:
//
//	group:name[:type[:classifier]]:version
//
// The returned ID is normalized. ParseID returns an error wrapping
// ErrInvalidID if the string does not have between three and five segments
// or if any mandatory segment is empty.
func ParseID(id string) (ID, error) {
	parts := strings.Split(id, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	parsed := ID{
		Group:   parts[0],
		Name:    parts[1],
		Version: parts[len(parts)-1],
	}
	if len(parts) > 3 {
		parsed.Type = parts[2]
	}
	if len(parts) > 4 {
		parsed.Classifier = parts[3]
	}
	if parsed.Group == "" || parsed.Name == "" || parsed.Version == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.Normalize(), nil
}

// IDFromPath parses a repository path as produced by ID.Path back into a
// normalized ID. It returns an error wrapping ErrInvalidID if the path does
// not follow the repository layout.
func IDFromPath(path string) (ID, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 4 {
		return ID{}, fmt.Errorf("%w: path %q", ErrInvalidID, path)
	}
	parsed := ID{
		Group:   strings.Join(parts[:len(parts)-3], "."),
		Name:    parts[len(parts)-3],
		Version: parts[len(parts)-2],
	}
	file := parts[len(parts)-1]
	prefix := parsed.Name + "-" + parsed.Version
	if !strings.HasPrefix(file, prefix) {
		return ID{}, fmt.Errorf("%w: file %q does not match %q", ErrInvalidID, file, prefix)
	}
	rest := file[len(prefix):]
	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 || dot == len(rest)-1 {
		return ID{}, fmt.Errorf("%w: file %q has no type suffix", ErrInvalidID, file)
	}
	parsed.Type = rest[dot+1:]
	switch mid := rest[:dot]; {
	case mid == "":
	case strings.HasPrefix(mid, "-") && len(mid) > 1:
		parsed.Classifier = mid[1:]
	default:
		return ID{}, fmt.Errorf("%w: file %q", ErrInvalidID, file)
	}
	if parsed.Group == "" || parsed.Name == "" || parsed.Version == "" {
		return ID{}, fmt.Errorf("%w: path %q", ErrInvalidID, path)
	}
	return parsed.Normalize(), nil
}

// Normalize returns the ID with an empty Type replaced by DefaultType.
// All other fields are returned unchanged.
func (id ID) Normalize() ID {
	if id.Type == "" {
		id.Type = DefaultType
	}
	return id
}

// IsZero reports whether the ID carries no coordinates at all.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Validate returns an error wrapping ErrInvalidID if any of the mandatory
// coordinates is empty.
func (id ID) Validate() error {
	if id.Group == "" || id.Name == "" || id.Version == "" {
		return fmt.Errorf("%w: %+v", ErrInvalidID, id)
	}
	return nil
}

// String returns the canonical string form of the ID:
//
//	group:name[:type[:classifier]]:version
//
// Type and Classifier are only included when they carry information, so an
// ID of the default type without a classifier renders as group:name:version.
func (id ID) String() string {
	id = id.Normalize()
	var sb strings.Builder
	sb.WriteString(id.Group)
	sb.WriteByte(':')
	sb.WriteString(id.Name)
	if id.Classifier != "" || id.Type != DefaultType {
		sb.WriteByte(':')
		sb.WriteString(id.Type)
		if id.Classifier != "" {
			sb.WriteByte(':')
			sb.WriteString(id.Classifier)
		}
	}
	sb.WriteByte(':')
	sb.WriteString(id.Version)
	return sb.String()
}

// Path returns the relative repository path of the artifact following the
// standard repository layout:
//
//	group/with/slashes/name/version/name-version[-classifier].type
//
// The path never starts with a separator and uses forward slashes on all
// platforms.
func (id ID) Path() string {
	id = id.Normalize()
	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(id.Group, ".", "/"))
	sb.WriteByte('/')
	sb.WriteString(id.Name)
	sb.WriteByte('/')
	sb.WriteString(id.Version)
	sb.WriteByte('/')
	sb.WriteString(id.Name)
	sb.WriteByte('-')
	sb.WriteString(id.Version)
	if id.Classifier != "" {
		sb.WriteByte('-')
		sb.WriteString(id.Classifier)
	}
	sb.WriteByte('.')
	sb.WriteString(id.Type)
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using the canonical string
// form, which makes IDs usable directly in JSON documents.
func (id ID) MarshalText() ([]byte, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the canonical
// string form.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
