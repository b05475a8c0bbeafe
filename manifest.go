package far

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"
)

const (
	// ManifestName is the fixed path of the manifest entry. It is always the
	// first entry of a feature archive.
	ManifestName = "META-INF/MANIFEST.MF"

	// HeaderManifestVersion is the generic container format marker header.
	// Write forces it to ManifestVersion.
	HeaderManifestVersion = "Manifest-Version"
	// ManifestVersion is the container format version written to every archive.
	ManifestVersion = "1.0"

	// HeaderArchiveVersion is the format marker header identifying a feature
	// archive. Write forces it to the string form of ArchiveVersion.
	HeaderArchiveVersion = "Feature-Archive-Version"
	// ArchiveVersion is the archive format version this package produces and
	// the highest version it accepts when reading.
	ArchiveVersion = 1
)

// maxManifestLineLength is the longest a manifest line may be, in bytes and
// excluding the line terminator. Longer logical lines are continued on the
// next line behind a single leading space.
const maxManifestLineLength = 72

// Headers is the global header block of an archive, a flat mapping of header
// names to values.
type Headers map[string]string

// Clone returns a copy of the headers that can be modified without affecting
// h. A nil receiver yields an empty, writable Headers value.
func (h Headers) Clone() Headers {
	if h == nil {
		return Headers{}
	}
	return maps.Clone(h)
}

// EncodeManifest writes headers as a manifest main section: one "Name: value"
// pair per logical line, CRLF terminated, wrapped at maxManifestLineLength
// bytes, closed off by an empty line. HeaderManifestVersion is written first
// when present, all other headers follow in sorted order so that equal header
// blocks encode to identical bytes.
func EncodeManifest(w io.Writer, headers Headers) error {
	names := make([]string, 0, len(headers))
	for name := range headers {
		if name == HeaderManifestVersion {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := headers[HeaderManifestVersion]; ok {
		names = append([]string{HeaderManifestVersion}, names...)
	}

	var buf bytes.Buffer
	for _, name := range names {
		if err := validateHeader(name, headers[name]); err != nil {
			return err
		}
		writeManifestLine(&buf, name+": "+headers[name])
	}
	buf.WriteString("\r\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write manifest: %w", err)
	}
	return nil
}

// writeManifestLine writes one logical header line, inserting continuation
// breaks so that no physical line exceeds maxManifestLineLength bytes. The
// leading space of a continuation line counts towards its length.
func writeManifestLine(buf *bytes.Buffer, line string) {
	rest := []byte(line)
	limit := maxManifestLineLength
	for len(rest) > limit {
		buf.Write(rest[:limit])
		buf.WriteString("\r\n ")
		rest = rest[limit:]
		limit = maxManifestLineLength - 1
	}
	buf.Write(rest)
	buf.WriteString("\r\n")
}

func validateHeader(name, value string) error {
	if name == "" {
		return fmt.Errorf("empty header name")
	}
	if len(name) > maxManifestLineLength-2 {
		return fmt.Errorf("header name %q exceeds %d bytes", name, maxManifestLineLength-2)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("header name %q contains invalid character %q", name, c)
		}
	}
	if strings.ContainsAny(value, "\r\n\x00") {
		return fmt.Errorf("header %q value contains line breaks", name)
	}
	return nil
}

// ParseManifest reads the main section of a manifest as written by
// EncodeManifest. Continuation lines are joined, the empty line ends the
// section and everything after it is ignored. Both CRLF and LF terminated
// input is accepted.
func ParseManifest(r io.Reader) (Headers, error) {
	headers := Headers{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var last string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if last == "" {
				return nil, fmt.Errorf("manifest continuation line %q without a header", line)
			}
			headers[last] += line[1:]
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed manifest line %q", line)
		}
		value = strings.TrimPrefix(value, " ")
		headers[name] = value
		last = name
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}

	return headers, nil
}
