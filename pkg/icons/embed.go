// Package icons prepares icon assets for self-contained diagrams: embedding
// local file references as inline data URIs, and inverting dark icons for
// use on dark backgrounds via ImageMagick.
//
// The layout and assembly pipeline treats icon references as opaque
// strings; everything in this package runs before or after that pipeline
// and never inspects diagram structure.
package icons

import (
	"encoding/base64"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// fileRefPattern matches file:/// icon references inside a document's style
// attributes.
var fileRefPattern = regexp.MustCompile(`image=file://(/[^;"]+)`)

// EmbedResult reports what an embedding pass did.
type EmbedResult struct {
	Embedded []string // file paths replaced with data URIs
	Missing  []string // referenced paths that did not exist (left unchanged)
}

// CountRefs returns the number of file:/// icon references in doc.
func CountRefs(doc []byte) int {
	return len(fileRefPattern.FindAll(doc, -1))
}

// EmbedRefs rewrites every file:/// icon reference in doc to an inline,
// self-contained data URI. A missing asset is left unchanged and recorded
// in the result rather than failing the pass.
func EmbedRefs(doc []byte) ([]byte, EmbedResult) {
	var res EmbedResult
	out := fileRefPattern.ReplaceAllFunc(doc, func(m []byte) []byte {
		path := string(fileRefPattern.FindSubmatch(m)[1])
		data, err := os.ReadFile(path)
		if err != nil {
			res.Missing = append(res.Missing, path)
			return m
		}
		res.Embedded = append(res.Embedded, path)
		return []byte("image=" + DataURI(path, data))
	})
	return out, res
}

// DataURI encodes an asset as a data URI. SVG content is percent-encoded
// (readable, and safe inside a style attribute); everything else is
// base64, with the MIME type guessed from the file extension.
func DataURI(path string, data []byte) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/png"
	}
	if strings.HasPrefix(mimeType, "image/svg") {
		return "data:image/svg+xml;utf8," + encodeSVG(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// svgEscaper percent-encodes the characters that would break either the
// surrounding XML attribute or the semicolon-delimited style string.
var svgEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	"#", "%23",
	";", "%3B",
	"<", "%3C",
	">", "%3E",
	`"`, "%22",
	"'", "%27",
	"\r", "",
	"\n", "%0A",
)

func encodeSVG(data []byte) string {
	return svgEscaper.Replace(string(data))
}
