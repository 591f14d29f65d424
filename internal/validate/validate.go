// Package validate checks candidate photo files before any network activity.
// Checks run cheapest-first and short-circuit on the first failure: existence,
// size bounds, extension allow-list, then the binary signature read.
package validate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
)

// DefaultMaxFileSize is the upload size limit when none is configured
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MiB

// Result is the outcome of validating a single file.
// A Result with IsValid=false must stop the pipeline before any network call.
type Result struct {
	IsValid       bool
	ErrorMessage  string
	FileSizeBytes int64
	Extension     string // normalized: lowercase, no leading dot
	ContentType   string // derived from the extension for multipart parts
}

// Validator validates photo files against size and format constraints
type Validator struct {
	maxFileSize int64
}

// New creates a validator with the given size limit.
// maxFileSize <= 0 falls back to DefaultMaxFileSize.
func New(maxFileSize int64) *Validator {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Validator{maxFileSize: maxFileSize}
}

// allowedExtensions maps supported extensions to their multipart content type
var allowedExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Validate runs all checks against the file at path.
// It never touches the network.
func (v *Validator) Validate(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return invalid(fmt.Sprintf("file not found: %s", path))
		}
		return invalid(fmt.Sprintf("cannot access file: %v", err))
	}
	if info.IsDir() {
		return invalid(fmt.Sprintf("%s is a directory, not a file", path))
	}

	size := info.Size()
	if size == 0 {
		return invalid("file is empty")
	}
	if size > v.maxFileSize {
		return invalid(fmt.Sprintf("file is too large: %s exceeds the %s limit",
			units.BytesSize(float64(size)), units.BytesSize(float64(v.maxFileSize))))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return invalid(fmt.Sprintf("unsupported file type %q (supported: jpg, jpeg, png, gif, webp)", ext))
	}

	if err := checkSignature(path, ext); err != nil {
		return invalid(err.Error())
	}

	return Result{
		IsValid:       true,
		FileSizeBytes: size,
		Extension:     ext,
		ContentType:   contentType,
	}
}

// checkSignature reads the file's leading bytes and confirms they match the
// signature expected for the declared extension.
func checkSignature(path string, ext string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %v", err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := f.Read(header)
	if err != nil {
		return fmt.Errorf("cannot read file header: %v", err)
	}
	header = header[:n]

	if !signatureMatches(header, ext) {
		return fmt.Errorf("file appears corrupted or is not a valid %s image", ext)
	}
	return nil
}

func signatureMatches(header []byte, ext string) bool {
	switch ext {
	case "jpg", "jpeg":
		return len(header) >= 3 && bytes.HasPrefix(header, []byte{0xFF, 0xD8, 0xFF})
	case "png":
		return len(header) >= 4 && bytes.HasPrefix(header, []byte{0x89, 0x50, 0x4E, 0x47})
	case "gif":
		return len(header) >= 6 &&
			(bytes.HasPrefix(header, []byte("GIF87a")) || bytes.HasPrefix(header, []byte("GIF89a")))
	case "webp":
		// RIFF....WEBP with WEBP at byte offset 8
		return len(header) >= 12 &&
			bytes.HasPrefix(header, []byte("RIFF")) &&
			bytes.Equal(header[8:12], []byte("WEBP"))
	default:
		// The allow-list already filtered unknown extensions
		return true
	}
}

func invalid(msg string) Result {
	return Result{IsValid: false, ErrorMessage: msg}
}
