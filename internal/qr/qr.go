// Package qr writes a QR code image for a URL together with a text file
// holding the same URL.
package qr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	ImageName   = "qr.png"
	TextName    = "url.txt"
	DefaultSize = 256
	PromptText  = "Enter the URL to convert:"
)

// ErrEmptyURL is returned when there is nothing to encode.
var ErrEmptyURL = errors.New("empty url")

// Artifact lists the files written by Generate.
type Artifact struct {
	ImagePath string
	TextPath  string
}

// Generate encodes url as a PNG QR code of size pixels and writes it, plus the
// URL itself, into dir.
func Generate(url, dir string, size int) (Artifact, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Artifact{}, ErrEmptyURL
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to encode qr code: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("failed to create output dir: %w", err)
	}

	art := Artifact{
		ImagePath: filepath.Join(dir, ImageName),
		TextPath:  filepath.Join(dir, TextName),
	}
	if err := os.WriteFile(art.ImagePath, png, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("failed to write %s: %w", art.ImagePath, err)
	}
	if err := os.WriteFile(art.TextPath, []byte(url), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("failed to write %s: %w", art.TextPath, err)
	}
	return art, nil
}

// Prompt asks for a URL on out and reads one line from in. An empty answer
// (or EOF) yields def.
func Prompt(in io.Reader, out io.Writer, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(out, "%s (%s) ", PromptText, def)
	} else {
		fmt.Fprintf(out, "%s ", PromptText)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return def, nil
}
