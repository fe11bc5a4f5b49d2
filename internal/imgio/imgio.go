// Package imgio holds small decode/load helpers shared by the CLI and the
// composer.
package imgio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Decode parses raw image bytes (PNG/JPEG and whatever else imaging
// registers) into an in-memory image.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Load reads image bytes from a local path or an http(s) URL.
func Load(pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return fetch(pathOrURL)
	}
	data, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pathOrURL, err)
	}
	return data, nil
}

func fetch(url string) ([]byte, error) {
	client := http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w", url, errors.New(resp.Status))
	}
	return io.ReadAll(resp.Body)
}
