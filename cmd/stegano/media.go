package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/image/bmp"
)

type medium int

const (
	mediumText medium = iota
	mediumImage
	mediumAudio
)

func mediumOf(path string) medium {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp":
		return mediumImage
	case ".wav":
		return mediumAudio
	default:
		return mediumText
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Decode(f)
	default:
		return png.Decode(f)
	}
}

// saveImage writes img in the lossless format matching the extension.
// Lossy formats would destroy the embedded bits. So can alpha: the bits
// live in premultiplied RGBA channel bytes, and PNG stores non-opaque
// images as NRGBA, so only opaque carriers are guaranteed to survive
// the save.
func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Encode(f, img)
	case ".png":
		return png.Encode(f, img)
	default:
		return fmt.Errorf("unsupported image output format %q", filepath.Ext(path))
	}
}

func loadWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(dec.BitDepth)
	}
	return buf, nil
}

func saveWAV(path string, buf *audio.IntBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
