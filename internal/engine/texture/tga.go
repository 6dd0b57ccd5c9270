// Package texture loads and prepares the equirectangular globe texture.
package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types handled by the decoder.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

func init() {
	// no color map, true-color image types 2 and 10
	image.RegisterFormat("tga", "?\x00\x02", DecodeTGA, DecodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", DecodeTGA, DecodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topToBottom bool
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var raw [18]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("TGA header: %w", err)
	}

	h := tgaHeader{
		idLength:    int(raw[0]),
		imageType:   raw[2],
		width:       int(raw[12]) | int(raw[13])<<8,
		height:      int(raw[14]) | int(raw[15])<<8,
		bytesPerPix: int(raw[16]) / 8,
		topToBottom: raw[17]&0x20 != 0,
	}

	if raw[1] != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if raw[16] != 24 && raw[16] != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d", raw[16])
	}
	return h, nil
}

// DecodeTGAConfig returns the dimensions of a TGA image.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA image.
func DecodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(h.idLength); err != nil {
		return nil, fmt.Errorf("TGA id field: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	total := h.width * h.height
	px := make([]byte, h.bytesPerPix)

	put := func(i int, c color.RGBA) {
		x, y := i%h.width, i/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}
	next := func() (color.RGBA, error) {
		if _, err := io.ReadFull(br, px); err != nil {
			return color.RGBA{}, fmt.Errorf("TGA pixel data truncated: %w", err)
		}
		c := color.RGBA{R: px[2], G: px[1], B: px[0], A: 255}
		if h.bytesPerPix == 4 {
			c.A = px[3]
		}
		return c, nil
	}

	for i := 0; i < total; {
		count := 1
		repeat := false
		if h.imageType == TGATypeRLE {
			packet, err := br.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("TGA packet: %w", err)
			}
			count = int(packet&0x7F) + 1
			repeat = packet&0x80 != 0
		}

		var c color.RGBA
		for k := 0; k < count && i < total; k++ {
			if k == 0 || !repeat {
				if c, err = next(); err != nil {
					return nil, err
				}
			}
			put(i, c)
			i++
		}
	}

	return img, nil
}
