package doctype

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
)

// makeImage returns a solid w×h RGBA image.
func makeImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 100, G: 149, B: 237, A: 255})
		}
	}
	return img
}

// makeGradient returns a w×h image whose grey level rises left to right,
// or falls when reverse is set.
func makeGradient(w, h int, reverse bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(x * 255 / w)
			if reverse {
				v = 255 - v
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

// makePNG returns a minimal valid PNG of the given dimensions.
func makePNG(w, h int) []byte {
	return encodePNG(makeImage(w, h))
}

// makeJPEG returns a minimal valid JPEG of the given dimensions.
func makeJPEG(w, h int) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, makeImage(w, h), nil); err != nil {
		panic("makeJPEG: " + err.Error())
	}
	return buf.Bytes()
}

// makeBMP returns a minimal valid BMP of the given dimensions.
func makeBMP(w, h int) []byte {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, makeImage(w, h)); err != nil {
		panic("makeBMP: " + err.Error())
	}
	return buf.Bytes()
}

// makeRidge returns a w×h image that brightens towards the vertical centre
// line and darkens after it, so its difference hash differs from both a
// rising and a falling gradient.
func makeRidge(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			d := 2*x - w
			if d < 0 {
				d = -d
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 - d*255/w)})
		}
	}
	return img
}

// withHeaderSize rewrites the IHDR dimensions of a PNG without touching its
// pixel data, giving a small file that declares a huge image.
func withHeaderSize(pngData []byte, w, h uint32) []byte {
	out := bytes.Clone(pngData)
	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc at 29
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

// withEXIF inserts an APP1 segment after the SOI marker of a JPEG carrying
// Software and an inch resolution. software must be longer than 3 bytes so
// it is stored out of line.
func withEXIF(jpegData []byte, software string, dpi uint32) []byte {
	le := binary.LittleEndian
	sw := append([]byte(software), 0)

	const entries = 4
	dataOff := uint32(8 + 2 + entries*12 + 4)

	tiff := []byte{'I', 'I', 42, 0, 8, 0, 0, 0}
	tiff = le.AppendUint16(tiff, entries)
	entry := func(tag, typ uint16, count, value uint32) {
		tiff = le.AppendUint16(tiff, tag)
		tiff = le.AppendUint16(tiff, typ)
		tiff = le.AppendUint32(tiff, count)
		tiff = le.AppendUint32(tiff, value)
	}
	entry(0x011A, 5, 1, dataOff)                  // XResolution, rational
	entry(0x011B, 5, 1, dataOff+8)                // YResolution, rational
	entry(0x0128, 3, 1, 2)                        // ResolutionUnit: inch
	entry(0x0131, 2, uint32(len(sw)), dataOff+16) // Software, ascii
	tiff = le.AppendUint32(tiff, 0)               // no next IFD
	for range 2 {
		tiff = le.AppendUint32(tiff, dpi)
		tiff = le.AppendUint32(tiff, 1)
	}
	tiff = append(tiff, sw...)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	seg := []byte{0xFF, 0xE1}
	seg = binary.BigEndian.AppendUint16(seg, uint16(len(payload)+2))
	seg = append(seg, payload...)

	out := make([]byte, 0, len(jpegData)+len(seg))
	out = append(out, jpegData[:2]...)
	out = append(out, seg...)
	return append(out, jpegData[2:]...)
}

// makePDF returns a minimal well-formed PDF with the given number of empty
// letter-size pages.
func makePDF(pages int) []byte {
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	}
	for range pages {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}
