package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Mavwarf/voxa-build/internal/paths"
)

const icnsMagic = "icns"

// icnsTypes maps a variant to the OSType that carries it as PNG data.
var icnsTypes = map[Variant]string{
	{16, 1}:  "icp4",
	{32, 1}:  "icp5",
	{128, 1}: "ic07",
	{256, 1}: "ic08",
	{512, 1}: "ic09",
	{512, 2}: "ic10",
	{16, 2}:  "ic11",
	{32, 2}:  "ic12",
	{128, 2}: "ic13",
	{256, 2}: "ic14",
}

// ICNSType returns the OSType for v, or false if .icns has no slot for it.
func ICNSType(v Variant) (string, bool) {
	t, ok := icnsTypes[v]
	return t, ok
}

// ICNSEntry is one icon element: a four-byte OSType and its payload.
type ICNSEntry struct {
	Type string
	Data []byte
}

// EncodeICNS writes entries as an Apple icon image container. Lengths are
// big-endian and include the 8-byte headers.
func EncodeICNS(w io.Writer, entries []ICNSEntry) error {
	total := 8
	for _, e := range entries {
		if len(e.Type) != 4 {
			return fmt.Errorf("icns: invalid type %q", e.Type)
		}
		total += 8 + len(e.Data)
	}

	var buf bytes.Buffer
	buf.Grow(total)
	buf.WriteString(icnsMagic)
	binary.Write(&buf, binary.BigEndian, uint32(total))
	for _, e := range entries {
		buf.WriteString(e.Type)
		binary.Write(&buf, binary.BigEndian, uint32(8+len(e.Data)))
		buf.Write(e.Data)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderICNS renders every variant with an .icns slot and returns the
// encoded container.
func RenderICNS() ([]byte, error) {
	var entries []ICNSEntry
	for _, v := range Variants() {
		t, ok := ICNSType(v)
		if !ok {
			continue
		}
		data, err := EncodePNG(v)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ICNSEntry{Type: t, Data: data})
	}
	var buf bytes.Buffer
	if err := EncodeICNS(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteICNS renders the icon container to path.
func WriteICNS(path string) error {
	data, err := RenderICNS()
	if err != nil {
		return err
	}
	if err := paths.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
