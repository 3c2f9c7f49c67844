package capture

import (
	"bufio"
	"io"
	"strconv"

	"github.com/fezjo/basrs/pkg/snapshot"
)

// Encode writes snap in the protocol's framing. It produces the same bytes
// the bash routine would for the same session state, which makes it the
// reference for decoder tests and for replaying a recorded capture.
func Encode(w io.Writer, snap *snapshot.Snapshot) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	e.field("begin", snap.Label())
	for _, v := range snap.Variables() {
		flags := ""
		if v.Exported {
			flags = "x"
		}
		switch v.Kind {
		case snapshot.KindScalar:
			e.field("v", v.Name, flags, v.Value)
		case snapshot.KindArray:
			e.field("a", v.Name, flags, strconv.Itoa(len(v.Elements)))
			e.field(v.Elements...)
		case snapshot.KindAssoc:
			e.field("A", v.Name, flags, strconv.Itoa(len(v.Elements)/2))
			e.field(v.Elements...)
		}
	}
	for _, f := range snap.Functions() {
		e.field("f", f)
	}
	for _, a := range snap.Aliases() {
		e.field("l", a.Name, a.Definition)
	}
	e.field("end", snap.Label())

	if e.err != nil {
		return e.err
	}
	return bw.Flush()
}

// EncodeStatus writes the status record that closes a protocol run.
func EncodeStatus(w io.Writer, status int) error {
	if err := writeField(w, "status"); err != nil {
		return err
	}
	return writeField(w, strconv.Itoa(status))
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) field(values ...string) {
	for _, v := range values {
		if e.err != nil {
			return
		}
		e.err = writeField(e.w, v)
	}
}
