package capture

import (
	"fmt"
	"io"

	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// Stream is the decoded output of one protocol run.
type Stream struct {
	Snapshots map[string]*snapshot.Snapshot
	// Status is the exit status of the sourced script; valid when HasStatus.
	Status    int
	HasStatus bool
}

// Snapshot returns the snapshot captured under label, or a CAPTURE error
// when the protocol never completed that capture point.
func (s *Stream) Snapshot(label string) (*snapshot.Snapshot, error) {
	snap, ok := s.Snapshots[label]
	if !ok {
		return nil, errors.Newf(errors.ErrCapture, "no %q snapshot in capture stream", label)
	}
	return snap, nil
}

// Decode reads a capture stream. Any framing violation is a CAPTURE error.
// An incomplete trailing record is reported, but snapshots that were closed
// before it are still returned so callers can tell which capture point was
// lost.
func Decode(r io.Reader) (*Stream, error) {
	d := &decoder{
		fr:     newFieldReader(r),
		stream: &Stream{Snapshots: make(map[string]*snapshot.Snapshot)},
	}
	if err := d.run(); err != nil {
		return d.stream, errors.Wrap(err, errors.ErrCapture, "malformed capture stream")
	}
	if d.cur != nil {
		return d.stream, errors.Newf(errors.ErrCapture, "capture %q was never closed", d.curLabel)
	}
	return d.stream, nil
}

type decoder struct {
	fr       *fieldReader
	stream   *Stream
	cur      *snapshot.Builder
	curLabel string
}

func (d *decoder) run() error {
	for {
		tag, err := d.fr.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := d.record(tag); err != nil {
			return fmt.Errorf("record %q: %w", tag, err)
		}
	}
}

func (d *decoder) record(tag string) error {
	switch tag {
	case "begin":
		label, err := d.fr.must()
		if err != nil {
			return err
		}
		if d.cur != nil {
			return fmt.Errorf("capture %q opened inside %q", label, d.curLabel)
		}
		if _, seen := d.stream.Snapshots[label]; seen {
			return fmt.Errorf("capture %q appears twice", label)
		}
		d.cur, d.curLabel = snapshot.NewBuilder(label), label
		return nil

	case "end":
		label, err := d.fr.must()
		if err != nil {
			return err
		}
		if d.cur == nil || label != d.curLabel {
			return fmt.Errorf("end of %q without matching begin", label)
		}
		d.stream.Snapshots[label] = d.cur.Build()
		d.cur, d.curLabel = nil, ""
		return nil

	case "status":
		n, err := d.fr.nextInt()
		if err != nil {
			return err
		}
		d.stream.Status, d.stream.HasStatus = n, true
		return nil
	}

	if d.cur == nil {
		return fmt.Errorf("entry outside of a capture")
	}

	switch tag {
	case "v":
		name, exported, err := d.header()
		if err != nil {
			return err
		}
		value, err := d.fr.must()
		if err != nil {
			return err
		}
		return d.cur.AddVariable(snapshot.Variable{Name: name, Kind: snapshot.KindScalar, Exported: exported, Value: value})

	case "a", "A":
		name, exported, err := d.header()
		if err != nil {
			return err
		}
		n, err := d.fr.nextInt()
		if err != nil {
			return err
		}
		kind := snapshot.KindArray
		if tag == "A" {
			kind = snapshot.KindAssoc
			n *= 2
		}
		elems := make([]string, 0, min(n, 1024))
		for i := 0; i < n; i++ {
			e, err := d.fr.must()
			if err != nil {
				return err
			}
			elems = append(elems, e)
		}
		return d.cur.AddVariable(snapshot.Variable{Name: name, Kind: kind, Exported: exported, Elements: elems})

	case "f":
		name, err := d.fr.must()
		if err != nil {
			return err
		}
		return d.cur.AddFunction(name)

	case "l":
		name, err := d.fr.must()
		if err != nil {
			return err
		}
		def, err := d.fr.must()
		if err != nil {
			return err
		}
		return d.cur.AddAlias(snapshot.Alias{Name: name, Definition: def})
	}

	return fmt.Errorf("unknown record")
}

// header reads the name and flags fields shared by variable records.
func (d *decoder) header() (string, bool, error) {
	name, err := d.fr.must()
	if err != nil {
		return "", false, err
	}
	flags, err := d.fr.must()
	if err != nil {
		return "", false, err
	}
	switch flags {
	case "":
		return name, false, nil
	case "x":
		return name, true, nil
	}
	return "", false, fmt.Errorf("variable %q has unknown flags %q", name, flags)
}
