// Package tablefile stores built tables in a binary msgpack file, used both
// for --binary output and for the on-disk table cache.
package tablefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"racc/internal/tables"
)

// SchemaVersion - увеличивать при изменении формата Payload.
const SchemaVersion uint16 = 1

// ErrSchema is returned when a file was written by another schema version.
var ErrSchema = errors.New("table file schema mismatch")

// ErrCorrupt is returned when a file cannot be decoded into tables.
var ErrCorrupt = errors.New("table file corrupt")

// Payload is the on-disk form of a tables.Result.
type Payload struct {
	Schema   uint16
	Encoding string
	ShiftN   int32
	ReduceN  int32
	NtBase   int32
	Arrays   []NamedArray
}

// NamedArray is one table; nil elements are absent cells.
type NamedArray struct {
	Name   string
	Values []*int32
}

// FromResult converts res, failing if a value does not fit into int32.
func FromResult(res *tables.Result) (*Payload, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}
	p := &Payload{
		Schema:   SchemaVersion,
		Encoding: string(res.Encoding),
	}
	var err error
	if p.ShiftN, err = safecast.Conv[int32](res.Sentinels.Shift); err != nil {
		return nil, fmt.Errorf("shift_n: %w", err)
	}
	if p.ReduceN, err = safecast.Conv[int32](res.Sentinels.Reduce); err != nil {
		return nil, fmt.Errorf("reduce_n: %w", err)
	}
	if p.NtBase, err = safecast.Conv[int32](res.NtBase); err != nil {
		return nil, fmt.Errorf("nt_base: %w", err)
	}
	for _, arr := range res.Arrays() {
		values := make([]*int32, len(arr.Cells))
		for i, c := range arr.Cells {
			if !c.Valid {
				continue
			}
			v, err := safecast.Conv[int32](c.Value)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", arr.Name, i, err)
			}
			values[i] = &v
		}
		p.Arrays = append(p.Arrays, NamedArray{Name: arr.Name, Values: values})
	}
	return p, nil
}

// Result rebuilds the tables stored in p.
func (p *Payload) Result() (*tables.Result, error) {
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, SchemaVersion)
	}
	enc, err := tables.ParseEncoding(p.Encoding)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]tables.Cell, len(p.Arrays))
	for _, a := range p.Arrays {
		cells := make([]tables.Cell, len(a.Values))
		for i, v := range a.Values {
			if v != nil {
				cells[i] = tables.Some(int(*v))
			}
		}
		byName[a.Name] = cells
	}
	dense := func(name string) ([]int, error) {
		cells, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing array %q", name)
		}
		vs, ok := tables.Ints(cells)
		if !ok {
			return nil, fmt.Errorf("array %q has absent entries", name)
		}
		return vs, nil
	}
	sparse := func(name string) ([]tables.Cell, error) {
		cells, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing array %q", name)
		}
		return cells, nil
	}

	res := &tables.Result{
		Encoding:  enc,
		Sentinels: tables.Sentinels{Shift: int(p.ShiftN), Reduce: int(p.ReduceN)},
		NtBase:    int(p.NtBase),
	}
	var errs []error
	must := func(err error) { errs = append(errs, err) }
	switch enc {
	case tables.EncodingFlat:
		f := &tables.FlatTables{}
		f.Action, err = dense("action_table")
		must(err)
		f.ActionPointer, err = dense("action_table_ptr")
		must(err)
		f.Goto, err = dense("goto_table")
		must(err)
		f.GotoPointer, err = dense("goto_table_ptr")
		must(err)
		res.Flat = f
	default:
		pt := &tables.PackedTables{NtBase: int(p.NtBase)}
		pt.ActionTable, err = sparse("action_table")
		must(err)
		pt.ActionCheck, err = dense("action_check")
		must(err)
		pt.ActionDefault, err = dense("action_default")
		must(err)
		pt.ActionPointer, err = sparse("action_pointer")
		must(err)
		pt.GotoTable, err = sparse("goto_table")
		must(err)
		pt.GotoCheck, err = dense("goto_check")
		must(err)
		pt.GotoPointer, err = sparse("goto_pointer")
		must(err)
		pt.GotoDefault, err = sparse("goto_default")
		must(err)
		res.Packed = pt
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return res, nil
}

// Write encodes res to w.
func Write(w io.Writer, res *tables.Result) error {
	p, err := FromResult(res)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(p)
}

// Read decodes tables written by Write.
func Read(r io.Reader) (*tables.Result, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	res, err := p.Result()
	if err != nil && !errors.Is(err, ErrSchema) {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return res, err
}

// WriteFile writes res to path through a temporary file and a rename, so
// readers never see a partial file.
func WriteFile(path string, res *tables.Result) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".racc-tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = Write(f, res); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadFile reads a table file written by WriteFile.
func ReadFile(path string) (*tables.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
