// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ebook-meta/internal/metadata"
	"ebook-meta/internal/resilience"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrClosed is returned when a closed Document is used
	ErrClosed = errors.New("document is closed")

	// ErrEncrypted is returned for encrypted documents, whose strings
	// cannot be rewritten in place
	ErrEncrypted = errors.New("document is encrypted")
)

// Document is an open PDF whose Info dictionary can be read and rewritten.
// The source file stays open until Save or Close.
type Document struct {
	path string
	file *os.File
	ctx  *model.Context
}

// NewConfiguration returns the pdfcpu configuration used for metadata updates.
// It never touches the pdfcpu config directory.
func NewConfiguration() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// Open reads and validates the PDF at path. A nil conf selects NewConfiguration.
func Open(path string, conf *model.Configuration) (*Document, error) {
	if conf == nil {
		conf = NewConfiguration()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: OpOpen, Path: path, Err: err}
	}

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		f.Close()
		return nil, &FileError{Op: OpRead, Path: path, Err: err}
	}

	infoRef, info := captureInfo(ctx)

	if err := api.ValidateContext(ctx); err != nil {
		f.Close()
		return nil, &FileError{Op: OpValidate, Path: path, Err: err}
	}

	if err := restoreInfo(ctx, infoRef, info); err != nil {
		f.Close()
		return nil, &FileError{Op: OpValidate, Path: path, Err: err}
	}

	if ctx.Encrypt != nil {
		f.Close()
		return nil, &FileError{Op: OpRead, Path: path, Err: ErrEncrypted}
	}

	return &Document{path: path, file: f, ctx: ctx}, nil
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// Version returns the PDF version, e.g. "1.7"
func (d *Document) Version() string {
	if d.ctx == nil {
		return ""
	}
	return d.ctx.XRefTable.Version().String()
}

// Snapshot decodes the current Info dictionary. A document without an Info
// dictionary yields an empty snapshot.
func (d *Document) Snapshot() (Snapshot, error) {
	if d.ctx == nil {
		return nil, &FileError{Op: OpSnapshot, Path: d.path, Err: ErrClosed}
	}

	snap := Snapshot{}
	dict, err := d.infoDict()
	if err != nil {
		return nil, &FileError{Op: OpSnapshot, Path: d.path, Err: err}
	}
	for key, obj := range dict {
		value, err := d.decode(obj)
		if err != nil {
			return nil, &FileError{Op: OpSnapshot, Path: d.path, Err: fmt.Errorf("%s: %w", key, err)}
		}
		snap[key] = value
	}
	return snap, nil
}

// Apply writes the entries of u into the Info dictionary
func (d *Document) Apply(u metadata.Update) error {
	return d.Set(u.Entries())
}

// Set writes entries into the Info dictionary. An empty value removes the key.
// Keys not named in entries are left alone.
func (d *Document) Set(entries map[string]string) error {
	if d.ctx == nil {
		return &FileError{Op: OpApply, Path: d.path, Err: ErrClosed}
	}

	dict, err := d.ensureInfoDict()
	if err != nil {
		return &FileError{Op: OpApply, Path: d.path, Err: err}
	}

	for key, value := range entries {
		if value == "" {
			delete(dict, key)
			continue
		}
		obj, err := encodeText(value)
		if err != nil {
			return &FileError{Op: OpApply, Path: d.path, Err: fmt.Errorf("%s: %w", key, err)}
		}
		dict[key] = obj
	}
	return nil
}

// Save rewrites the file in place. The new content goes to a temporary file
// in the same directory which then replaces the original; the replace is
// retried while the file system reports the target busy. The document is
// closed afterwards.
//
// The pdfcpu writer stamps Producer and ModDate on every write, so the Info
// dictionary as set by the caller is reinstated by an incremental update
// section appended to the rewritten file.
func (d *Document) Save() error {
	if d.ctx == nil {
		return &FileError{Op: OpSave, Path: d.path, Err: ErrClosed}
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(d.path); err == nil {
		mode = fi.Mode().Perm()
	}

	info, err := d.infoDict()
	if err != nil {
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}
	var want types.Dict
	var infoRef types.IndirectRef
	if info != nil {
		want = cloneDict(info)
		infoRef = *d.ctx.Info
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}

	if err := api.WriteContext(d.ctx, tmp); err != nil {
		return fail(err)
	}
	if want != nil {
		if err := appendInfoUpdate(tmp, d.ctx, infoRef, want); err != nil {
			return fail(err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}

	// The source handle must be released before the file is replaced.
	d.Close()

	rename := func(ctx context.Context) error { return os.Rename(tmpName, d.path) }
	if err := resilience.RetryWithBackoff(context.Background(), resilience.FileRetryConfig(), rename); err != nil {
		os.Remove(tmpName)
		return &FileError{Op: OpSave, Path: d.path, Err: err}
	}
	return nil
}

// Close releases the source file. It is safe to call more than once.
func (d *Document) Close() error {
	d.ctx = nil
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// trappedValues are the names allowed for the Trapped entry
var trappedValues = []string{"True", "False", "Unknown"}

// captureInfo copies the Info dictionary as read. Relaxed validation drops
// an Info dictionary it cannot accept, which would lose every key on save.
// A Trapped entry written as a string is turned into the name it spells.
func captureInfo(ctx *model.Context) (*types.IndirectRef, types.Dict) {
	if ctx.Info == nil {
		return nil, nil
	}
	ref := *ctx.Info
	dict, err := ctx.DereferenceDict(ref)
	if err != nil || dict == nil {
		return nil, nil
	}
	normalizeTrapped(ctx, dict)
	return &ref, cloneDict(dict)
}

// restoreInfo reinstates the dictionary captured before validation when
// validation removed it from the trailer
func restoreInfo(ctx *model.Context, ref *types.IndirectRef, info types.Dict) error {
	if ref == nil || ctx.Info != nil {
		return nil
	}

	if cur, err := ctx.DereferenceDict(*ref); err == nil && cur != nil {
		for k, v := range info {
			cur[k] = v
		}
		ctx.Info = ref
		return nil
	}

	ir, err := ctx.IndRefForNewObject(info)
	if err != nil {
		return fmt.Errorf("failed to restore document information: %w", err)
	}
	ctx.Info = ir
	return nil
}

func normalizeTrapped(ctx *model.Context, dict types.Dict) {
	obj, ok := dict["Trapped"]
	if !ok {
		return
	}
	obj, err := ctx.Dereference(obj)
	if err != nil {
		return
	}

	var s string
	switch v := obj.(type) {
	case types.StringLiteral:
		s, err = types.StringLiteralToString(v)
	case types.HexLiteral:
		s, err = types.HexLiteralToString(v)
	default:
		return
	}
	if err != nil {
		return
	}
	for _, name := range trappedValues {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			dict["Trapped"] = types.Name(name)
			return
		}
	}
}

func (d *Document) infoDict() (types.Dict, error) {
	if d.ctx.Info == nil {
		return nil, nil
	}
	return d.ctx.DereferenceDict(*d.ctx.Info)
}

func (d *Document) ensureInfoDict() (types.Dict, error) {
	dict, err := d.infoDict()
	if err != nil {
		return nil, err
	}
	if dict != nil {
		return dict, nil
	}

	dict = types.NewDict()
	ir, err := d.ctx.IndRefForNewObject(dict)
	if err != nil {
		return nil, err
	}
	d.ctx.Info = ir
	return dict, nil
}

func (d *Document) decode(obj types.Object) (string, error) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return "", err
	}
	switch v := obj.(type) {
	case nil:
		return "", nil
	case types.StringLiteral:
		return types.StringLiteralToString(v)
	case types.HexLiteral:
		return types.HexLiteralToString(v)
	case types.Name:
		return string(v), nil
	default:
		return obj.String(), nil
	}
}

// encodeText returns a PDF text string for s: a literal string when s is
// ASCII, UTF-16BE with byte order mark otherwise.
func encodeText(s string) (types.Object, error) {
	if isASCII(s) {
		return types.StringLiteral(escapeLiteral(s)), nil
	}
	b, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return types.HexLiteral(hex.EncodeToString(b)), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
