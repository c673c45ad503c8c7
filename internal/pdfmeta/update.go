// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrNoStartXRef is returned when a written file carries no startxref marker
var ErrNoStartXRef = errors.New("startxref not found")

// tailSize bounds how far from the end the startxref marker is searched for
const tailSize = 2048

var startXRefPattern = regexp.MustCompile(`startxref\s+(\d+)\s+%%EOF\s*$`)

func cloneDict(d types.Dict) types.Dict {
	out := types.NewDict()
	for k, v := range d {
		out[k] = v
	}
	return out
}

// lastStartXRef returns the offset named by the final startxref marker of f
func lastStartXRef(f *os.File) (int64, int64, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, err
	}
	n := int64(tailSize)
	if size < n {
		n = size
	}
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, size-n); err != nil && err != io.EOF {
		return 0, 0, err
	}
	m := startXRefPattern.FindSubmatch(buf)
	if m == nil {
		return 0, 0, ErrNoStartXRef
	}
	prev, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return prev, size, nil
}

// appendInfoUpdate appends an update section to f that redefines the Info
// object ref as info.
func appendInfoUpdate(f *os.File, ctx *model.Context, ref types.IndirectRef, info types.Dict) error {
	prev, end, err := lastStartXRef(f)
	if err != nil {
		return err
	}

	objNr := ref.ObjectNumber.Value()
	genNr := ref.GenerationNumber.Value()

	size := objNr + 1
	if ctx.Size != nil && *ctx.Size > size {
		size = *ctx.Size
	}

	var buf bytes.Buffer
	buf.WriteString("\n")
	objOffset := end + int64(buf.Len())
	fmt.Fprintf(&buf, "%d %d obj\n%s\nendobj\n", objNr, genNr, info.PDFString())

	xrefOffset := end + int64(buf.Len())
	fmt.Fprintf(&buf, "xref\n%d 1\n%010d %05d n \n", objNr, objOffset, genNr)

	trailer := []string{
		fmt.Sprintf("/Size %d", size),
		fmt.Sprintf("/Prev %d", prev),
		"/Info " + ref.PDFString(),
	}
	if ctx.Root != nil {
		trailer = append(trailer, "/Root "+ctx.Root.PDFString())
	}
	if len(ctx.ID) > 0 {
		trailer = append(trailer, "/ID "+ctx.ID.PDFString())
	}
	fmt.Fprintf(&buf, "trailer\n<<%s>>\nstartxref\n%d\n%%%%EOF\n", strings.Join(trailer, " "), xrefOffset)

	_, err = f.Write(buf.Bytes())
	return err
}
