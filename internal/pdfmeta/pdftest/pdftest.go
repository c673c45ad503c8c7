// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

// Minimal returns a one page PDF 1.4 document. When info is non-nil the
// document carries an Info dictionary holding its entries as text strings.
func Minimal(info map[string]string) []byte {
	var objects []string
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	)
	if info != nil {
		objects = append(objects, infoDict(info))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := fmt.Sprintf("/Size %d /Root 1 0 R", len(objects)+1)
	if info != nil {
		trailer += fmt.Sprintf(" /Info %d 0 R", len(objects))
	}
	fmt.Fprintf(&buf, "trailer\n<< %s >>\nstartxref\n%d\n%%%%EOF\n", trailer, xref)

	return buf.Bytes()
}

// Malformed returns bytes that start like a PDF but hold no document
func Malformed() []byte {
	return []byte("%PDF-1.4\nthis file was cut short\n%%EOF\n")
}

// WriteFile writes data to name inside dir and returns the full path
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func infoDict(info map[string]string) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, "/"+k+" "+textString(info[k]))
	}
	return "<< " + strings.Join(parts, " ") + " >>"
}

func textString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			b, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
			if err != nil {
				panic(err)
			}
			return "<" + strings.ToUpper(hex.EncodeToString(b)) + ">"
		}
	}
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return "(" + r.Replace(s) + ")"
}
