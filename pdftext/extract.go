// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pdftext extracts plain text from PDF documents held in memory.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrEmptyDocument is returned when the PDF contains no bytes.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNoText is returned when the PDF parses but yields no text,
	// typically a scanned image without an OCR layer.
	ErrNoText = errors.New("no extractable text")
)

// Extract returns the plain text of a PDF document.
// Returns ErrEmptyDocument for zero-length input, a wrapped parse error
// for malformed documents, and ErrNoText when extraction succeeds but
// produces only whitespace.
func Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
