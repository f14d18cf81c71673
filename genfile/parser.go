// Package genfile reads the plain-text generator file format spec §6
// describes: a BOM-tolerant, comment-aware stream of decimal floats
// representing a sequence of row-major 4x4 matrices, the first of which
// must be the identity.
package genfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kjirou/curvedspaces/geom"
)

// HorizonHint names the magic leading comments spec §6 recognizes, each
// switching the hyperbolic tiling radius to the "large volume" preset
// (spec.md's supplemented-feature list). model.Load applies the preset;
// genfile only detects it, keeping no knowledge of model's field names.
type HorizonHint int8

const (
	// HorizonDefault is returned when no magic comment is present.
	HorizonDefault HorizonHint = iota
	// HorizonLargeVolume is returned for either recognized magic comment.
	HorizonLargeVolume
)

const (
	mirroredRightAngledDodecahedron = "Mirrored Right-Angled Dodecahedron"
	seifertWeberDodecahedralSpace   = "Seifert-Weber Dodecahedral Space"
)

// bom is the UTF-8 byte-order mark, tolerated only at the very start of
// the stream (spec §6).
const bom = '\uFEFF'

// File is the parsed result: the curvature auto-detected from the
// matrices, the decoded matrices themselves (first always the identity),
// and any large-volume horizon hint found in a leading comment.
type File struct {
	Curvature geom.Curvature
	Matrices  []geom.Matrix
	Horizon   HorizonHint
}

// Parse reads r as a generator file (spec §6) and returns the decoded
// matrices, their auto-detected curvature, and any horizon hint. Every
// failure mode is one of the sentinels in errors.go.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	horizon := HorizonDefault
	var numbers []float64
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, string(bom))
			first = false
		}
		if !utf8.ValidString(line) {
			return nil, ErrWrongUnicode
		}

		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			comment := strings.TrimSpace(line[idx+1:])
			comment = strings.TrimPrefix(comment, "\t")
			comment = strings.TrimSpace(comment)
			if comment == mirroredRightAngledDodecahedron || comment == seifertWeberDodecahedralSpace {
				horizon = HorizonLargeVolume
			}
			line = line[:idx]
		}

		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadCharacter, tok)
			}
			numbers = append(numbers, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(numbers) == 0 || len(numbers)%16 != 0 {
		return nil, fmt.Errorf("%w: %d numbers is not a positive multiple of 16", ErrMalformed, len(numbers))
	}

	count := len(numbers) / 16
	matrices := make([]geom.Matrix, count)
	for i := 0; i < count; i++ {
		var m geom.Matrix
		base := i * 16
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				m.Rows[row][col] = numbers[base+row*4+col]
			}
		}
		matrices[i] = m
	}

	if !matrices[0].IsIdentity(0) {
		return nil, fmt.Errorf("%w: first matrix is not the identity", ErrMalformed)
	}

	curvature, err := classifyCurvature(matrices)
	if err != nil {
		return nil, err
	}

	return &File{Curvature: curvature, Matrices: matrices, Horizon: horizon}, nil
}

// classifyCurvature inspects M[3][3] of every non-identity matrix: all
// must classify the same way via geom.DetectCurvature, or the file is
// rejected as inconsistent (spec §6).
func classifyCurvature(matrices []geom.Matrix) (geom.Curvature, error) {
	seen := geom.None
	for _, m := range matrices[1:] {
		c := geom.DetectCurvature(m.Rows[3][3])
		if seen == geom.None {
			seen = c
			continue
		}
		if seen != c {
			return geom.None, ErrInconsistentCurvature
		}
	}
	if seen == geom.None {
		// Only the identity: curvature is ambiguous, Flat is the
		// harmless default (model.Load rejects empty/trivial groups
		// before this matters geometrically).
		return geom.Flat, nil
	}
	return seen, nil
}
