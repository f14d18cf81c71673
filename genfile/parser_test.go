package genfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/genfile"
	"github.com/kjirou/curvedspaces/geom"
)

func identityLine() string {
	return "1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 1\n"
}

func TestParseCubicTorusGenerators(t *testing.T) {
	input := identityLine() +
		"1 0 0 0  0 1 0 0  0 0 1 0  1 0 0 1\n" +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 1 0 1\n" +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 0 1 1\n"

	f, err := genfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, geom.Flat, f.Curvature)
	require.Equal(t, 4, len(f.Matrices))
	require.True(t, f.Matrices[0].IsIdentity(0))
	require.Equal(t, genfile.HorizonDefault, f.Horizon)
}

func TestParseRejectsNonMultipleOf16(t *testing.T) {
	_, err := genfile.Parse(strings.NewReader("1 2 3 4 5"))
	require.ErrorIs(t, err, genfile.ErrMalformed)
}

func TestParseRejectsNonIdentityFirstMatrix(t *testing.T) {
	input := "2 0 0 0  0 1 0 0  0 0 1 0  0 0 0 1\n"
	_, err := genfile.Parse(strings.NewReader(input))
	require.ErrorIs(t, err, genfile.ErrMalformed)
}

func TestParseRejectsBadToken(t *testing.T) {
	input := identityLine() + "x 0 0 0  0 1 0 0  0 0 1 0  0 0 0 1\n"
	_, err := genfile.Parse(strings.NewReader(input))
	require.ErrorIs(t, err, genfile.ErrBadCharacter)
}

func TestParseRejectsInconsistentCurvature(t *testing.T) {
	input := identityLine() +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 0.5\n" +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 1.5\n"
	_, err := genfile.Parse(strings.NewReader(input))
	require.ErrorIs(t, err, genfile.ErrInconsistentCurvature)
}

func TestParseIgnoresCommentsAndBOM(t *testing.T) {
	input := "﻿# a plain comment, not a magic one\n" +
		identityLine() +
		"1 0 0 0  0 1 0 0  0 0 1 0  1 0 0 1 # trailing note\n"
	f, err := genfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, len(f.Matrices))
	require.Equal(t, genfile.HorizonDefault, f.Horizon)
}

func TestParseDetectsLargeVolumeHorizonHint(t *testing.T) {
	input := "#\tMirrored Right-Angled Dodecahedron\n" +
		identityLine() +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 2\n"
	f, err := genfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, genfile.HorizonLargeVolume, f.Horizon)
	require.Equal(t, geom.Hyperbolic, f.Curvature)
}

func TestParseDetectsSeifertWeberHorizonHint(t *testing.T) {
	input := "#\tSeifert-Weber Dodecahedral Space\n" +
		identityLine() +
		"1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 2\n"
	f, err := genfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, genfile.HorizonLargeVolume, f.Horizon)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := genfile.Parse(strings.NewReader(""))
	require.ErrorIs(t, err, genfile.ErrMalformed)
}
