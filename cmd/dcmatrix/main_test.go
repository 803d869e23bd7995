package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nozzle/dcor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `a,b,kind
1,2.5,red
2,NA,blue
3,7,red
4,8.5,
5,9,blue
6,1,red
`

func TestLoadCSV(t *testing.T) {
	m, err := loadCSV(strings.NewReader(sampleCSV), true)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Rows())
	assert.Equal(t, []string{"a", "b", "kind"}, m.Names())

	b := m.Column(1)
	assert.False(t, b.IsCategorical())
	assert.True(t, math.IsNaN(b.Values[1]))
	assert.Equal(t, 8.5, b.Values[3])

	kind := m.Column(2)
	require.True(t, kind.IsCategorical())
	assert.Equal(t, []string{"blue", "red"}, kind.Levels)
	assert.Equal(t, 1.0, kind.Values[0])
	assert.True(t, math.IsNaN(kind.Values[3]))
}

func TestLoadCSVNoHeader(t *testing.T) {
	m, err := loadCSV(strings.NewReader("1,2\n3,4\n5,6\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, []string{"1", "2"}, m.Names())

	_, err = loadCSV(strings.NewReader("a,b\n"), true)
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunWritesBlocks(t *testing.T) {
	x := writeFile(t, "x.csv", sampleCSV)
	out, err := execute(t, "-x", x, "--use", "complete.obs", "--fc-discrete", "--test", "gamma", "--adjustp", "holm")
	require.NoError(t, err)

	for _, title := range []string{"dcor", "pvalue", "pvalue.adj"} {
		assert.Contains(t, out, "\n"+title+"\n")
	}
	assert.True(t, strings.HasPrefix(out, "dcov\n,a,b,kind\n"))
	assert.NotContains(t, out, "cor.pvalue")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	x := writeFile(t, "x.csv", sampleCSV)
	cfg := writeFile(t, "run.yaml", `
x: `+x+`
use: complete.obs
test: gamma
calc_cor: pearson
calc_dcov: false
`)

	out, err := execute(t, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "\npvalue\n")
	assert.Contains(t, out, "\ncor\n")
	assert.True(t, strings.HasPrefix(out, "dcor\n"))

	out, err = execute(t, "--config", cfg, "--test", "none")
	require.NoError(t, err)
	assert.NotContains(t, out, "pvalue")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t)
	assert.ErrorContains(t, err, "x file is required")

	x := writeFile(t, "x.csv", sampleCSV)
	_, err = execute(t, "-x", x, "--test", "ks")
	assert.Error(t, err)

	_, err = execute(t, "-x", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOutputFile(t *testing.T) {
	x := writeFile(t, "x.csv", "u,v\n1,2\n2,1\n3,5\n4,3\n5,4\n")
	dst := filepath.Join(t.TempDir(), "out.csv")
	out, err := execute(t, "-x", x, "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dcor\n,u,v\nu,1,")

	_, err = execute(t, "-x", x, "-o", filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestSaveResult(t *testing.T) {
	m, err := loadCSV(strings.NewReader("u,v\n1,2\n2,1\n3,5\n4,3\n"), true)
	require.NoError(t, err)
	res, err := dcor.Compute(m, nil, dcor.DefaultConfig())
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "res.csv")
	require.NoError(t, saveResult(dst, res))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "dcov\n"))

	assert.Error(t, saveResult(t.TempDir(), res))
}
