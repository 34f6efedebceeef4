package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"predict"}, args...))
	return out.String(), err
}

func TestScore_PrintsDisplayValue(t *testing.T) {
	out, err := runApp(t, "--artifacts", "../../artifacts", "--current-year", "2024",
		"score", "--type", "Snack Foods", "--fat", "LF", "--visibility", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Predicted Item Outlet Sales: $"), out)
}

func TestScore_MissingArtifacts(t *testing.T) {
	_, err := runApp(t, "--artifacts", t.TempDir(), "score")
	require.Error(t, err)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
	assert.Contains(t, err.Error(), "model.json")
	assert.Contains(t, err.Error(), "model_columns.json")
}

func TestScore_UnknownItemTypeRejected(t *testing.T) {
	_, err := runApp(t, "--artifacts", "../../artifacts", "score", "--type", "Toys")
	require.Error(t, err)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestBatch_ReportsEveryRow(t *testing.T) {
	csv := "Item_Weight,Item_Fat_Content,Item_Visibility,Item_Type,Item_MRP,Outlet_Establishment_Year,Outlet_Size,Outlet_Location_Type,Outlet_Type\n" +
		"9.3,Low Fat,0.016,Dairy,249.8,1999,Medium,Tier 1,Supermarket Type1\n" +
		",reg,0,Soft Drinks,48.2,2009,,Tier 3,Supermarket Type2\n" +
		"5.9,Regular,0.02,Dairy,100,1998,Huge,Tier 1,Grocery Store\n"
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := runApp(t, "--artifacts", "../../artifacts", "batch", "--file", path, "--workers", "2")
	require.Error(t, err)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 3, exit.ExitCode())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\t$"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2\t$"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "3\terror: "), lines[2])
}
