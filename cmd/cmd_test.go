package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/profile"
	"github.com/spigell/cv-screener/internal/screening"
)

func sampleOutcomes() []screening.Outcome {
	return []screening.Outcome{
		{
			Document: "ada.pdf",
			Result:   profile.Result{ExperienceYears: 6, Level: profile.Senior, Skills: []string{"python", "docker"}},
		},
		{
			Document: "broken.pdf",
			Err:      errors.New("corrupt"),
		},
	}
}

func TestPrintOutcomesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOutcomes(&buf, outputText, sampleOutcomes()))

	out := buf.String()
	assert.Contains(t, out, "DOCUMENT")
	assert.Regexp(t, `ada\.pdf\s+6\s+Senior\s+python, docker`, out)
	assert.Contains(t, out, "error: corrupt")
}

func TestPrintOutcomesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOutcomes(&buf, outputJSON, sampleOutcomes()))

	var views []outcomeView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
	require.Len(t, views, 2)

	assert.Equal(t, outcomeView{Document: "ada.pdf", ExperienceYears: 6, Level: "Senior", Skills: []string{"python", "docker"}}, views[0])
	assert.Equal(t, "corrupt", views[1].Error)
	assert.Empty(t, views[1].Level)
}

func TestFailedOutcomes(t *testing.T) {
	err := failedOutcomes(zap.NewNop(), sampleOutcomes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	assert.NoError(t, failedOutcomes(zap.NewNop(), sampleOutcomes()[:1]))
}

func TestOutputFormat(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("output", outputText, "")

	format, err := outputFormat(cmd)
	require.NoError(t, err)
	assert.Equal(t, outputText, format)

	require.NoError(t, cmd.Flags().Set("output", " JSON "))
	format, err = outputFormat(cmd)
	require.NoError(t, err)
	assert.Equal(t, outputJSON, format)

	require.NoError(t, cmd.Flags().Set("output", "xml"))
	_, err = outputFormat(cmd)
	assert.Error(t, err)
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))

	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", filepath.Join("nested", "c.pdf")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	paths, err := findPDFs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(nested, "c.pdf"),
	}, paths)

	_, err = findPDFs(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestGetConfig(t *testing.T) {
	viper.Set("vocabulary.skills", []string{"go", "rust"})
	t.Cleanup(func() { viper.Set("vocabulary.skills", nil) })

	config, err := getConfig()
	require.NoError(t, err)
	assert.Equal(t, screening.DefaultWorkers, config.Workers)
	assert.Equal(t, screening.DefaultTimeout, config.Timeout)
	assert.Equal(t, []string{"go", "rust"}, config.Vocabulary.Skills)

	viper.Set("workers", 0)
	t.Cleanup(func() { viper.Set("workers", screening.DefaultWorkers) })

	_, err = getConfig()
	assert.Error(t, err)
}

func TestResolveDatabase(t *testing.T) {
	dsnFile := filepath.Join(t.TempDir(), "dsn")
	require.NoError(t, os.WriteFile(dsnFile, []byte("postgres://localhost/cv\n"), 0o600))

	dsn, err := resolveDatabase(&Config{Database: "cv.db", DatabaseFile: dsnFile})
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cv", dsn)

	dsn, err = resolveDatabase(&Config{Database: " cv.db "})
	require.NoError(t, err)
	assert.Equal(t, "cv.db", dsn)

	_, err = resolveDatabase(&Config{})
	assert.Error(t, err)

	_, err = resolveDatabase(nil)
	assert.Error(t, err)
}
