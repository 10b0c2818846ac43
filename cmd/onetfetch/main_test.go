package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/schema"
	"github.com/raywall/onet-interest-profiler/store"
	"github.com/raywall/onet-interest-profiler/tools/emulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(t *testing.T) *schema.QuestionSet {
	t.Helper()
	var questions []schema.Question
	for i, item := range [][2]string{
		{"Realistic", "Build kitchen cabinets"},
		{"Investigative", "Study the structure of the human body"},
		{"Artistic", "Compose or arrange music"},
		{"Social", "Teach an individual an exercise routine"},
	} {
		q, err := schema.NewQuestion(i+1, item[0], item[1])
		require.NoError(t, err)
		questions = append(questions, q)
	}
	var options []schema.AnswerOption
	for v, name := range []string{"Strongly Dislike", "Dislike", "Unsure", "Like", "Strongly Like"} {
		o, err := schema.NewAnswerOption(v+1, name)
		require.NoError(t, err)
		options = append(options, o)
	}
	return schema.NewQuestionSet(questions, options, 60, "DATA-onet-ip60-v1")
}

// execute roda o comando raiz com ambiente isolado e devolve stdout.
func execute(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()

	original := configOptions
	configOptions = config.Options{
		SkipDotEnv: true,
		Lookup: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}
	t.Cleanup(func() { configOptions = original })

	inspectFlags.from, inspectFlags.where = "", ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRoot_FetchAndSave(t *testing.T) {
	srv := httptest.NewServer(emulator.New(emulator.Config{APIKey: "dev", LowercaseAreas: true}, sampleSet(t), nil).Router())
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "data", "raw", "interest_profiler_questions.json")
	stdout, err := execute(t, map[string]string{
		"ONET_API_KEY":  "dev",
		"ONET_API_BASE": srv.URL,
		"ONET_OUTPUT":   out,
		"LOG_ENABLED":   "false",
	})
	require.NoError(t, err)
	assert.Equal(t, "Saved 4 questions with 5 answer options to "+out+"\n", stdout)

	saved, err := store.Load(out)
	require.NoError(t, err)
	assert.True(t, sampleSet(t).Equal(saved))
}

func TestRoot_Errors(t *testing.T) {
	srv := httptest.NewServer(emulator.New(emulator.Config{APIKey: "dev"}, sampleSet(t), nil).Router())
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "q.json")

	t.Run("Sem credencial", func(t *testing.T) {
		stdout, err := execute(t, map[string]string{"ONET_API_BASE": srv.URL, "ONET_OUTPUT": out, "LOG_ENABLED": "false"})
		var cfgErr *errs.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "recebido %v", err)
		assert.Empty(t, stdout)
	})

	t.Run("Credencial recusada", func(t *testing.T) {
		stdout, err := execute(t, map[string]string{"ONET_API_KEY": "errada", "ONET_API_BASE": srv.URL, "ONET_OUTPUT": out, "LOG_ENABLED": "false"})
		var upstream *errs.UpstreamError
		require.True(t, errors.As(err, &upstream), "recebido %v", err)
		assert.Empty(t, stdout)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Argumentos não são aceitos", func(t *testing.T) {
		_, err := execute(t, map[string]string{"ONET_API_KEY": "dev", "LOG_ENABLED": "false"}, "extra")
		assert.Error(t, err)
	})
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, store.Save(sampleSet(t), path))
	env := map[string]string{"ONET_OUTPUT": path, "LOG_ENABLED": "false"}

	t.Run("Resumo por área", func(t *testing.T) {
		stdout, err := execute(t, env, "inspect")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Dataset:        DATA-onet-ip60-v1")
		assert.Contains(t, stdout, "Questions:      4")
		assert.Contains(t, stdout, "Answer options: 5")
		assert.Contains(t, stdout, "  Enterprising   0\n")
		assert.Contains(t, stdout, "  Social         1\n")
		assert.NotContains(t, stdout, "Matched")
	})

	t.Run("Filtro CEL", func(t *testing.T) {
		stdout, err := execute(t, map[string]string{"LOG_ENABLED": "false"}, "inspect", "--from", path, "--where", "index >= 3")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Matched 2 of 4 questions (index >= 3):")
		assert.Contains(t, stdout, "Compose or arrange music")
		assert.NotContains(t, stdout, "Build kitchen cabinets")
		assert.Equal(t, 2, strings.Count(stdout, "\n   "), "uma linha por pergunta aceita")
	})

	t.Run("Filtro inválido", func(t *testing.T) {
		_, err := execute(t, env, "inspect", "--where", "index +")
		assert.Error(t, err)
	})

	t.Run("Snapshot ausente", func(t *testing.T) {
		_, err := execute(t, env, "inspect", "--from", filepath.Join(t.TempDir(), "nada.json"))
		var nf *errs.NotFoundError
		assert.True(t, errors.As(err, &nf), "recebido %v", err)
	})
}

func TestValidate(t *testing.T) {
	stdout, err := execute(t, map[string]string{"ONET_API_KEY": "abcdef123456", "ONET_RANGE_END": "30", "LOG_ENABLED": "false"}, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration OK")
	assert.Contains(t, stdout, "/mnm/interestprofiler/questions?start=1&end=30")
	assert.Contains(t, stdout, "****3456")
	assert.NotContains(t, stdout, "abcdef")

	_, err = execute(t, map[string]string{"ONET_RANGE_START": "10", "ONET_RANGE_END": "5"}, "validate")
	var cfgErr *errs.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "recebido %v", err)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "****", redact(""))
	assert.Equal(t, "****", redact("abcd"))
	assert.Equal(t, "****bcde", redact("abcde"))
}
