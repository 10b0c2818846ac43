package rules

import (
	"testing"

	"github.com/raywall/onet-interest-profiler/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questions(t *testing.T) []schema.Question {
	t.Helper()
	var out []schema.Question
	for i, item := range [][2]string{
		{"Realistic", "Build kitchen cabinets"},
		{"Investigative", "Study the structure of the human body"},
		{"Artistic", "Compose or arrange music"},
		{"Social", "Teach an individual an exercise routine"},
		{"Realistic", "Lay brick or tile"},
	} {
		q, err := schema.NewQuestion(i+1, item[0], item[1])
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	tests := []struct {
		name        string
		expr        string
		wantIndexes []int
	}{
		{"Vazio aceita tudo", "", []int{1, 2, 3, 4, 5}},
		{"Por área", "area == 'Realistic'", []int{1, 5}},
		{"Por índice", "index > 2 && index <= 4", []int{3, 4}},
		{"Por texto", "text.contains('music') || text.startsWith('Teach')", []int{3, 4}},
		{"Lista de áreas", "area in ['Social', 'Artistic']", []int{3, 4}},
		{"Nenhuma", "index > 100", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := rm.Compile(tt.expr)
			require.NoError(t, err)

			got, err := f.Apply(questions(t))
			require.NoError(t, err)

			indexes := []int{}
			for _, q := range got {
				indexes = append(indexes, q.Index())
			}
			assert.Equal(t, tt.wantIndexes, indexes)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	// Sintaxe inválida
	_, err = rm.Compile("area ==")
	assert.Error(t, err)

	// Variável desconhecida
	_, err = rm.Compile("input.age > 10")
	assert.Error(t, err)

	// Tipo incorreto: int comparado com string
	_, err = rm.Compile("index == 'um'")
	assert.Error(t, err)

	// Expressão que não retorna bool
	_, err = rm.Compile("index * 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bool")
}

func TestEvaluateBool(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)
	q := questions(t)[2]

	ok, err := rm.EvaluateBool("area == 'Artistic' && index == 3", q)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rm.EvaluateBool("area == 'Social'", q)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilter_RuntimeError(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	// Divisão por zero só aparece na avaliação
	f, err := rm.Compile("10 / (index - 1) > 0")
	require.NoError(t, err)

	_, err = f.Apply(questions(t))
	assert.Error(t, err)
	assert.Equal(t, "10 / (index - 1) > 0", f.String())
}
