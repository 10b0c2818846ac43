package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/raywall/onet-interest-profiler/schema"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL sobre
// perguntas do Interest Profiler.
type RuleManager struct {
	env *cel.Env
}

// NewRuleManager inicializa o ambiente CEL com as variáveis de uma pergunta:
//
//	index (int), area (string), text (string)
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable("index", cel.IntType),
		cel.Variable("area", cel.StringType),
		cel.Variable("text", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// Filter é uma expressão booleana compilada, pronta para ser avaliada
// contra várias perguntas.
type Filter struct {
	expr string
	prg  cel.Program
}

// Compile valida a expressão e garante que ela retorna bool.
// Expressão vazia aceita todas as perguntas.
func (rm *RuleManager) Compile(expr string) (*Filter, error) {
	if expr == "" {
		return &Filter{}, nil
	}

	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expressão CEL '%s' deve retornar bool, retorna %s", expr, ast.OutputType())
	}

	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro programa CEL: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string { return f.expr }

// Match avalia o filtro contra uma pergunta.
func (f *Filter) Match(q schema.Question) (bool, error) {
	if f.prg == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(map[string]interface{}{
		"index": q.Index(),
		"area":  q.Area(),
		"text":  q.Text(),
	})
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}

	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}

// Apply devolve, na ordem original, as perguntas aceitas pelo filtro.
func (f *Filter) Apply(questions []schema.Question) ([]schema.Question, error) {
	out := make([]schema.Question, 0, len(questions))
	for _, q := range questions {
		ok, err := f.Match(q)
		if err != nil {
			return nil, fmt.Errorf("pergunta %d: %w", q.Index(), err)
		}
		if ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// EvaluateBool compila e avalia uma expressão avulsa contra uma pergunta.
func (rm *RuleManager) EvaluateBool(expression string, q schema.Question) (bool, error) {
	f, err := rm.Compile(expression)
	if err != nil {
		return false, err
	}
	return f.Match(q)
}
