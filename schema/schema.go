package schema

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/onet-interest-profiler/errs"
)

// Limites da escala Likert usada pelas opções de resposta.
const (
	MinAnswerValue = 1
	MaxAnswerValue = 5
)

var areas = []string{
	"Realistic",
	"Investigative",
	"Artistic",
	"Social",
	"Enterprising",
	"Conventional",
}

// validate é compartilhado: validator.Validate faz cache das structs e é
// seguro para uso concorrente.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("riasec", func(fl validator.FieldLevel) bool {
		return IsArea(fl.Field().String())
	})
	// O JSON troca bytes inválidos por U+FFFD; aceitá-los quebraria o round trip.
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	return v
}

// Areas retorna uma cópia das seis categorias RIASEC, na ordem de Holland.
func Areas() []string {
	out := make([]string, len(areas))
	copy(out, areas)
	return out
}

// IsArea informa se a string pertence ao conjunto RIASEC (case sensitive).
func IsArea(area string) bool {
	for _, a := range areas {
		if a == area {
			return true
		}
	}
	return false
}

// answerOptionFields e questionFields carregam as regras estruturais
// aplicadas pelos construtores.
type answerOptionFields struct {
	Value int    `validate:"min=1,max=5"`
	Name  string `validate:"utf8"`
}

type questionFields struct {
	Index int
	Area  string `validate:"riasec"`
	Text  string `validate:"utf8"`
}

// AnswerOption é uma escolha da escala Likert. Imutável após a construção.
type AnswerOption struct {
	value int
	name  string
}

// NewAnswerOption valida o valor (1 a 5) e retorna a opção construída.
func NewAnswerOption(value int, name string) (AnswerOption, error) {
	if err := validate.Struct(answerOptionFields{Value: value, Name: name}); err != nil {
		return AnswerOption{}, translate(err, "AnswerOption")
	}
	return AnswerOption{value: value, name: name}, nil
}

func (o AnswerOption) Value() int   { return o.value }
func (o AnswerOption) Name() string { return o.name }

// Question é uma pergunta do Interest Profiler com sua área RIASEC.
// Imutável após a construção.
type Question struct {
	index int
	area  string
	text  string
}

// NewQuestion valida a área contra o conjunto RIASEC e retorna a pergunta.
func NewQuestion(index int, area, text string) (Question, error) {
	if err := validate.Struct(questionFields{Index: index, Area: area, Text: text}); err != nil {
		return Question{}, translate(err, "Question")
	}
	return Question{index: index, area: area, text: text}, nil
}

func (q Question) Index() int   { return q.index }
func (q Question) Area() string { return q.area }
func (q Question) Text() string { return q.text }

// QuestionSet agrupa as perguntas, as opções de resposta e os metadados
// do snapshot. Não valida nada por conta própria: a validade vem dos membros.
type QuestionSet struct {
	questions     []Question
	answerOptions []AnswerOption
	total         int
	datasetID     string
}

// NewQuestionSet copia os slices recebidos; alterações posteriores no slice
// do chamador não afetam o conjunto.
func NewQuestionSet(questions []Question, answerOptions []AnswerOption, total int, datasetID string) *QuestionSet {
	qs := &QuestionSet{
		questions:     make([]Question, len(questions)),
		answerOptions: make([]AnswerOption, len(answerOptions)),
		total:         total,
		datasetID:     datasetID,
	}
	copy(qs.questions, questions)
	copy(qs.answerOptions, answerOptions)
	return qs
}

// Questions retorna uma cópia das perguntas, na ordem original.
func (qs *QuestionSet) Questions() []Question {
	out := make([]Question, len(qs.questions))
	copy(out, qs.questions)
	return out
}

// AnswerOptions retorna uma cópia das opções de resposta, na ordem original.
func (qs *QuestionSet) AnswerOptions() []AnswerOption {
	out := make([]AnswerOption, len(qs.answerOptions))
	copy(out, qs.answerOptions)
	return out
}

func (qs *QuestionSet) Total() int        { return qs.total }
func (qs *QuestionSet) DatasetID() string { return qs.datasetID }

// Len retorna o número de perguntas sem copiar o slice.
func (qs *QuestionSet) Len() int { return len(qs.questions) }

// Equal compara dois conjuntos campo a campo, respeitando a ordem.
func (qs *QuestionSet) Equal(other *QuestionSet) bool {
	if qs == nil || other == nil {
		return qs == other
	}
	if qs.total != other.total || qs.datasetID != other.datasetID {
		return false
	}
	if len(qs.questions) != len(other.questions) || len(qs.answerOptions) != len(other.answerOptions) {
		return false
	}
	for i := range qs.questions {
		if qs.questions[i] != other.questions[i] {
			return false
		}
	}
	for i := range qs.answerOptions {
		if qs.answerOptions[i] != other.answerOptions[i] {
			return false
		}
	}
	return true
}

// CountByArea conta as perguntas de cada área. Áreas sem perguntas aparecem
// com zero.
func (qs *QuestionSet) CountByArea() map[string]int {
	counts := make(map[string]int, len(areas))
	for _, a := range areas {
		counts[a] = 0
	}
	for _, q := range qs.questions {
		counts[q.area]++
	}
	return counts
}

// translate converte validator.ValidationErrors no ValidationError do domínio.
// O campo é reportado como "<Tipo>.<campo>" (ex: "Question.area").
func translate(err error, typeName string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := typeName + "." + strings.ToLower(fe.Field())
	value := fe.Value()
	switch fe.Tag() {
	case "min", "max":
		return &errs.ValidationError{
			Kind:    errs.KindOutOfRange,
			Field:   field,
			Value:   value,
			Allowed: []string{strconv.Itoa(MinAnswerValue), strconv.Itoa(MaxAnswerValue)},
		}
	case "riasec":
		return &errs.ValidationError{
			Kind:    errs.KindInvalidCategory,
			Field:   field,
			Value:   value,
			Allowed: Areas(),
		}
	case "utf8":
		return &errs.ValidationError{
			Kind:  errs.KindInvalidEncoding,
			Field: field,
			Value: value,
		}
	default:
		return &errs.ValidationError{Field: field, Value: value}
	}
}
