// Package schema define os registros do Interest Profiler do O*NET
// (AnswerOption, Question e QuestionSet) e aplica seus invariantes no
// momento da construção.
//
// Visão Geral:
// Os tipos são objetos de valor imutáveis: os campos não são exportados e
// só podem ser preenchidos pelos construtores NewAnswerOption, NewQuestion e
// NewQuestionSet. As regras estruturais são declaradas em tags do
// go-playground/validator e traduzidas para *errs.ValidationError.
//
// Invariantes:
//   - AnswerOption.Value deve estar entre 1 e 5 (escala Likert).
//   - Question.Area deve ser uma das seis categorias RIASEC:
//     Realistic, Investigative, Artistic, Social, Enterprising, Conventional.
//   - QuestionSet não valida nada sozinho; total não é comparado com o
//     número de perguntas.
//
// Exemplo:
//
//	q, err := schema.NewQuestion(1, "Realistic", "Build kitchen cabinets")
//	if err != nil {
//		var verr *errs.ValidationError
//		if errors.As(err, &verr) {
//			fmt.Println(verr.Allowed)
//		}
//	}
//	opt, _ := schema.NewAnswerOption(5, "Strongly Like")
//	set := schema.NewQuestionSet([]schema.Question{q}, []schema.AnswerOption{opt}, 1, "DATA-onet-ip60-v1")
package schema
