package types

// Response para status e body
type Response struct {
	Status int         `json:"status"`
	Body   interface{} `json:"body,omitempty"`
}

// ErrorBody é o corpo devolvido em respostas 4xx.
type ErrorBody struct {
	Error string `json:"error"`
}

type Question struct {
	Index int    `json:"index"`
	Area  string `json:"area"`
	Text  string `json:"text"`
}

type AnswerOption struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// QuestionsPage reproduz o corpo de /mnm/interestprofiler/questions.
type QuestionsPage struct {
	Start        int            `json:"start"`
	End          int            `json:"end"`
	Total        int            `json:"total"`
	Question     []Question     `json:"question"`
	AnswerOption []AnswerOption `json:"answer_option"`
}
