// Package fetcher busca as perguntas do Interest Profiler na API pública do
// O*NET Web Services e devolve um *schema.QuestionSet validado.
//
// Visão Geral:
// Uma única requisição GET para BaseURL + "/mnm/interestprofiler/questions",
// com a credencial no header X-API-Key, Accept: application/json e os
// parâmetros start/end (intervalo 1-based e inclusivo, padrão 1-60).
// A requisição inteira é limitada por um timeout (padrão 30s) e não há retry.
//
// Erros:
//   - *errs.ConfigurationError: credencial ausente (antes de qualquer chamada).
//   - *errs.NetworkError: DNS, timeout, conexão recusada ou resetada.
//   - *errs.UpstreamError: qualquer status fora de 2xx (ex: 401, 422).
//   - *errs.ParseError: corpo não JSON ou sem question/answer_option/total.
//   - *errs.ValidationError: membro que viola o schema.
//
// Exemplo:
//
//	client, err := fetcher.New(fetcher.Config{APIKey: key})
//	if err != nil {
//		return err
//	}
//	qs, err := client.Fetch(ctx, fetcher.DefaultStart, fetcher.DefaultEnd)
package fetcher
