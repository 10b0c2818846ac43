// Package onet reúne as ferramentas que produzem um snapshot local das
// perguntas do O*NET Interest Profiler (60 perguntas classificadas nas seis
// áreas RIASEC e a escala de resposta de 1 a 5).
//
// Visão Geral:
// O fluxo é curto e síncrono: uma chamada autenticada à API do O*NET Web
// Services, validação de cada pergunta e opção de resposta, e gravação de um
// documento JSON determinístico.
//
// Sub-Pacotes Principais:
//
// 1. schema:
//   - Objetos de valor imutáveis (Question, AnswerOption, QuestionSet).
//   - Invariantes de área RIASEC e escala de resposta verificados na construção.
//
// 2. fetcher:
//   - Cliente HTTP do endpoint /mnm/interestprofiler/questions.
//   - Erros tipados do pacote errs para credencial, rede, upstream e parsing.
//
// 3. store:
//   - Codec JSON e persistência em arquivo local, S3, DynamoDB, Redis ou Postgres.
//
// 4. pkg/refresh, cmd/onetfetch, cmd/lambda:
//   - Orquestração busca -> gravação, exposta como CLI e como função Lambda.
//
// 5. tools/emulator:
//   - Servidor local que imita a API para desenvolvimento offline.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/raywall/onet-interest-profiler/fetcher"
//		"github.com/raywall/onet-interest-profiler/store"
//	)
//
//	func main() {
//		// ONET_API_KEY é lida do ambiente quando a chave não é informada.
//		qs, err := fetcher.FetchQuestions(context.Background(), "", fetcher.DefaultStart, fetcher.DefaultEnd)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := store.Save(qs, store.DefaultPath); err != nil {
//			log.Fatal(err)
//		}
//	}
package onet
