// Package store serializa um schema.QuestionSet em JSON e o persiste.
//
// O formato é um objeto com as chaves questions, answer_options, total e
// dataset_id, indentado com dois espaços e terminado por nova linha. A
// serialização é determinística: gravar o mesmo conjunto duas vezes produz
// bytes idênticos, em qualquer backend.
//
// Save e Load trabalham com arquivos locais. Open escolhe o backend pelo
// esquema da localização (arquivo, s3://, dynamodb://, redis://, postgres://)
// e SaveTo/LoadFrom usam o mesmo codec em todos eles.
//
// A leitura passa cada membro pelos construtores do schema, então um arquivo
// editado à mão com valores inválidos falha com *errs.ValidationError.
package store
