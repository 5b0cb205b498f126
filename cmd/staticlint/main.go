// Команда staticlint. Статический анализ клиента shortlink
//
// Запуск: go run ./cmd/staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/staticcheck"
)

func main() {
	// analysis/passes
	mychecks := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
	}
	// staticcheck
	for _, v := range staticcheck.Analyzers {
		// Проверки класса SA
		if v.Analyzer.Name[0:2] == "SA" {
			mychecks = append(mychecks, v.Analyzer)
		}
		// "S1028" Simplify error construction with fmt.Errorf
		// "ST1016" Use consistent method receiver names
		if v.Analyzer.Name == "S1028" || v.Analyzer.Name == "ST1016" {
			mychecks = append(mychecks, v.Analyzer)
		}
	}
	// Собственный анализатор
	mychecks = append(mychecks, OsExitAnalyzer)

	multichecker.Main(mychecks...)
}
