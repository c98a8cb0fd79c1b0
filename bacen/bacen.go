// Copyright 2025 Dados Brasil

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bacen is a client of three Banco Central do Brasil services: the
// olinda PTAX exchange rate API, the olinda market expectations API and the
// SGS time series manager.
//
// PTAX publishes the official daily bulletins of the main international
// currencies against the real. The expectations API publishes the weekly
// Focus survey of market forecasts for the main macroeconomic indicators.
// SGS (Sistema Gerenciador de Séries Temporais) publishes thousands of
// numbered economic series such as SELIC (432) or IPCA inflation targets
// (13521); series codes can be looked up at https://www3.bcb.gov.br/sgspub/.
package bacen

import "github.com/dadosbrasil/dadosbrasil/apierror"

// Default base URLs of the services. All may be overwritten in tests before
// issuing any call.
var (
	PTAXURL         = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"
	ExpectationsURL = "https://olinda.bcb.gov.br/olinda/servico/Expectativas/versao/v1/odata"
	SGSURL          = "https://api.bcb.gov.br"
)

// unpackValue extracts the item list from an olinda OData envelope,
// {"value": [...]}.
func unpackValue(js interface{}, call string) ([]interface{}, error) {
	obj, ok := js.(map[string]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"%s: expected a JSON object envelope", call)
	}
	items, ok := obj["value"].([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"%s: envelope has no 'value' array", call)
	}
	return items, nil
}
