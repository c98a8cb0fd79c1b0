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

// Package ipea is a client of Ipeadata, the OData4 service of the Instituto
// de Pesquisa Econômica Aplicada publishing macroeconomic, regional and
// social time series.
//
// Series are addressed by alphanumeric codes such as "PAN4_PIBPMV4"
// (nominal GDP); use Series to browse the catalog and SeriesValues to fetch
// the observations of one series.
package ipea

import "github.com/dadosbrasil/dadosbrasil/apierror"

// URL is the default base URL of the Ipeadata OData4 service. It may be
// overwritten in tests before issuing any call.
var URL = "http://www.ipeadata.gov.br/api/odata4"

// unpackValue extracts the item list from an OData envelope, {"value": [...]}.
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
