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

// Package sidra implements a client for SIDRA, the statistical aggregation
// service of IBGE (the Brazilian national statistics institute).
//
// Official documentation is at https://servicodados.ibge.gov.br/api/docs/agregados .
//
// The service organizes published statistics as aggregates: named tables
// identified by an integer id and grouped by survey. A typical workflow
// walks the catalog to find an aggregate id (FetchCatalog), inspects the
// aggregate's valid filter values (FetchMetadata), then builds and runs a
// query (NewQuery). The fixed code lists used as filter values are exposed
// by References.
//
// All calls are stateless round trips: nothing is cached, nothing is
// retried, and cancellation is the caller's context. The HTTP client is
// taken from the context via the fetch package.
package sidra

// URL is the default base URL of the aggregates API. It may be overwritten
// in tests before issuing any call.
var URL = "https://servicodados.ibge.gov.br/api/v3/agregados"
