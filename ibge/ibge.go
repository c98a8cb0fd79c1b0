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

// Package ibge is a client of the general-purpose IBGE service APIs: the
// Nomes 2.0 census name frequencies, the localities catalog, the real-time
// population projections and the territorial meshes.
//
// The statistical aggregates of IBGE have their own client in the sidra
// package; this one covers the smaller reference APIs around them.
// Official documentation is at https://servicodados.ibge.gov.br/api/docs .
package ibge

// Default base URLs of the service APIs. All may be overwritten in tests
// before issuing any call.
var (
	NamesURL      = "https://servicodados.ibge.gov.br/api/v2/censos/nomes"
	LocalitiesURL = "https://servicodados.ibge.gov.br/api/v1/localidades"
	ProjectionURL = "https://servicodados.ibge.gov.br/api/v1/projecoes/populacao"
	MeshURL       = "https://servicodados.ibge.gov.br/api/v3/malhas"
)
