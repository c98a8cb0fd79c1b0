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

package ibge

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/stockparfait/fetch"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Record is one locality of the catalog: the decoded JSON object as the
// service returns it, nested region containers included. Schemas differ
// per geographic level.
type Record map[string]interface{}

// String returns the named value when it is present and a string, else "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// localityLevels are the geographic levels of the localities catalog.
var localityLevels = map[string]bool{
	"distritos":              true,
	"estados":                true,
	"mesorregioes":           true,
	"microrregioes":          true,
	"municipios":             true,
	"regioes-imediatas":      true,
	"regioes-intermediarias": true,
	"regioes":                true,
	"paises":                 true,
}

// sortedLevels returns the keys of a level set for error messages.
func sortedLevels(levels map[string]bool) string {
	ks := maps.Keys(levels)
	slices.Sort(ks)
	return strings.Join(ks, ", ")
}

// LocalityQuery addresses a slice of the localities catalog. Level selects
// the geographic level ("distritos" when empty); Localities narrows it to
// the given ids; Divisions descends into the subdivisions of the selected
// localities; OrderBy names the property the service orders the result by.
type LocalityQuery struct {
	Level      string
	Localities []string
	Divisions  string
	OrderBy    string
}

// Localities retrieves the requested slice of the localities catalog. An
// unknown level or division fails with InvalidCategory before any round
// trip.
func Localities(ctx context.Context, q LocalityQuery) ([]Record, error) {
	level := strings.ToLower(q.Level)
	if level == "" {
		level = "distritos"
	}
	if !localityLevels[level] {
		return nil, apierror.New(apierror.InvalidCategory,
			"unknown geographic level %q; valid levels: %s",
			q.Level, sortedLevels(localityLevels))
	}
	uri := LocalitiesURL + "/" + level
	if len(q.Localities) > 0 {
		uri += "/" + strings.Join(q.Localities, "|")
	}
	if q.Divisions != "" {
		divisions := strings.ToLower(q.Divisions)
		if !localityLevels[divisions] {
			return nil, apierror.New(apierror.InvalidCategory,
				"unknown subdivision level %q; valid levels: %s",
				q.Divisions, sortedLevels(localityLevels))
		}
		if divisions != level {
			uri += "/" + divisions
		}
	}
	query := make(url.Values)
	if q.OrderBy != "" {
		query["orderBy"] = []string{q.OrderBy}
	}
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch %s localities", level)
	}
	items, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"%s localities: expected a JSON array", level)
	}
	res := make([]Record, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]interface{})
		if !ok {
			return nil, apierror.New(apierror.MalformedResponse,
				"%s localities: item %d is not an object", level, i)
		}
		res[i] = Record(obj)
	}
	return res, nil
}

// MeanPeriod is the projected demographic flow per mean period of the
// projection model.
type MeanPeriod struct {
	Births    int `json:"nascimento"`
	Deaths    int `json:"obito"`
	Increment int `json:"incrementoPopulacional"`
}

var _ message.Message = &MeanPeriod{}

// InitMessage implements message.Message.
func (p *MeanPeriod) InitMessage(js interface{}) error { return message.Init(p, js) }

// ProjectionData carries the projected totals of a Projection.
type ProjectionData struct {
	Population int        `json:"populacao" required:"true"`
	MeanPeriod MeanPeriod `json:"periodoMedio"`
}

var _ message.Message = &ProjectionData{}

// InitMessage implements message.Message.
func (d *ProjectionData) InitMessage(js interface{}) error { return message.Init(d, js) }

// Projection is the real-time population projection of one locality at the
// moment of the call.
type Projection struct {
	Locality   string         `json:"localidade"`
	Timestamp  string         `json:"horario"`
	Projection ProjectionData `json:"projecao" required:"true"`
}

var _ message.Message = &Projection{}

// InitMessage implements message.Message.
func (p *Projection) InitMessage(js interface{}) error { return message.Init(p, js) }

// Population retrieves the projected population of one locality, a state
// or municipality code; zero projects the whole country.
func Population(ctx context.Context, locality int) (*Projection, error) {
	uri := ProjectionURL
	if locality > 0 {
		uri += "/" + strconv.Itoa(locality)
	}
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch the population projection of %d", locality)
	}
	var p Projection
	if err := p.InitMessage(js); err != nil {
		return nil, apierror.Annotate(err, apierror.MalformedResponse,
			"population projection of %d", locality)
	}
	return &p, nil
}

// meshFormats maps a mesh format to the media type the service takes in
// the formato parameter.
var meshFormats = map[string]string{
	"json":    "application/json", // TopoJSON
	"geojson": "application/vnd.geo+json",
	"svg":     "image/svg+xml",
}

// meshLevels are the geographic levels meshes are drawn at.
var meshLevels = map[string]bool{
	"estados":                true,
	"mesorregioes":           true,
	"microrregioes":          true,
	"municipios":             true,
	"regioes-imediatas":      true,
	"regioes-intermediarias": true,
	"regioes":                true,
	"paises":                 true,
}

// meshDivisions are the intraregional subdivisions a mesh can be split by.
var meshDivisions = map[string]bool{
	"uf":                   true,
	"mesorregiao":          true,
	"microrregiao":         true,
	"municipio":            true,
	"regiao-imediata":      true,
	"regiao-intermediaria": true,
	"regiao":               true,
}

// MeshQuery addresses one territorial mesh. Level defaults to "estados",
// Period (the mesh revision year) to 2020, Format to "json" (TopoJSON) and
// Quality to "minima"; Divisions optionally splits the mesh by an
// intraregional level.
type MeshQuery struct {
	Level     string
	Locality  string
	Divisions string
	Period    int
	Format    string
	Quality   string
}

// request validates the query and composes the addressed URI and
// parameters.
func (q MeshQuery) request() (string, url.Values, error) {
	level := strings.ToLower(q.Level)
	if level == "" {
		level = "estados"
	}
	if !meshLevels[level] {
		return "", nil, apierror.New(apierror.InvalidCategory,
			"unknown mesh level %q; valid levels: %s",
			q.Level, sortedLevels(meshLevels))
	}
	if q.Locality == "" {
		return "", nil, apierror.New(apierror.InvalidSelection,
			"a locality is required for a mesh")
	}
	format := strings.ToLower(q.Format)
	if format == "" {
		format = "json"
	}
	media, ok := meshFormats[format]
	if !ok {
		return "", nil, apierror.New(apierror.InvalidCategory,
			"unknown mesh format %q; valid formats: json, geojson, svg", q.Format)
	}
	period := q.Period
	if period == 0 {
		period = 2020
	}
	quality := strings.ToLower(q.Quality)
	if quality == "" {
		quality = "minima"
	}
	query := url.Values{
		"periodo":   []string{strconv.Itoa(period)},
		"qualidade": []string{quality},
		"formato":   []string{media},
	}
	if q.Divisions != "" {
		divisions := strings.ToLower(q.Divisions)
		if !meshDivisions[divisions] {
			return "", nil, apierror.New(apierror.InvalidCategory,
				"unknown mesh subdivision %q; valid subdivisions: %s",
				q.Divisions, sortedLevels(meshDivisions))
		}
		query["intrarregiao"] = []string{divisions}
	}
	return MeshURL + "/" + level + "/" + q.Locality, query, nil
}

// MeshLink composes the addressed URL of one mesh without fetching it, the
// form the "svg" format is consumed in.
func MeshLink(q MeshQuery) (string, error) {
	uri, query, err := q.request()
	if err != nil {
		return "", err
	}
	return uri + "?" + query.Encode(), nil
}

// Mesh retrieves one territorial mesh in the TopoJSON ("json", the
// default) or GeoJSON format. The "svg" format is an image rather than
// JSON; address it with MeshLink instead.
func Mesh(ctx context.Context, q MeshQuery) (Record, error) {
	if strings.ToLower(q.Format) == "svg" {
		return nil, apierror.New(apierror.InvalidCategory,
			"the svg mesh format is not JSON; compose its URL with MeshLink")
	}
	uri, query, err := q.request()
	if err != nil {
		return nil, err
	}
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch the mesh of %s", q.Locality)
	}
	obj, ok := js.(map[string]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"mesh of %s: expected a JSON object", q.Locality)
	}
	return Record(obj), nil
}
