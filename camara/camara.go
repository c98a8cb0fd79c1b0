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

// Package camara is a client of the open data service of the Câmara dos
// Deputados, the lower house of the Brazilian congress.
//
// The service publishes deputies, parties, propositions, votings and the
// other legislative resources as paged JSON lists; list calls here follow
// the paging links transparently and return the concatenated records.
// Record schemas vary per resource and service version, so records are
// returned as generic key/value maps rather than fixed structs.
package camara

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

// URL is the default base URL of the service. It may be overwritten in tests
// before issuing any call.
var URL = "https://dadosabertos.camara.leg.br/api/v2"

// Record is one item of a response: the decoded JSON object with the uri*
// cross-reference keys dropped.
type Record map[string]interface{}

// String returns the named value when it is present and a string, else "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// newRecord copies one decoded object, dropping the uri* keys.
func newRecord(obj map[string]interface{}) Record {
	r := make(Record, len(obj))
	for k, v := range obj {
		if strings.HasPrefix(k, "uri") {
			continue
		}
		r[k] = v
	}
	return r
}

// unwrap splits the {"dados": ..., "links": [...]} envelope of every
// response into the payload and the href of the rel=next link, if any.
func unwrap(js interface{}, call string) (interface{}, string, error) {
	obj, ok := js.(map[string]interface{})
	if !ok {
		return nil, "", apierror.New(apierror.MalformedResponse,
			"%s: expected a JSON object envelope", call)
	}
	payload, ok := obj["dados"]
	if !ok {
		return nil, "", apierror.New(apierror.MalformedResponse,
			"%s: envelope has no 'dados'", call)
	}
	var next string
	if links, ok := obj["links"].([]interface{}); ok {
		for _, l := range links {
			lm, ok := l.(map[string]interface{})
			if !ok {
				continue
			}
			if rel, _ := lm["rel"].(string); rel == "next" {
				next, _ = lm["href"].(string)
			}
		}
	}
	return payload, next, nil
}

// records converts an array payload into Records.
func records(js interface{}, call string) ([]Record, error) {
	items, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"%s: expected a JSON array payload", call)
	}
	res := make([]Record, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]interface{})
		if !ok {
			return nil, apierror.New(apierror.MalformedResponse,
				"%s: item %d is not an object", call, i)
		}
		res[i] = newRecord(obj)
	}
	return res, nil
}

// maxPages caps a single list call. The largest paged resources are well
// under a thousand pages at the default page size.
const maxPages = 1000

// list retrieves every page of a list endpoint, following rel=next links.
// Pages past the first are addressed by the href the service returns, which
// already carries the query. A next link repeating the previous one or a
// listing past maxPages fails with MalformedResponse rather than looping.
func list(ctx context.Context, path string, query url.Values) ([]Record, error) {
	uri := URL + "/" + path
	var all []Record
	var prevNext string
	for page := 1; ; page++ {
		var js interface{}
		if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
			return nil, apierror.Annotate(err, apierror.Transport,
				"failed to fetch page %d of %s", page, path)
		}
		payload, next, err := unwrap(js, path)
		if err != nil {
			return nil, err
		}
		rs, err := records(payload, path)
		if err != nil {
			return nil, err
		}
		all = append(all, rs...)
		logging.Infof(ctx, "Câmara: fetched page %d of %s with %d records",
			page, path, len(rs))
		if next == "" {
			return all, nil
		}
		if next == prevNext || page >= maxPages {
			return nil, apierror.New(apierror.MalformedResponse,
				"%s: paging did not terminate after %d pages (next link %q)",
				path, page, next)
		}
		prevNext = next
		// The href carries the paging state in its query string; split it
		// out so the next request is addressed like the first one.
		u, err := url.Parse(next)
		if err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"%s: bad next link %q", path, next)
		}
		query = u.Query()
		u.RawQuery = ""
		uri = u.String()
	}
}

// detail retrieves one series of one resource item. The root record series
// SeriesInfo addresses the item itself; every other series is a sub-path.
// An unknown series token fails with InvalidSelection before any network
// round trip; an object payload comes back as a single record.
func detail(ctx context.Context, path string, id int, series string, allowed []string) ([]Record, error) {
	if series == "" {
		series = SeriesInfo
	}
	valid := false
	for _, s := range allowed {
		if s == series {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apierror.New(apierror.InvalidSelection,
			"resource %s has no series %q; valid series: %s",
			path, series, strings.Join(allowed, ", "))
	}
	uri := URL + "/" + path + "/" + strconv.Itoa(id)
	if series != SeriesInfo {
		uri += "/" + series
	}
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch %s of %s %d", series, path, id)
	}
	payload, _, err := unwrap(js, path)
	if err != nil {
		return nil, err
	}
	if obj, ok := payload.(map[string]interface{}); ok {
		return []Record{newRecord(obj)}, nil
	}
	return records(payload, path)
}
