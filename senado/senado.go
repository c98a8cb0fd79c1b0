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

// Package senado is a client of the open data service of the Senado
// Federal, the upper house of the Brazilian congress.
//
// The service wraps every response in nested envelopes named after the
// call, an inheritance of its XML origin: the senate party blocks, for
// example, arrive under ListaBlocoParlamentar -> Blocos -> Bloco. Calls
// here descend the envelope and return the inner records as generic
// key/value maps, the same shape the camara package uses; record schemas
// vary per call and service version. JSON is requested through the .json
// path extension the service supports on every call.
//
// Another XML inheritance: a list position holding exactly one record
// arrives as a plain object rather than a one-element array. Such payloads
// are returned as a single-record list.
package senado

import (
	"context"
	"net/url"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/stockparfait/fetch"
)

// URL is the default base URL of the service. It may be overwritten in
// tests before issuing any call.
var URL = "https://legis.senado.gov.br/dadosabertos"

// Record is one item of a response: the decoded JSON object, nested
// containers included.
type Record map[string]interface{}

// String returns the named value when it is present and a string, else "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// StringPath returns the string at a nested key path, else "".
func (r Record) StringPath(keys ...string) string {
	var cur interface{} = map[string]interface{}(r)
	for _, k := range keys {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return ""
		}
		cur = obj[k]
	}
	s, _ := cur.(string)
	return s
}

// unpack descends the envelope keys of one response. A missing outermost
// key means the call hit nothing and fails with NotFound; the service
// omits the inner keys when the query matched no records, which unpacks
// to nil.
func unpack(js interface{}, call string, keys ...string) (interface{}, error) {
	cur := js
	for i, k := range keys {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, apierror.New(apierror.MalformedResponse,
				"%s: expected an object enclosing %q", call, k)
		}
		cur, ok = obj[k]
		if !ok {
			if i == 0 {
				return nil, apierror.New(apierror.NotFound,
					"%s: response has no %q", call, k)
			}
			return nil, nil
		}
	}
	return cur, nil
}

// records converts an unpacked payload into Records. A single object
// stands for a one-record list; nil for an empty one.
func records(js interface{}, call string) ([]Record, error) {
	switch v := js.(type) {
	case nil:
		return []Record{}, nil
	case map[string]interface{}:
		return []Record{Record(v)}, nil
	case []interface{}:
		res := make([]Record, len(v))
		for i, it := range v {
			obj, ok := it.(map[string]interface{})
			if !ok {
				return nil, apierror.New(apierror.MalformedResponse,
					"%s: item %d is not an object", call, i)
			}
			res[i] = Record(obj)
		}
		return res, nil
	}
	return nil, apierror.New(apierror.MalformedResponse,
		"%s: expected an object or array payload", call)
}

// fetchRecords retrieves one call and unpacks its records. The path is
// relative to URL and already carries the .json extension.
func fetchRecords(ctx context.Context, path string, query url.Values, keys ...string) ([]Record, error) {
	var js interface{}
	if err := fetch.FetchJSON(ctx, URL+"/"+path, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch %s", path)
	}
	payload, err := unpack(js, path, keys...)
	if err != nil {
		return nil, err
	}
	return records(payload, path)
}
