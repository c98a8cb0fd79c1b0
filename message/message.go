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

// Package message initializes typed records from generic JSON decoded by
// encoding/json. It is the shape check behind every parsed API response in
// this module: a record lists its fields with json tags, marks the ones a
// well-formed payload must carry with `required:"true"`, and Init verifies
// types and presence in one pass.
//
// A typical record:
//
//	type Variable struct {
//	  ID   int    `json:"id" required:"true"`
//	  Name string `json:"nome" required:"true"`
//	  Unit string `json:"unidade"`
//	}
//
//	func (v *Variable) InitMessage(js interface{}) error {
//	  return message.Init(v, js)
//	}
//
// Unrecognized keys in the payload are ignored: the remote services add
// response fields without notice, and a client must keep working when they
// do.
package message

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stockparfait/errors"
)

// Message is a typed record initializable from a generic decoded JSON value,
// typically implemented by a struct pointer whose InitMessage calls Init.
type Message interface {
	InitMessage(js interface{}) error
}

var messageType = reflect.TypeOf((*Message)(nil)).Elem()

// fieldKey returns the JSON key for a struct field, or "" when the field is
// unexported or tagged `json:"-"`.
func fieldKey(f reflect.StructField) string {
	first, _ := utf8.DecodeRuneInString(f.Name)
	if !unicode.IsUpper(first) {
		return ""
	}
	key := f.Name
	if tag, ok := f.Tag.Lookup("json"); ok {
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			key = name
		}
	}
	return key
}

// initMessage initializes a value whose pointer type implements Message.
func initMessage(js interface{}, ptrType reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(ptrType.Elem())
	out := ptr.MethodByName("InitMessage").Call(
		[]reflect.Value{reflect.ValueOf(&js).Elem()})[0].Interface()
	if out != nil {
		return reflect.Value{}, out.(error)
	}
	return ptr, nil
}

// assign converts a decoded JSON value to the target type. Nested Message
// types are initialized recursively through their InitMessage method.
func assign(js interface{}, t reflect.Type) (reflect.Value, error) {
	var none reflect.Value
	if t.Kind() == reflect.Ptr && t.Implements(messageType) {
		if js == nil {
			return reflect.Zero(t), nil
		}
		return initMessage(js, t)
	}
	if ptrType := reflect.PtrTo(t); ptrType.Implements(messageType) {
		if js == nil {
			js = map[string]interface{}{}
		}
		ptr, err := initMessage(js, ptrType)
		if err != nil {
			return none, err
		}
		return ptr.Elem(), nil
	}
	if js == nil {
		return reflect.Zero(t), nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		v, err := assign(js, t.Elem())
		if err != nil {
			return none, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil

	case reflect.Bool:
		b, ok := js.(bool)
		if !ok {
			return none, errors.Reason("not a bool: %v", js)
		}
		return reflect.ValueOf(b), nil

	case reflect.Int:
		// encoding/json decodes every number as float64.
		f, ok := js.(float64)
		if !ok {
			return none, errors.Reason("not a number: %v", js)
		}
		return reflect.ValueOf(int(f)), nil

	case reflect.Float64:
		f, ok := js.(float64)
		if !ok {
			return none, errors.Reason("not a number: %v", js)
		}
		return reflect.ValueOf(f), nil

	case reflect.String:
		s, ok := js.(string)
		if !ok {
			return none, errors.Reason("not a string: %v", js)
		}
		return reflect.ValueOf(s), nil

	case reflect.Slice:
		elems, ok := js.([]interface{})
		if !ok {
			return none, errors.Reason("not an array: %v", js)
		}
		res := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			v, err := assign(e, t.Elem())
			if err != nil {
				return none, errors.Annotate(err, "element %d", i)
			}
			res.Index(i).Set(v)
		}
		return res, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return none, errors.Reason("map key type %s is not supported",
				t.Key().Kind())
		}
		obj, ok := js.(map[string]interface{})
		if !ok {
			return none, errors.Reason("not an object: %v", js)
		}
		res := reflect.MakeMap(t)
		for k, e := range obj {
			v, err := assign(e, t.Elem())
			if err != nil {
				return none, errors.Annotate(err, "key %q", k)
			}
			res.SetMapIndex(reflect.ValueOf(k), v)
		}
		return res, nil
	}
	return none, errors.Reason("unsupported field type: %s", t)
}

// Init populates the struct behind m from js, which must be a decoded JSON
// object (map[string]interface{}). Fields tagged `required:"true"` must be
// present and non-null; all other fields default to their zero value when
// absent. Keys without a matching field are ignored.
func Init(m Message, js interface{}) error {
	rt := reflect.TypeOf(m)
	if rt.Kind() != reflect.Ptr || rt.Elem().Kind() != reflect.Struct {
		return errors.Reason("message must be a struct pointer, got %T", m)
	}
	if js == nil {
		return errors.Reason("JSON object is null")
	}
	obj, ok := js.(map[string]interface{})
	if !ok {
		return errors.Reason("not a JSON object: %v", js)
	}

	rt = rt.Elem()
	rv := reflect.ValueOf(m).Elem()
	var missing []string
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := fieldKey(f)
		if key == "" {
			continue
		}
		jv, present := obj[key]
		if !present || jv == nil {
			if f.Tag.Get("required") == "true" {
				missing = append(missing, key)
			}
			continue
		}
		v, err := assign(jv, f.Type)
		if err != nil {
			return errors.Annotate(err, "field %q", key)
		}
		rv.Field(i).Set(v)
	}
	if len(missing) > 0 {
		return errors.Reason("missing required fields: %s",
			strings.Join(missing, ", "))
	}
	return nil
}
