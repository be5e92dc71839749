// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"golang.org/x/net/html/charset"
)

// Base64 marks a parameter for transmission under the base64 wire type.
// Plain []byte values are encoded the same way.
type Base64 []byte

// DateTime marks a parameter for transmission under the dateTime.iso8601
// wire type. Plain time.Time values are encoded the same way.
type DateTime time.Time

// iso8601 is the compact layout the protocol uses for dateTime.iso8601.
const iso8601 = "20060102T15:04:05"

// Codec encodes method calls into the wire envelope and decodes response
// envelopes. Decode returns either a value or a Fault, never both.
type Codec interface {
	Encode(method string, params []any) ([]byte, error)
	Decode(data []byte, charsetLabel string) (any, *Fault, error)
}

// XMLCodec implements the standard methodCall/methodResponse envelope.
type XMLCodec struct{}

// defaultCodec is used when no codec is specified
var defaultCodec Codec = XMLCodec{}

// Encode builds a <methodCall> envelope for method with the given ordered
// parameter list. Parameter values map onto the wire types as follows:
// integers to <int>, bool to <boolean>, float64 to <double>, string to
// <string>, Base64/[]byte to <base64>, DateTime/time.Time to
// <dateTime.iso8601>, maps with string keys to <struct> (members in sorted
// key order), slices to <array>, nil to <nil/>.
func (XMLCodec) Encode(method string, params []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	if err := xml.EscapeText(&buf, []byte(method)); err != nil {
		return nil, errors.Trace(err)
	}
	buf.WriteString("</methodName><params>")
	for _, p := range params {
		buf.WriteString("<param>")
		if err := writeValue(&buf, p); err != nil {
			return nil, errors.Trace(err)
		}
		buf.WriteString("</param>")
	}
	buf.WriteString("</params></methodCall>")
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	buf.WriteString("<value>")
	if err := writeTyped(buf, v); err != nil {
		return err
	}
	buf.WriteString("</value>")
	return nil
}

func writeTyped(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("<nil/>")
	case bool:
		if t {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case int:
		writeInt(buf, int64(t))
	case int8:
		writeInt(buf, int64(t))
	case int16:
		writeInt(buf, int64(t))
	case int32:
		writeInt(buf, int64(t))
	case int64:
		writeInt(buf, t)
	case uint:
		writeInt(buf, int64(t))
	case uint8:
		writeInt(buf, int64(t))
	case uint16:
		writeInt(buf, int64(t))
	case uint32:
		writeInt(buf, int64(t))
	case float32:
		writeDouble(buf, float64(t))
	case float64:
		writeDouble(buf, t)
	case string:
		buf.WriteString("<string>")
		if err := xml.EscapeText(buf, []byte(t)); err != nil {
			return errors.Trace(err)
		}
		buf.WriteString("</string>")
	case Base64:
		writeBase64(buf, t)
	case []byte:
		writeBase64(buf, t)
	case DateTime:
		writeDateTime(buf, time.Time(t))
	case time.Time:
		writeDateTime(buf, t)
	case map[string]any:
		return writeStruct(buf, t)
	case []any:
		return writeArray(buf, t)
	default:
		return writeReflected(buf, v)
	}
	return nil
}

func writeInt(buf *bytes.Buffer, i int64) {
	buf.WriteString("<int>")
	buf.WriteString(strconv.FormatInt(i, 10))
	buf.WriteString("</int>")
}

func writeDouble(buf *bytes.Buffer, f float64) {
	buf.WriteString("<double>")
	buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	buf.WriteString("</double>")
}

func writeBase64(buf *bytes.Buffer, b []byte) {
	buf.WriteString("<base64>")
	buf.WriteString(base64.StdEncoding.EncodeToString(b))
	buf.WriteString("</base64>")
}

func writeDateTime(buf *bytes.Buffer, t time.Time) {
	buf.WriteString("<dateTime.iso8601>")
	buf.WriteString(t.Format(iso8601))
	buf.WriteString("</dateTime.iso8601>")
}

// writeStruct emits members in sorted key order so encoded payloads are
// deterministic.
func writeStruct(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.WriteString("<struct>")
	for _, k := range keys {
		buf.WriteString("<member><name>")
		if err := xml.EscapeText(buf, []byte(k)); err != nil {
			return errors.Trace(err)
		}
		buf.WriteString("</name>")
		if err := writeValue(buf, m[k]); err != nil {
			return err
		}
		buf.WriteString("</member>")
	}
	buf.WriteString("</struct>")
	return nil
}

func writeArray(buf *bytes.Buffer, vs []any) error {
	buf.WriteString("<array><data>")
	for _, v := range vs {
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteString("</data></array>")
	return nil
}

// writeReflected handles typed slices and string-keyed maps that did not
// match a concrete case, e.g. []string or map[string]string.
func writeReflected(buf *bytes.Buffer, v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vs := make([]any, rv.Len())
		for i := range vs {
			vs[i] = rv.Index(i).Interface()
		}
		return writeArray(buf, vs)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return writeStruct(buf, m)
	}
	return fmt.Errorf("unsupported parameter type %T%w", v, errors.Hide(ErrConfig))
}

// Wire-side response shapes. wireValue is recursive: structs and arrays
// nest arbitrarily.

type wireValue struct {
	Int      *string     `xml:"int"`
	I4       *string     `xml:"i4"`
	Boolean  *string     `xml:"boolean"`
	Double   *string     `xml:"double"`
	Str      *string     `xml:"string"`
	DateTime *string     `xml:"dateTime.iso8601"`
	B64      *string     `xml:"base64"`
	Struct   *wireStruct `xml:"struct"`
	Array    *wireArray  `xml:"array"`
	Nil      *struct{}   `xml:"nil"`
	Raw      string      `xml:",chardata"`
}

type wireStruct struct {
	Members []wireMember `xml:"member"`
}

type wireMember struct {
	Name  string    `xml:"name"`
	Value wireValue `xml:"value"`
}

type wireArray struct {
	Values []wireValue `xml:"data>value"`
}

type methodResponse struct {
	XMLName xml.Name    `xml:"methodResponse"`
	Params  []wireValue `xml:"params>param>value"`
	Fault   *wireValue  `xml:"fault>value"`
}

// Decode parses a <methodResponse> envelope. A successful response yields
// the decoded value; a <fault> yields a Fault. charsetLabel, when non-empty,
// names the encoding to assume for the payload; otherwise the document's
// own encoding declaration governs.
func (XMLCodec) Decode(data []byte, charsetLabel string) (any, *Fault, error) {
	r := io.Reader(bytes.NewReader(data))
	var dec *xml.Decoder
	if charsetLabel == "" || strings.EqualFold(charsetLabel, "utf-8") {
		dec = xml.NewDecoder(r)
		dec.CharsetReader = charset.NewReaderLabel
	} else {
		cr, err := charset.NewReaderLabel(charsetLabel, r)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown charset %q%w", charsetLabel, errors.Hide(ErrDecode))
		}
		dec = xml.NewDecoder(cr)
		// The payload is already UTF-8 at this point; an encoding
		// declaration in the prolog must not trigger a second pass.
		dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	}

	var resp methodResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, nil, errors.Trace(err)
	}
	if resp.Fault != nil {
		fv, err := resp.Fault.value()
		if err != nil {
			return nil, nil, errors.Annotatef(err, "decoding fault")
		}
		st, ok := fv.(map[string]any)
		if !ok {
			return nil, nil, errors.New("fault payload is not a struct")
		}
		f := &Fault{}
		if c, ok := st["faultCode"].(int); ok {
			f.Code = c
		}
		if m, ok := st["faultString"].(string); ok {
			f.Message = m
		}
		return nil, f, nil
	}
	if len(resp.Params) == 0 {
		// Callers treat a nil value with no fault as a decode miss.
		return nil, nil, nil
	}
	v, err := resp.Params[0].value()
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return v, nil, nil
}

// value converts a decoded wire value into its Go representation: int,
// bool, float64, string, time.Time, []byte, map[string]any, or []any.
func (w *wireValue) value() (any, error) {
	switch {
	case w.Nil != nil:
		return nil, nil
	case w.Int != nil:
		return parseWireInt(*w.Int)
	case w.I4 != nil:
		return parseWireInt(*w.I4)
	case w.Boolean != nil:
		return parseWireBool(*w.Boolean)
	case w.Double != nil:
		f, err := strconv.ParseFloat(strings.TrimSpace(*w.Double), 64)
		if err != nil {
			return nil, errors.Annotatef(err, "invalid double")
		}
		return f, nil
	case w.Str != nil:
		return *w.Str, nil
	case w.DateTime != nil:
		return parseWireDateTime(*w.DateTime)
	case w.B64 != nil:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(*w.B64))
		if err != nil {
			return nil, errors.Annotatef(err, "invalid base64")
		}
		return b, nil
	case w.Struct != nil:
		m := make(map[string]any, len(w.Struct.Members))
		for i := range w.Struct.Members {
			mem := &w.Struct.Members[i]
			v, err := mem.Value.value()
			if err != nil {
				return nil, errors.Annotatef(err, "struct member %q", mem.Name)
			}
			m[strings.TrimSpace(mem.Name)] = v
		}
		return m, nil
	case w.Array != nil:
		vs := make([]any, len(w.Array.Values))
		for i := range w.Array.Values {
			v, err := w.Array.Values[i].value()
			if err != nil {
				return nil, errors.Annotatef(err, "array element %d", i)
			}
			vs[i] = v
		}
		return vs, nil
	}
	// An untyped <value> is a string.
	return strings.TrimSpace(w.Raw), nil
}

func parseWireInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Annotatef(err, "invalid int")
	}
	return i, nil
}

func parseWireBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "1", "true":
		return true, nil
	case "0", "false", "":
		return false, nil
	}
	return false, errors.Errorf("invalid boolean %q", s)
}

// parseWireDateTime accepts the compact protocol layout plus the extended
// variants some endpoints emit.
func parseWireDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		iso8601,
		"20060102T15:04:05Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid dateTime %q", s)
}
