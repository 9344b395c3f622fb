package httpclient

import (
	"encoding/json"
	"io"
	"net/url"
	"reflect"

	"github.com/kbukum/routekit/errors"
)

// Content types set by InferContentType.
const (
	ContentTypeJSON  = "application/json"
	ContentTypeText  = "text/plain;charset=UTF-8"
	ContentTypeOctet = "application/octet-stream"
	ContentTypeForm  = "application/x-www-form-urlencoded"
)

type bodyShape int

const (
	shapeNone bodyShape = iota
	shapeText
	shapeBinary
	shapeForm
	shapeMultipart
	shapeJSON
	shapeScalar
)

func shapeOf(body any) bodyShape {
	switch body.(type) {
	case nil:
		return shapeNone
	case string:
		return shapeText
	case []byte, io.Reader:
		return shapeBinary
	case url.Values:
		return shapeForm
	case *MultipartBody, MultipartBody:
		return shapeMultipart
	case json.Marshaler:
		return shapeJSON
	}
	rv, ok := indirect(body)
	if !ok {
		return shapeNone
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return shapeJSON
	case reflect.String:
		return shapeText
	}
	return shapeScalar
}

// InferContentType returns the Content-Type implied by a body value, or ""
// when none should be set. Multipart bodies get none: the transport picks
// the boundary and sets the header itself.
func InferContentType(body any) string {
	switch shapeOf(body) {
	case shapeText:
		return ContentTypeText
	case shapeBinary:
		return ContentTypeOctet
	case shapeForm:
		return ContentTypeForm
	case shapeJSON, shapeScalar:
		return ContentTypeJSON
	}
	return ""
}

// EncodeBody converts a body value into its wire form. Strings, byte slices,
// readers, url.Values and multipart bodies pass through unchanged; maps,
// slices and structs become JSON bytes; other scalars are stringified.
// Pointers to strings and scalars are dereferenced before encoding.
func EncodeBody(body any) (any, error) {
	switch shapeOf(body) {
	case shapeNone:
		return nil, nil
	case shapeText:
		if s, ok := body.(string); ok {
			return s, nil
		}
		return formatBody(body)
	case shapeBinary, shapeForm:
		return body, nil
	case shapeMultipart:
		if mb, ok := body.(MultipartBody); ok {
			return &mb, nil
		}
		return body, nil
	case shapeJSON:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Encoding("request body", err)
		}
		return data, nil
	}
	return formatBody(body)
}

func formatBody(body any) (any, error) {
	s, _, err := FormatValue(body)
	if err != nil {
		return nil, errors.Encoding("request body", err)
	}
	return s, nil
}
