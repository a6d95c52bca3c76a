package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetURLFields checks which query parameters are set.
//
// queryFields contains all field names that can be used directly in a
// gorm Where statement as argument to specify the fields filtered on.
// As gorm uses interface{} as type for the Where statement, we cannot
// use a []string type here.
//
// setFields returns a []string with all field names set in the query
// parameters. This can be useful to filter for zero values without
// defining them as pointer fields in gorm.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := tagName(val.Type().Field(i).Tag.Get("form"))

		// filterField allows to mark meta fields that are processed by
		// explicit logic outside of GetURLFields
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}
	return queryFields, setFields
}

// GetBodyFields returns a slice with the field names of the resource
// passed in. Only names of fields which are set in the body are
// contained in that slice.
//
// This function reads and copies the request body, it must always be
// called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	// Copy the body to be able to use it multiple times
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	// Parse the body into a map to have all fields available
	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []any{}, ErrInvalidBody
	}

	var bodyFields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := tagName(val.Type().Field(i).Tag.Get("json"))

		if _, ok := mapBody[param]; ok {
			bodyFields = append(bodyFields, field)
		}
	}
	return bodyFields, nil
}

// tagName strips tag options like ",omitempty".
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
