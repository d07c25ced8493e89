package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocListsRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)

	routes := map[string][]string{
		"/conversions/convert":             {"get"},
		"/conversions/preview":             {"post"},
		"/conversions/offers":              {"post"},
		"/conversions/offers/{id}/accept":  {"post"},
		"/conversions/offers/{id}/decline": {"post"},
		"/currencies":                      {"get", "post"},
		"/currencies/default":              {"get"},
		"/currencies/{code}":               {"get", "patch"},
		"/currencies/{code}/default":       {"put"},
		"/exchange-rates":                  {"get", "put"},
		"/exchange-rates/{from}/{to}":      {"get"},
		"/exchange-rates/{id}":             {"delete"},
		"/expense-types":                   {"get", "post"},
		"/expense-types/{code}":            {"patch"},
		"/statuses":                        {"get", "post"},
		"/statuses/{code}":                 {"patch"},
		"/transactions":                    {"get", "post"},
		"/transactions/{id}":               {"get", "patch", "delete"},
		"/reports/dashboard":               {"get"},
		"/reports/export":                  {"get"},
	}
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, method := range methods {
			assert.Contains(t, doc.Paths[path], method, "%s %s", method, path)
		}
	}

	for _, name := range []string{"dto.TransactionResponse", "dto.ConversionOfferResponse", "fx.Conversion"} {
		assert.Contains(t, doc.Definitions, name)
	}
}
