package servers

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// RawSpec returns the OpenAPI document as served to clients.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid spec: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}
